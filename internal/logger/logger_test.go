package logger

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { SetOutput("local", "info", &bytes.Buffer{}) })

	t.Run("non-local environments log JSON", func(t *testing.T) {
		var buf bytes.Buffer
		SetOutput("production", "info", &buf)

		New().WithField("component", "test").Info("hello")

		out := buf.String()
		assert.Contains(t, out, `"msg":"hello"`)
		assert.Contains(t, out, `"component":"test"`)
		assert.Contains(t, out, `"level":"info"`)
	})

	t.Run("respects level", func(t *testing.T) {
		var buf bytes.Buffer
		SetOutput("production", "warn", &buf)

		New().Info("quiet")
		New().Warn("loud")

		assert.NotContains(t, buf.String(), "quiet")
		assert.Contains(t, buf.String(), "loud")
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		assert.Equal(t, logrus.InfoLevel, parseLevel("verbose"))
		assert.Equal(t, logrus.DebugLevel, parseLevel("DEBUG"))
	})
}

func TestWithRequest(t *testing.T) {
	var buf bytes.Buffer
	SetOutput("production", "info", &buf)
	t.Cleanup(func() { SetOutput("local", "info", &bytes.Buffer{}) })

	r := httptest.NewRequest("GET", "/v1/dashboard", nil)
	r.Header.Set(RequestIDHeader, "req-123")

	New().WithRequest(r).Info("request")

	out := buf.String()
	assert.Contains(t, out, `"req_id":"req-123"`)
	assert.Contains(t, out, `"path":"/v1/dashboard"`)
	assert.Contains(t, out, `"method":"GET"`)
}

func TestRequestIDGenerated(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	id := RequestID(r)
	require.NotEmpty(t, id)
	assert.Len(t, id, 36)
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	SetOutput("production", "info", &buf)
	t.Cleanup(func() { SetOutput("local", "info", &bytes.Buffer{}) })

	New().WithError(errors.New("boom")).Error("failed")
	New().WithError(nil).Info("no error")

	assert.Contains(t, buf.String(), `"error":"boom"`)
	assert.Contains(t, buf.String(), `"msg":"no error"`)
}
