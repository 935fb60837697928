package logger

import (
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

type Logger struct {
	*logrus.Entry
}

var (
	mu   sync.RWMutex
	base = newBase(os.Getenv("ENVIRONMENT"), os.Getenv("LOG_LEVEL"), os.Stdout)
)

// Configure replaces the shared logrus instance. Local env = pretty console;
// others = JSON.
func Configure(env, level string) {
	SetOutput(env, level, os.Stdout)
}

// SetOutput is Configure with an explicit writer, used by tests.
func SetOutput(env, level string, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base = newBase(env, level, w)
}

func newBase(env, level string, w io.Writer) *logrus.Logger {
	l := logrus.New()
	if env == "" || env == "local" {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
			ForceColors:     true,
		})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}
	l.SetOutput(w)
	l.SetLevel(parseLevel(level))
	return l
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func New() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &Logger{Entry: logrus.NewEntry(base)}
}

// Component is shorthand for New().WithField("component", name).
func Component(name string) *logrus.Entry {
	return New().WithField("component", name)
}

// RequestID returns the caller-supplied request id or a fresh uuid.
func RequestID(r *http.Request) string {
	if id := r.Header.Get(RequestIDHeader); id != "" {
		return id
	}
	return uuid.New().String()
}

// WithRequest attaches request metadata and returns an entry
func (l *Logger) WithRequest(r *http.Request) *logrus.Entry {
	return l.WithFields(logrus.Fields{
		"req_id":     RequestID(r),
		"method":     r.Method,
		"path":       r.URL.Path,
		"remote_ip":  r.RemoteAddr,
		"user_agent": r.UserAgent(),
	})
}

// WithError standardizes error logging
func (l *Logger) WithError(err error) *logrus.Entry {
	if err == nil {
		return l.Entry
	}
	return l.Entry.WithField("error", err.Error())
}
