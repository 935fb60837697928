package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"sentinel-dca-go/internal/logger"
)

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

// Source yields the raw dataset bytes together with a format hint.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, Format, error)
	Location() string
}

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatOf guesses the format from a path or URL extension; CSV unless
// it ends in .xlsx.
func FormatOf(location string) Format {
	p := location
	if u, err := url.Parse(location); err == nil && u.Scheme != "" && u.Host != "" {
		p = u.Path
	}
	if strings.EqualFold(filepath.Ext(p), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// NewSource returns an HTTPSource for http(s) locations and a FileSource
// otherwise.
func NewSource(location string, timeout time.Duration) Source {
	l := strings.ToLower(location)
	if strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://") {
		return NewHTTPSource(location, timeout)
	}
	return FileSource{Path: location}
}

type FileSource struct {
	Path string
}

func (s FileSource) Open(_ context.Context) (io.ReadCloser, Format, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, "", err
	}
	return f, FormatOf(s.Path), nil
}

func (s FileSource) Location() string { return s.Path }

// HTTPSource downloads the dataset, retrying transport errors and 5xx
// responses with exponential backoff until Timeout has elapsed.
type HTTPSource struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client

	initialInterval time.Duration
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSource{
		URL:             url,
		Timeout:         timeout,
		Client:          &http.Client{Timeout: timeout},
		initialInterval: backoff.DefaultInitialInterval,
	}
}

func (s *HTTPSource) Location() string { return s.URL }

func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, Format, error) {
	log := logger.Component("dataset.http").WithField("url", s.URL)

	var body []byte
	var contentType string
	var lastErr error
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := s.Client.Do(req)
		if err != nil {
			lastErr = err
			log.WithError(err).Warn("dataset request failed")
			return err
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			lastErr = err
			return err
		}
		switch {
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("server error: %s", resp.Status)
			log.WithField("http_status", resp.StatusCode).Warn("dataset server error, retrying")
			return lastErr
		case resp.StatusCode >= 400:
			lastErr = fmt.Errorf("unexpected status: %s", resp.Status)
			return backoff.Permanent(lastErr)
		}
		body = b
		contentType = resp.Header.Get("Content-Type")
		lastErr = nil
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.initialInterval
	b.MaxElapsedTime = s.Timeout

	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		if lastErr != nil {
			return nil, "", lastErr
		}
		return nil, "", err
	}
	log.WithField("bytes", len(body)).Debug("dataset downloaded")

	format := FormatOf(s.URL)
	if strings.Contains(contentType, "spreadsheetml") {
		format = FormatXLSX
	}
	return io.NopCloser(bytes.NewReader(body)), format, nil
}
