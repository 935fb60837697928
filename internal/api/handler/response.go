package handler

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"sentinel-dca-go/internal/apierrors"
	"sentinel-dca-go/internal/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeJSON encodes before writing the status so an unencodable value
// becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.New().WithRequest(r).WithError(err).Error("error encoding response")
		apierrors.WriteError(w, apierrors.ErrInternalServer, "could not encode response", nil)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(b, '\n')); err != nil {
		logger.New().WithRequest(r).WithError(err).Warn("error writing response")
	}
}

// intParam reads an optional positive integer query parameter. Absent or
// empty yields def.
func intParam(r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func invalidParam(w http.ResponseWriter, name string) {
	apierrors.WriteError(w, apierrors.ErrInvalidFormat, "invalid query parameter", map[string]string{"param": name})
}

func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apierrors.WriteError(w, apierrors.ErrNotFound, "route not found", nil)
	})
}
