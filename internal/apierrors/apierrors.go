package apierrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Error codes returned to API clients.
const (
	ErrInvalidCredentials = "AUTH_001"
	ErrInvalidToken       = "AUTH_002"
	ErrUserAlreadyExists  = "AUTH_003"
	ErrWeakPassword       = "AUTH_004"

	ErrInvalidRequest      = "VAL_001"
	ErrMissingRequiredData = "VAL_002"
	ErrInvalidFormat       = "VAL_003"

	ErrDatasetUnavailable = "DATA_001"

	ErrInternalServer = "SRV_001"
	ErrNotFound       = "SRV_002"
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrInvalidToken:        http.StatusUnauthorized,
	ErrUserAlreadyExists:   http.StatusConflict,
	ErrWeakPassword:        http.StatusBadRequest,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrDatasetUnavailable:  http.StatusBadGateway,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrNotFound:            http.StatusNotFound,
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Status maps a code to its HTTP status, 500 for unknown codes.
func Status(code string) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func WriteError(w http.ResponseWriter, code string, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(Status(code))
	_ = json.NewEncoder(w).Encode(APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}
