package handler

import (
	"errors"
	"net/http"

	"sentinel-dca-go/internal/api/middleware"
	"sentinel-dca-go/internal/apierrors"
	"sentinel-dca-go/internal/auth"
	"sentinel-dca-go/internal/logger"
)

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func SignUp(service auth.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierrors.WriteError(w, apierrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		user, err := service.SignUp(req.Email, req.Password, req.Name)
		if err != nil {
			writeAuthError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, user)
	}
}

func Login(service auth.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierrors.WriteError(w, apierrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		token, err := service.SignIn(req.Email, req.Password)
		if err != nil {
			writeAuthError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]string{"token": token})
	}
}

func Logout(service auth.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := middleware.BearerToken(r)
		if !ok {
			apierrors.WriteError(w, apierrors.ErrInvalidToken, "bearer token is required", nil)
			return
		}
		if err := service.SignOut(token); err != nil {
			writeAuthError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func GetMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFrom(r.Context())
		if !ok {
			apierrors.WriteError(w, apierrors.ErrInvalidToken, "not authenticated", nil)
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]string{
			"id":    claims.UserID,
			"email": claims.Email,
			"name":  claims.Name,
		})
	}
}

func writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *auth.AuthError
	if errors.As(err, &authErr) {
		if apierrors.Status(authErr.Code) >= http.StatusInternalServerError {
			logger.New().WithRequest(r).WithError(err).Error("auth failure")
		}
		apierrors.WriteError(w, authErr.Code, authErr.Err.Error(), authErr.Details)
		return
	}
	logger.New().WithRequest(r).WithError(err).Error("unexpected auth error")
	apierrors.WriteError(w, apierrors.ErrInternalServer, "internal server error", nil)
}
