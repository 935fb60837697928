package middleware

import (
	"context"
	"net/http"
	"strings"

	"sentinel-dca-go/internal/apierrors"
	"sentinel-dca-go/internal/auth"
)

type contextKey string

const ContextKeyUser contextKey = "user"

var publicPaths = map[string]bool{
	"/healthcheck":    true,
	"/v1/auth/signup": true,
	"/v1/auth/login":  true,
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	token := strings.TrimPrefix(h, "Bearer ")
	if h == "" || token == h || token == "" {
		return "", false
	}
	return token, true
}

func AuthMiddleware(authenticator auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := BearerToken(r)
			if !ok {
				apierrors.WriteError(w, apierrors.ErrInvalidToken, "bearer token is required", nil)
				return
			}

			claims, err := authenticator.ValidateToken(token)
			if err != nil {
				apierrors.WriteError(w, apierrors.ErrInvalidToken, "invalid token", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyUser).(*auth.Claims)
	return claims, ok
}
