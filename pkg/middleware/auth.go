package middleware

import (
	"net/http"
	"strings"

	"github.com/sarthakjain/storerate/pkg/auth"
	"github.com/sarthakjain/storerate/pkg/rbac"
	"github.com/sarthakjain/storerate/pkg/response"
)

// Authenticate extracts the bearer token, validates it, and stores the
// caller's identity in the request context. Missing, malformed, or expired
// tokens are rejected with 401.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(w, "Authorization token missing or invalid")
			return
		}

		claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := rbac.WithIdentity(r.Context(), rbac.Identity{
			UserID: claims.UserID,
			Role:   claims.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// MaybeAuthenticate stores the caller's identity when a valid bearer token is
// present but lets the request through either way. Used on public routes that
// personalise their response for logged-in callers.
func MaybeAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			if claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer ")); err == nil {
				ctx := rbac.WithIdentity(r.Context(), rbac.Identity{
					UserID: claims.UserID,
					Role:   claims.Role,
				})
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}
