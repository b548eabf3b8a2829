// Package rbac provides the closed role set and role-based access control
// middleware.
//
// Roles are a typed enumeration, not free strings: every gate compares
// constants, and Parse is the only place raw input becomes a Role.
package rbac

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sarthakjain/storerate/pkg/response"
)

// Role is one of the three account roles.
type Role string

const (
	RoleUser  Role = "USER"
	RoleOwner Role = "OWNER"
	RoleAdmin Role = "ADMIN"
)

// Parse normalises raw input (any case) into a Role, rejecting anything
// outside the closed set.
func Parse(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleOwner:
		return RoleOwner, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("rbac: unknown role %q", s)
	}
}

// Valid reports whether r is a member of the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// Identity is the authenticated caller, decoded from the bearer token by the
// auth middleware and carried in the request context.
type Identity struct {
	UserID uint
	Role   Role
}

type ctxKey struct{}

// WithIdentity stores the caller's identity in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromCtx retrieves the caller's identity. ok is false on
// unauthenticated requests.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// HasRole returns middleware that admits only callers whose role is in the
// allowed set. Requires the auth middleware to have already run.
func HasRole(roles ...Role) func(http.Handler) http.Handler {
	allowed := make(map[Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromCtx(r.Context())
			if !ok || !allowed[id.Role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
