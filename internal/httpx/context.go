package httpx

import (
	"context"
	"net/http"

	"github.com/PabloGitu/bookmanagerrmh2/internal/logger"
)

type contextKey string

const (
	loginKey contextKey = "login"
	roleKey  contextKey = "role"
)

// LoginFrom retrieves the authenticated login from the request context.
func LoginFrom(r *http.Request) string {
	if v, ok := r.Context().Value(loginKey).(string); ok {
		return v
	}
	return ""
}

// RoleFrom retrieves the authenticated role from the request context.
func RoleFrom(r *http.Request) string {
	if v, ok := r.Context().Value(roleKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithUser returns a new context carrying the login and role.
func ContextWithUser(ctx context.Context, login, role string) context.Context {
	ctx = context.WithValue(ctx, loginKey, login)
	return context.WithValue(ctx, roleKey, role)
}

// RequestIDFrom retrieves the request id assigned by the middleware.
func RequestIDFrom(r *http.Request) string {
	return logger.RequestIDFrom(r.Context())
}
