package middleware

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey prevents collisions with keys set by other packages.
type contextKey string

const (
	loggerCtxKey  = contextKey("logger")
	userIDKey     = contextKey("userID")
	businessIDKey = contextKey("businessID")
	roleKey       = contextKey("role")
)

func stringFromCtx(ctx context.Context, key contextKey) (string, bool) {
	val, ok := ctx.Value(key).(string)
	if !ok || val == "" {
		return "", false
	}
	return val, true
}

// GetUserIDFromContext retrieves the authenticated actor ID set by AuthMiddleware.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return stringFromCtx(c.Request.Context(), userIDKey)
}

// GetBusinessIDFromContext retrieves the tenant the token was issued for.
func GetBusinessIDFromContext(c *gin.Context) (string, bool) {
	return stringFromCtx(c.Request.Context(), businessIDKey)
}

// GetRoleFromContext retrieves the caller's role within the business.
func GetRoleFromContext(c *gin.Context) domain.BusinessRole {
	role, _ := stringFromCtx(c.Request.Context(), roleKey)
	return domain.BusinessRole(role)
}

// WithIdentity stores the caller identity on ctx. Used by AuthMiddleware and tests.
func WithIdentity(ctx context.Context, userID, businessID string, role domain.BusinessRole) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, businessIDKey, businessID)
	return context.WithValue(ctx, roleKey, string(role))
}
