package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// InitializationChecker reports whether a business has opened its books.
type InitializationChecker interface {
	IsInitialized(ctx context.Context, businessID string) (bool, error)
}

// RequireInitialized blocks the route until the business has accepted its opening position.
func RequireInitialized(checker InitializationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		businessID, ok := GetBusinessIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Business context missing"})
			return
		}

		initialized, err := checker.IsInitialized(c.Request.Context(), businessID)
		if err != nil {
			logger.Error("Failed to check business initialization", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check business status"})
			return
		}
		if !initialized {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Books not opened yet. Complete Opening Position first."})
			return
		}
		c.Next()
	}
}
