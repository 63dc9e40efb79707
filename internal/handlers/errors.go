package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusForError maps the error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrNotInitialized), errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrBusinessRule):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes the error body for err. System failures are logged
// and replaced with fallbackMsg so internals never reach the caller.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallbackMsg})
		return
	}

	logger.Warn(fallbackMsg, slog.Int("status", status), slog.String("reason", err.Error()))
	body := gin.H{"error": err.Error()}
	var unbalanced *apperrors.UnbalancedError
	if errors.As(err, &unbalanced) {
		body["details"] = gin.H{
			"debitTotal":  unbalanced.Debit.StringFixed(2),
			"creditTotal": unbalanced.Credit.StringFixed(2),
			"variance":    unbalanced.Variance().Abs().StringFixed(2),
		}
	}
	c.JSON(status, body)
}

// tenantFromContext pulls the business and user the token was issued for,
// answering 401 itself when either is missing.
func tenantFromContext(c *gin.Context, logger *slog.Logger) (businessID, userID string, ok bool) {
	userID, ok = middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	businessID, ok = middleware.GetBusinessIDFromContext(c)
	if !ok {
		logger.Error("Business ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Business context missing in auth token"})
		return "", "", false
	}
	return businessID, userID, true
}
