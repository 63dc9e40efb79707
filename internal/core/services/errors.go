package services

import (
	"context"
	"errors"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

// logFailure logs system faults at error level and caller mistakes at warn level.
func (s *BaseService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrBusinessRule) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrConflict) ||
		errors.Is(err, apperrors.ErrNotInitialized) {
		s.LogWarn(ctx, err, msg, keyvals...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}
