package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// OpeningPositionSvc runs the one-time bootstrap of a business
type OpeningPositionSvc interface {
	// SubmitOpeningPosition validates, records and unlocks the business in one transaction.
	SubmitOpeningPosition(ctx context.Context, businessID string, req dto.OpeningPositionRequest, userID string) (*domain.OpeningPositionResult, error)
}
