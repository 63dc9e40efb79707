package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// BusinessSvcFacade defines the tenant registry operations
type BusinessSvcFacade interface {
	// CreateBusiness inserts the business and seeds its system groups atomically.
	CreateBusiness(ctx context.Context, req dto.CreateBusinessRequest, userID string) (*domain.Business, error)

	// GetStatus retrieves the business, including its initialization flag.
	GetStatus(ctx context.Context, businessID string) (*domain.Business, error)

	// IsInitialized reports whether the opening position has been accepted.
	IsInitialized(ctx context.Context, businessID string) (bool, error)

	// BootstrapIntegrity counts what the business has recorded so far.
	BootstrapIntegrity(ctx context.Context, businessID string) (*domain.IntegrityReport, error)
}
