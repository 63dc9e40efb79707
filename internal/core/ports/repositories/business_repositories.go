package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// BusinessReader defines read operations for business data
type BusinessReader interface {
	// FindBusinessByID retrieves a business by its ID.
	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)

	// CountBusinessRecords counts the accounting rows the business owns.
	CountBusinessRecords(ctx context.Context, businessID string) (*domain.IntegrityReport, error)
}

// BusinessWriter defines write operations for business data
type BusinessWriter interface {
	// SaveBusiness inserts a new business within tx.
	SaveBusiness(ctx context.Context, tx pgx.Tx, business domain.Business) error

	// FindBusinessByIDForUpdate reads and row-locks the business within tx.
	FindBusinessByIDForUpdate(ctx context.Context, tx pgx.Tx, businessID string) (*domain.Business, error)

	// MarkInitialized flips is_initialized to true within tx.
	MarkInitialized(ctx context.Context, tx pgx.Tx, businessID, userID string, now time.Time) error
}

// BusinessRepositoryFacade combines all business-related repository interfaces
type BusinessRepositoryFacade interface {
	BusinessReader
	BusinessWriter
}
