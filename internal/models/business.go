package models

import "time"

// Business is a row of the businesses table.
type Business struct {
	BusinessID         string    `db:"business_id"`
	Name               string    `db:"name"`
	FinancialYearStart time.Time `db:"financial_year_start"`
	IsInitialized      bool      `db:"is_initialized"`
	AuditFields
}
