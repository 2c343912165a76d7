package timesheet

import (
	"context"
	"time"
)

// DailyValueRepository persists calculated day records.
type DailyValueRepository interface {
	// Replace atomically deletes any existing record for the value's
	// employee-date and inserts the new one, together with its correction
	// items. Recalculation replaces, never appends.
	Replace(ctx context.Context, value DailyValue, items []CorrectionItem) (DailyValue, error)

	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time, companyID string) (DailyValue, error)

	// ListByEmployeeMonth returns all daily values of one employee-month
	// ordered by date.
	ListByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string) ([]DailyValue, error)
}

// MonthlyValueRepository persists calculated month records.
type MonthlyValueRepository interface {
	// Replace upserts the record for the value's employee-month. Fails with
	// ErrMonthClosed when the stored record is closed.
	Replace(ctx context.Context, value MonthlyValue) (MonthlyValue, error)

	GetByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string) (MonthlyValue, error)

	// SetClosed closes or reopens the month and records the acting user for
	// the audit trail.
	SetClosed(ctx context.Context, employeeID string, year int, month time.Month, companyID string, closed bool, actor string) (MonthlyValue, error)

	// HasAnyBefore reports whether any monthly value exists before the
	// given month. Distinguishes "first month ever" from "prior month not
	// calculated yet".
	HasAnyBefore(ctx context.Context, employeeID string, year int, month time.Month, companyID string) (bool, error)
}

// FlextimeRulesRepository reads the tenant's flextime evaluation rules.
type FlextimeRulesRepository interface {
	GetByCompany(ctx context.Context, companyID string) (FlextimeRules, error)
}

// CorrectionRepository reads the error/warning stream for the correction
// assistant.
type CorrectionRepository interface {
	List(ctx context.Context, filter CorrectionFilter, companyID string) ([]CorrectionItem, error)
}

type CorrectionFilter struct {
	EmployeeID *string
	From       *time.Time
	To         *time.Time
	Severity   *Severity
	Limit      int
}
