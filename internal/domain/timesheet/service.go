package timesheet

import (
	"context"
	"time"
)

// CalculationService defines the calculation operations exposed to
// collaborators.
type CalculationService interface {
	// CalculateDay recalculates one employee-day and replaces its
	// DailyValue and correction items. Idempotent.
	CalculateDay(ctx context.Context, employeeID string, date time.Time, companyID string) (DailyValue, error)

	// CalculateRange recalculates [from, to] in date order. Days linked by
	// an overnight shift are processed together.
	CalculateRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]DailyValue, error)

	// CalculateMonth aggregates the month's daily values. Requires the
	// prior month to be calculated (ErrPriorMonthNotCalculated) and the
	// month to be open (ErrMonthClosed).
	CalculateMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string) (MonthlyValue, error)

	// CloseMonth marks the month immutable.
	CloseMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string, actor string) (MonthlyValue, error)

	// ReopenMonth is the audited inverse of CloseMonth.
	ReopenMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string, actor string) (MonthlyValue, error)
}
