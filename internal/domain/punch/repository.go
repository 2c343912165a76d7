package punch

import (
	"context"
	"time"
)

// PunchRepository defines data access for clock punches.
type PunchRepository interface {
	// ListByEmployeeDate returns all punches of one employee-day ordered by
	// edited time.
	ListByEmployeeDate(ctx context.Context, employeeID string, date time.Time, companyID string) ([]Punch, error)

	// ListByEmployeeRange returns punches in [from, to] ordered by date and
	// edited time.
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]Punch, error)

	// UpdateCalculated writes back the pipeline-owned calculated minutes
	// for the given punches.
	UpdateCalculated(ctx context.Context, punches []Punch) error

	// ReplaceSynthetic deletes all synthetic punches of an employee-day and
	// inserts the given replacements. Keeps day-change resolution idempotent.
	ReplaceSynthetic(ctx context.Context, employeeID string, date time.Time, companyID string, punches []Punch) error
}
