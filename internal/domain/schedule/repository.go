package schedule

import (
	"context"
	"time"
)

// DayPlanRepository defines data access for day plans and week assignments.
// All methods include companyID to prevent cross-company data access.
type DayPlanRepository interface {
	// GetByID retrieves a day plan with its break rules and alternate
	// shift plan references.
	GetByID(ctx context.Context, id string, companyID string) (DayPlan, error)

	// GetByIDs retrieves several day plans at once, keyed by id. Used to
	// load alternate shift plans in one round trip.
	GetByIDs(ctx context.Context, ids []string, companyID string) (map[string]DayPlan, error)

	// GetForEmployeeDate resolves the week assignment valid on date and
	// returns the plan for that weekday.
	GetForEmployeeDate(ctx context.Context, employeeID string, date time.Time, companyID string) (DayPlan, error)

	// GetWeekAssignment returns the assignment valid on date.
	GetWeekAssignment(ctx context.Context, employeeID string, date time.Time, companyID string) (WeekAssignment, error)
}
