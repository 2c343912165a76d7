package absence

import (
	"context"
	"time"
)

// AbsenceRepository defines data access for absence days and types.
type AbsenceRepository interface {
	// GetByEmployeeDate returns the absence on date, or ErrAbsenceNotFound.
	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time, companyID string) (AbsenceDay, error)

	// ListByEmployeeYear returns all absences of the year ordered by date.
	ListByEmployeeYear(ctx context.Context, employeeID string, year int, companyID string) ([]AbsenceDay, error)

	GetType(ctx context.Context, id string, companyID string) (AbsenceType, error)

	// ListTypes returns all absence types of the company keyed by id.
	ListTypes(ctx context.Context, companyID string) (map[string]AbsenceType, error)
}

// HolidayRepository is the read-only holiday lookup.
type HolidayRepository interface {
	// GetByDate returns the holiday on date, or ErrAbsenceNotFound-style
	// miss via found=false.
	GetByDate(ctx context.Context, date time.Time, companyID string) (Holiday, bool, error)

	ListByYear(ctx context.Context, year int, companyID string) ([]Holiday, error)
}
