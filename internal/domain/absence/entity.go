package absence

import "time"

// AbsenceDay is one approved absence for one employee-date. Approval happens
// outside this system; records arrive already approved. Unique per
// employee+date.
type AbsenceDay struct {
	ID            string
	EmployeeID    string
	CompanyID     string
	Date          time.Time
	AbsenceTypeID string

	// Portion of the day credited: 0, 0.5 or 1.
	Portion float64

	// VacationDeduction in days charged against the vacation balance.
	VacationDeduction float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AbsenceType is master data describing how an absence code is credited.
type AbsenceType struct {
	ID        string
	CompanyID string
	Code      string
	Name      string

	// CreditsTarget credits the day plan's target minutes times the
	// portion. Absences that do not credit time (unpaid leave) leave the
	// day at zero.
	CreditsTarget bool

	// DeductsVacation charges the absence against the vacation balance.
	DeductsVacation bool

	// OverridesHoliday lets this absence win over a holiday falling on the
	// same date. By default the holiday credit wins.
	OverridesHoliday bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Holiday is a company-wide credited day.
type Holiday struct {
	ID        string
	CompanyID string
	Date      time.Time
	Name      string
	// Portion credited, usually 1; half-day holidays use 0.5.
	Portion float64
}
