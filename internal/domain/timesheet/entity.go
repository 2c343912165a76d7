package timesheet

import "time"

// DailyValue is the calculated result for one employee-day. It is always
// replaced as a whole by the daily aggregator, never partially updated.
type DailyValue struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time
	DayPlanID  string

	GrossMinutes     int
	NetMinutes       int
	TargetMinutes    int
	OvertimeMinutes  int
	UndertimeMinutes int
	BreakMinutes     int
	// CappedMinutes is net time cut off by the plan's maximum; tracked but
	// never counted toward overtime.
	CappedMinutes int

	// AbsenceDayID or HolidayID is set when the day was credited instead of
	// calculated from punches.
	AbsenceDayID *string
	HolidayID    *string

	IsManuallyChanged bool
	HasError          bool
	ErrorCodes        []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MonthlyValue aggregates one employee-month and carries the flextime chain.
// FlextimeStart of month N always equals FlextimeCarryover of month N-1.
type MonthlyValue struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Year       int
	Month      time.Month

	GrossMinutes     int
	NetMinutes       int
	TargetMinutes    int
	OvertimeMinutes  int
	UndertimeMinutes int
	BreakMinutes     int
	ErrorDays        int

	FlextimeStart     int
	FlextimeChange    int
	FlextimeEnd       int
	FlextimeCarryover int

	VacationStart float64
	VacationTaken float64
	VacationEnd   float64

	IsClosed   bool
	ClosedAt   *time.Time
	ClosedBy   *string
	ReopenedAt *time.Time
	ReopenedBy *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Severity of a correction item.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// CorrectionItem is one finding emitted for the correction assistant.
type CorrectionItem struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time
	Code       string
	Severity   Severity
	Message    string
	CreatedAt  time.Time
}

// FlextimeCreditType selects how a month's flextime change enters the
// carryover.
type FlextimeCreditType string

const (
	CreditNone           FlextimeCreditType = "none"
	CreditComplete       FlextimeCreditType = "complete"
	CreditAfterThreshold FlextimeCreditType = "after_threshold"
	CreditNoTransfer     FlextimeCreditType = "no_transfer"
)

// FlextimeRules is the tenant/tariff configuration for monthly evaluation.
type FlextimeRules struct {
	CreditType         FlextimeCreditType
	MaxMonthlyFlextime *int
	FlextimeThreshold  int
	LowerAnnualLimit   *int
	UpperAnnualLimit   *int
}
