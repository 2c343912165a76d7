package timesheet

// Calculation finding codes. These are data-quality findings attached to a
// DailyValue, not Go errors: the pipeline keeps computing best-effort
// figures and surfaces them for correction.
const (
	CodeMissingCome         = "MISSING_COME"
	CodeMissingGo           = "MISSING_GO"
	CodeUnpairedBooking     = "UNPAIRED_BOOKING"
	CodeMissingEndBooking   = "MISSING_END_BOOKING"
	CodeCoreTimeViolation   = "CORE_TIME_VIOLATION"
	CodeNoMatchingShift     = "NO_MATCHING_SHIFT"
	CodeNoDayPlan           = "NO_DAY_PLAN"
	CodeMaxHoursExceeded    = "MAX_HOURS_EXCEEDED"
	CodeBookingOutsideWindow = "BOOKING_OUTSIDE_WINDOW"
	CodeNoPunches           = "NO_PUNCHES"
)

// DefaultSeverity returns the severity a code carries unless tenant
// configuration promotes it. CORE_TIME_VIOLATION is a warning by default
// and promotable to an error per company setting.
func DefaultSeverity(code string) Severity {
	switch code {
	case CodeCoreTimeViolation, CodeBookingOutsideWindow:
		return SeverityWarning
	default:
		return SeverityError
	}
}
