package calculation

import (
	"time"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/timesheet"
)

// MonthInput is the immutable snapshot for one employee-month.
type MonthInput struct {
	EmployeeID string
	CompanyID  string
	Year       int
	Month      time.Month

	Days  []timesheet.DailyValue
	Prior *timesheet.MonthlyValue
	Rules timesheet.FlextimeRules

	// Vacation figures for the month, supplied by the orchestrator.
	VacationStart float64
	VacationTaken float64
}

// EvaluateMonth sums the month's daily values and applies the flextime
// carryover rules. The flextime start always equals the prior month's
// carryover (zero for the first month ever), so the chain
// carryover(N) == start(N+1) holds in every credit mode.
func EvaluateMonth(in MonthInput) timesheet.MonthlyValue {
	value := timesheet.MonthlyValue{
		EmployeeID:    in.EmployeeID,
		CompanyID:     in.CompanyID,
		Year:          in.Year,
		Month:         in.Month,
		VacationStart: in.VacationStart,
		VacationTaken: in.VacationTaken,
		VacationEnd:   in.VacationStart - in.VacationTaken,
	}

	for _, d := range in.Days {
		value.GrossMinutes += d.GrossMinutes
		value.NetMinutes += d.NetMinutes
		value.TargetMinutes += d.TargetMinutes
		value.OvertimeMinutes += d.OvertimeMinutes
		value.UndertimeMinutes += d.UndertimeMinutes
		value.BreakMinutes += d.BreakMinutes
		if d.HasError {
			value.ErrorDays++
		}
	}

	if in.Prior != nil {
		value.FlextimeStart = in.Prior.FlextimeCarryover
	}
	value.FlextimeChange = value.OvertimeMinutes - value.UndertimeMinutes
	value.FlextimeEnd = value.FlextimeStart + value.FlextimeChange
	value.FlextimeCarryover = evaluateCarryover(value.FlextimeStart, value.FlextimeChange, in.Rules)

	return value
}

func evaluateCarryover(start, change int, rules timesheet.FlextimeRules) int {
	switch rules.CreditType {
	case timesheet.CreditNoTransfer:
		return 0

	case timesheet.CreditAfterThreshold:
		if change < rules.FlextimeThreshold {
			// The month's change is excluded entirely; the balance
			// carries on unchanged.
			return start
		}
		return cappedCarryover(start, change, rules)

	case timesheet.CreditComplete:
		return cappedCarryover(start, change, rules)

	default: // CreditNone
		return start + change
	}
}

// cappedCarryover caps the month's contribution and clamps the running
// balance into the annual corridor. The excess is forfeited from the
// carryover only; the reported overtime totals keep the worked figures.
func cappedCarryover(start, change int, rules timesheet.FlextimeRules) int {
	contribution := change
	if rules.MaxMonthlyFlextime != nil && contribution > *rules.MaxMonthlyFlextime {
		contribution = *rules.MaxMonthlyFlextime
	}

	carry := start + contribution
	if rules.UpperAnnualLimit != nil && carry > *rules.UpperAnnualLimit {
		carry = *rules.UpperAnnualLimit
	}
	if rules.LowerAnnualLimit != nil && carry < *rules.LowerAnnualLimit {
		carry = *rules.LowerAnnualLimit
	}
	return carry
}
