package calculation

import (
	"fmt"
	"math"
	"time"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/absence"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/punch"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/schedule"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/timesheet"
)

// DayInput is the immutable snapshot the daily aggregator works on. All
// lookups happen before the calculation; the aggregation itself is a pure
// function and safe to re-run.
type DayInput struct {
	EmployeeID string
	CompanyID  string
	Date       time.Time

	// Plan is the effective day plan, after shift detection.
	Plan *schedule.DayPlan

	// Punches of the date, already day-change resolved.
	Punches []punch.Punch

	Absence     *absence.AbsenceDay
	AbsenceType *absence.AbsenceType
	Holiday     *absence.Holiday

	// ShiftFindings carries findings from shift detection into the record.
	ShiftFindings []Finding

	CoreTimeViolationIsError bool
}

// DayResult bundles the replaced daily value with the adjusted pairs, whose
// calculated times the caller writes back to the punches.
type DayResult struct {
	Value    timesheet.DailyValue
	Findings []Finding
	Pairs    []punch.Pair
}

// CalculateDayValue runs pairing, tolerance and break deduction for one
// employee-day and assembles the daily value. Absence and holiday days
// short-circuit punch processing; the holiday credit wins when both fall on
// the same date unless the absence type overrides it.
func CalculateDayValue(in DayInput) DayResult {
	value := timesheet.DailyValue{
		EmployeeID:    in.EmployeeID,
		CompanyID:     in.CompanyID,
		Date:          in.Date,
		DayPlanID:     in.Plan.ID,
		TargetMinutes: in.Plan.EffectiveTarget(),
	}

	if portion, credited := creditedPortion(in); credited {
		return creditDay(in, value, portion)
	}

	findings := append([]Finding(nil), in.ShiftFindings...)

	pairs, pairFindings := BuildPairs(in.Punches)
	findings = append(findings, pairFindings...)

	pairs, tolFindings := ApplyTolerance(pairs, in.Plan)
	findings = append(findings, tolFindings...)

	gross, booked := 0, 0
	hasMain := false
	for _, p := range pairs {
		switch p.Kind {
		case punch.PairMain:
			gross += p.Duration()
			hasMain = true
		case punch.PairBreak:
			booked += p.Duration()
		}
	}

	if !hasMain {
		return noPunchDay(in, value, findings, pairs)
	}

	value.GrossMinutes = gross
	value.BreakMinutes = BreakDeduction(gross, booked, in.Plan.BreakRules)
	net := gross - value.BreakMinutes
	if net < 0 {
		net = 0
	}

	if in.Plan.MaxNetMinutes != nil && net > *in.Plan.MaxNetMinutes {
		value.CappedMinutes = net - *in.Plan.MaxNetMinutes
		net = *in.Plan.MaxNetMinutes
		findings = append(findings, newFinding(timesheet.CodeMaxHoursExceeded,
			fmt.Sprintf("net time exceeds the daily maximum of %d minutes", *in.Plan.MaxNetMinutes)))
	}

	value.NetMinutes = net
	value.OvertimeMinutes = maxInt(net-value.TargetMinutes, 0)
	value.UndertimeMinutes = maxInt(value.TargetMinutes-net, 0)

	return finish(in, value, findings, pairs)
}

// creditedPortion decides whether the day is credited instead of
// calculated, and with which portion.
func creditedPortion(in DayInput) (float64, bool) {
	absenceWins := in.Absence != nil && in.AbsenceType != nil && in.AbsenceType.OverridesHoliday
	if in.Holiday != nil && !absenceWins {
		return in.Holiday.Portion, true
	}
	if in.Absence != nil {
		if in.AbsenceType != nil && !in.AbsenceType.CreditsTarget {
			return 0, true
		}
		return in.Absence.Portion, true
	}
	return 0, false
}

func creditDay(in DayInput, value timesheet.DailyValue, portion float64) DayResult {
	credited := int(math.Round(float64(value.TargetMinutes) * portion))
	value.NetMinutes = credited
	value.UndertimeMinutes = maxInt(value.TargetMinutes-credited, 0)
	if in.Holiday != nil {
		value.HolidayID = &in.Holiday.ID
	}
	if in.Absence != nil {
		value.AbsenceDayID = &in.Absence.ID
	}
	return finish(in, value, nil, nil)
}

// noPunchDay applies the plan's no-punch policy when the day produced no
// main pair.
func noPunchDay(in DayInput, value timesheet.DailyValue, findings []Finding, pairs []punch.Pair) DayResult {
	target := value.TargetMinutes

	if len(in.Punches) == 0 {
		switch in.Plan.NoPunchPolicy {
		case schedule.NoPunchDeductTarget:
			value.UndertimeMinutes = target
		case schedule.NoPunchCreditTarget, schedule.NoPunchVocational:
			value.NetMinutes = target
		default:
			value.UndertimeMinutes = target
			findings = append(findings, newFinding(timesheet.CodeNoPunches,
				"no bookings, no absence and no holiday on this day"))
		}
		return finish(in, value, findings, pairs)
	}

	// Bookings exist but never closed into a main pair; the pairing
	// findings already describe them. Name the missing side as well.
	findings = append(findings, missingMainFindings(in.Punches)...)
	value.UndertimeMinutes = target
	return finish(in, value, findings, pairs)
}

// missingMainFindings reports which side of the main pair never appeared.
func missingMainFindings(punches []punch.Punch) []Finding {
	hasArrive, hasLeave := false, false
	for _, p := range punches {
		switch p.Type {
		case punch.TypeArrive:
			hasArrive = true
		case punch.TypeLeave:
			hasLeave = true
		}
	}
	var fs []Finding
	if hasLeave && !hasArrive {
		fs = append(fs, newFinding(timesheet.CodeMissingCome, "departure booked without any arrival"))
	}
	if hasArrive && !hasLeave {
		fs = append(fs, newFinding(timesheet.CodeMissingGo, "arrival booked without any departure"))
	}
	return fs
}

func finish(in DayInput, value timesheet.DailyValue, findings []Finding, pairs []punch.Pair) DayResult {
	findings = promote(findings, in.CoreTimeViolationIsError)

	for _, f := range findings {
		value.ErrorCodes = append(value.ErrorCodes, f.Code)
		if f.Severity == timesheet.SeverityError {
			value.HasError = true
		}
	}

	return DayResult{Value: value, Findings: findings, Pairs: pairs}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
