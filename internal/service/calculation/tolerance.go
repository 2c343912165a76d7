package calculation

import (
	"fmt"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/punch"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/schedule"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/timesheet"
)

// ApplyTolerance adjusts the calculated times of every main pair according
// to the plan's mode, tolerance band and rounding rules. Violations never
// abort the calculation; they are recorded as findings and judged later.
//
// Unless a rounding rule sets ApplyToAllPunches, only the first arrival and
// the last departure of the day are adjusted; interior endpoints of split
// days keep their edited times.
func ApplyTolerance(pairs []punch.Pair, plan *schedule.DayPlan) ([]punch.Pair, []Finding) {
	out := make([]punch.Pair, len(pairs))
	copy(out, pairs)

	var findings []Finding

	firstMain, lastMain := -1, -1
	for i := range out {
		if out[i].Kind != punch.PairMain {
			continue
		}
		if firstMain == -1 {
			firstMain = i
		}
		lastMain = i
	}

	for i := range out {
		if out[i].Kind != punch.PairMain {
			continue
		}
		if i == firstMain || plan.ComeRounding.ApplyToAllPunches {
			v, fs := adjustArrival(out[i].Start.CalculatedMinutes, plan)
			out[i].Start.CalculatedMinutes = v
			findings = append(findings, fs...)
		}
		if i == lastMain || plan.GoRounding.ApplyToAllPunches {
			v, fs := adjustDeparture(out[i].End.CalculatedMinutes, plan)
			out[i].End.CalculatedMinutes = v
			findings = append(findings, fs...)
		}
		// A pair must never end before it starts, whatever the rules did.
		if out[i].End.CalculatedMinutes < out[i].Start.CalculatedMinutes {
			out[i].End.CalculatedMinutes = out[i].Start.CalculatedMinutes
		}
	}

	return out, findings
}

func adjustArrival(v int, plan *schedule.DayPlan) (int, []Finding) {
	if plan.Mode == schedule.PlanModeFlextime {
		if v < plan.ComeFrom-plan.Tolerance.ComeMinus {
			return plan.ComeFrom, []Finding{newFinding(timesheet.CodeCoreTimeViolation,
				fmt.Sprintf("arrival at minute %d is before the window start %d", v, plan.ComeFrom))}
		}
		if plan.ComeTo != nil && v > *plan.ComeTo {
			return v, []Finding{newFinding(timesheet.CodeCoreTimeViolation,
				fmt.Sprintf("arrival at minute %d is after the core time start %d", v, *plan.ComeTo))}
		}
		return v, nil
	}

	// Fixed mode: the window start is the mandatory arrival time.
	target := plan.ComeFrom
	switch {
	case v < target-plan.Tolerance.ComeMinus:
		return Round(plan.ComeRounding.Mode, v, plan.ComeRounding.IntervalMinutes), nil
	case v <= target+plan.Tolerance.ComePlus:
		return target, nil
	default:
		return v, []Finding{newFinding(timesheet.CodeCoreTimeViolation,
			fmt.Sprintf("late arrival at minute %d, expected %d", v, target))}
	}
}

func adjustDeparture(v int, plan *schedule.DayPlan) (int, []Finding) {
	if plan.Mode == schedule.PlanModeFlextime {
		if plan.GoTo != nil && v > *plan.GoTo+plan.Tolerance.GoPlus {
			return *plan.GoTo, []Finding{newFinding(timesheet.CodeCoreTimeViolation,
				fmt.Sprintf("departure at minute %d is after the window end %d", v, *plan.GoTo))}
		}
		if v < plan.GoFrom {
			return v, []Finding{newFinding(timesheet.CodeCoreTimeViolation,
				fmt.Sprintf("departure at minute %d is before the core time end %d", v, plan.GoFrom))}
		}
		return v, nil
	}

	// Fixed mode: mirror of the arrival case, early departure is the
	// violation and late departure rounds down to the interval.
	target := plan.GoFrom
	switch {
	case v > target+plan.Tolerance.GoPlus:
		return Round(plan.GoRounding.Mode, v, plan.GoRounding.IntervalMinutes), nil
	case v >= target-plan.Tolerance.GoMinus:
		return target, nil
	default:
		return v, []Finding{newFinding(timesheet.CodeCoreTimeViolation,
			fmt.Sprintf("early departure at minute %d, expected %d", v, target))}
	}
}
