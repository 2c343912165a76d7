package calculation

import (
	"fmt"
	"log/slog"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/schedule"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/timesheet"
)

// DetectShift selects the effective day plan from the day's earliest punch
// time. The base plan's own window is checked first, then each alternate
// plan in priority order. A successful alternate match is routine shift
// work, not a data-quality problem, so it produces no finding. Only when
// nothing matches is the base plan returned together with a
// NO_MATCHING_SHIFT finding so the figures stay visible but flagged.
func DetectShift(firstPunchMinutes int, base *schedule.DayPlan, alternates []*schedule.DayPlan) (*schedule.DayPlan, []Finding) {
	if !base.ShiftDetectionEnabled {
		return base, nil
	}

	if base.ShiftWindow != nil && base.ShiftWindow.Contains(firstPunchMinutes) {
		return base, nil
	}

	for _, alt := range alternates {
		if alt == nil || alt.ShiftWindow == nil {
			continue
		}
		if alt.ShiftWindow.Contains(firstPunchMinutes) {
			slog.Debug("shift detection picked alternate plan",
				"plan", alt.Name,
				"first_punch_minutes", firstPunchMinutes,
			)
			return alt, nil
		}
	}

	return base, []Finding{newFinding(timesheet.CodeNoMatchingShift,
		fmt.Sprintf("first booking at minute %d matches no shift window", firstPunchMinutes))}
}
