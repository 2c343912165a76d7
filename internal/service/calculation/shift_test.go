package calculation

import (
	"testing"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/schedule"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shiftPlan(name string, from, to int) *schedule.DayPlan {
	return &schedule.DayPlan{
		ID:                    "plan-" + name,
		Name:                  name,
		Mode:                  schedule.PlanModeFixed,
		ShiftDetectionEnabled: true,
		ShiftWindow:           &schedule.ShiftWindow{From: from, To: to},
	}
}

func TestDetectShift_Disabled(t *testing.T) {
	base := shiftPlan("early", 300, 420)
	base.ShiftDetectionEnabled = false

	got, findings := DetectShift(900, base, []*schedule.DayPlan{shiftPlan("late", 780, 900)})

	assert.Same(t, base, got)
	assert.Empty(t, findings)
}

func TestDetectShift_BaseWindowMatches(t *testing.T) {
	base := shiftPlan("early", 300, 420)

	got, findings := DetectShift(350, base, []*schedule.DayPlan{shiftPlan("late", 780, 900)})

	assert.Same(t, base, got)
	assert.Empty(t, findings)
}

func TestDetectShift_AlternateMatchesWithoutFinding(t *testing.T) {
	base := shiftPlan("early", 300, 420)
	late := shiftPlan("late", 780, 900)

	got, findings := DetectShift(800, base, []*schedule.DayPlan{late})

	assert.Same(t, late, got)
	assert.Empty(t, findings)
}

func TestDetectShift_FirstMatchingAlternateWins(t *testing.T) {
	base := shiftPlan("early", 300, 420)
	a := shiftPlan("a", 700, 900)
	b := shiftPlan("b", 750, 950)

	got, _ := DetectShift(800, base, []*schedule.DayPlan{a, b})

	assert.Same(t, a, got)
}

func TestDetectShift_NoMatchFallsBackToBase(t *testing.T) {
	base := shiftPlan("early", 300, 420)

	got, findings := DetectShift(600, base, []*schedule.DayPlan{shiftPlan("late", 780, 900)})

	assert.Same(t, base, got)
	require.Len(t, findings, 1)
	assert.Equal(t, timesheet.CodeNoMatchingShift, findings[0].Code)
}

func TestDetectShift_OvernightWindowWraps(t *testing.T) {
	// Night shift window 21:00-03:00 wraps midnight.
	night := shiftPlan("night", 1260, 180)

	got, findings := DetectShift(1300, night, nil)
	assert.Same(t, night, got)
	assert.Empty(t, findings)

	got, findings = DetectShift(100, night, nil)
	assert.Same(t, night, got)
	assert.Empty(t, findings)

	_, findings = DetectShift(600, night, nil)
	require.Len(t, findings, 1)
	assert.Equal(t, timesheet.CodeNoMatchingShift, findings[0].Code)
}

func TestShiftWindow_Contains(t *testing.T) {
	w := schedule.ShiftWindow{From: 300, To: 420}
	assert.True(t, w.Contains(300))
	assert.True(t, w.Contains(420))
	assert.False(t, w.Contains(299))
	assert.False(t, w.Contains(421))

	wrap := schedule.ShiftWindow{From: 1260, To: 180}
	assert.True(t, wrap.Contains(1439))
	assert.True(t, wrap.Contains(0))
	assert.True(t, wrap.Contains(180))
	assert.False(t, wrap.Contains(181))
	assert.False(t, wrap.Contains(1259))
}
