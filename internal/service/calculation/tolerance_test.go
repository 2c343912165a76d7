package calculation

import (
	"testing"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/punch"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/schedule"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

// flextimePlan: arrival window opens 07:00, core time until 09:00,
// departure window 16:00-20:00, 15 minutes tolerance on both sides.
func flextimePlan() *schedule.DayPlan {
	return &schedule.DayPlan{
		ID:            "plan-flex",
		Name:          "Gleitzeit",
		Mode:          schedule.PlanModeFlextime,
		ComeFrom:      420,
		ComeTo:        intPtr(540),
		GoFrom:        960,
		GoTo:          intPtr(1200),
		TargetMinutes: 480,
		TargetEnabled: true,
		Tolerance:     schedule.Tolerance{ComeMinus: 15, ComePlus: 15, GoMinus: 15, GoPlus: 15},
	}
}

// fixedPlan: fixed working time 08:00-16:30, 5 minutes tolerance, quarter
// hour rounding outside the band.
func fixedPlan() *schedule.DayPlan {
	return &schedule.DayPlan{
		ID:            "plan-fixed",
		Name:          "Normalschicht",
		Mode:          schedule.PlanModeFixed,
		ComeFrom:      480,
		GoFrom:        990,
		TargetMinutes: 480,
		TargetEnabled: true,
		Tolerance:     schedule.Tolerance{ComeMinus: 5, ComePlus: 5, GoMinus: 5, GoPlus: 5},
		ComeRounding:  schedule.RoundingRule{Mode: schedule.RoundUp, IntervalMinutes: 15},
		GoRounding:    schedule.RoundingRule{Mode: schedule.RoundDown, IntervalMinutes: 15},
	}
}

func mainPair(start, end int) punch.Pair {
	s := mkPunch(punch.TypeArrive, start)
	s.CalculatedMinutes = start
	e := mkPunch(punch.TypeLeave, end)
	e.CalculatedMinutes = end
	return punch.Pair{Kind: punch.PairMain, Start: s, End: e}
}

func TestApplyTolerance_FlextimeInsideWindowUnchanged(t *testing.T) {
	// 08:03 to 17:12 inside the flextime window stays exactly as booked.
	pairs, findings := ApplyTolerance([]punch.Pair{mainPair(483, 1032)}, flextimePlan())

	require.Len(t, pairs, 1)
	assert.Empty(t, findings)
	assert.Equal(t, 483, pairs[0].Start.CalculatedMinutes)
	assert.Equal(t, 1032, pairs[0].End.CalculatedMinutes)
}

func TestApplyTolerance_FlextimeEarlyArrivalClampsToWindow(t *testing.T) {
	// 06:30 is before the window opens; time counts from 07:00 and the
	// violation is recorded as a warning.
	pairs, findings := ApplyTolerance([]punch.Pair{mainPair(390, 1032)}, flextimePlan())

	require.Len(t, pairs, 1)
	assert.Equal(t, 420, pairs[0].Start.CalculatedMinutes)
	require.Len(t, findings, 1)
	assert.Equal(t, timesheet.CodeCoreTimeViolation, findings[0].Code)
	assert.Equal(t, timesheet.SeverityWarning, findings[0].Severity)
}

func TestApplyTolerance_FlextimeArrivalWithinToleranceCounts(t *testing.T) {
	// 06:50 is only 10 minutes before the window; inside the tolerance the
	// booked time stands.
	pairs, findings := ApplyTolerance([]punch.Pair{mainPair(410, 1032)}, flextimePlan())

	assert.Empty(t, findings)
	assert.Equal(t, 410, pairs[0].Start.CalculatedMinutes)
}

func TestApplyTolerance_FlextimeLateArrivalViolatesCoreTime(t *testing.T) {
	// Arriving after core time start keeps the time but flags the day.
	pairs, findings := ApplyTolerance([]punch.Pair{mainPair(555, 1032)}, flextimePlan())

	assert.Equal(t, 555, pairs[0].Start.CalculatedMinutes)
	require.Len(t, findings, 1)
	assert.Equal(t, timesheet.CodeCoreTimeViolation, findings[0].Code)
}

func TestApplyTolerance_FlextimeLateDepartureClampsToWindowEnd(t *testing.T) {
	pairs, findings := ApplyTolerance([]punch.Pair{mainPair(483, 1230)}, flextimePlan())

	assert.Equal(t, 1200, pairs[0].End.CalculatedMinutes)
	require.Len(t, findings, 1)
	assert.Equal(t, timesheet.CodeCoreTimeViolation, findings[0].Code)
}

func TestApplyTolerance_FlextimeEarlyDepartureViolatesCoreTime(t *testing.T) {
	pairs, findings := ApplyTolerance([]punch.Pair{mainPair(483, 900)}, flextimePlan())

	assert.Equal(t, 900, pairs[0].End.CalculatedMinutes)
	require.Len(t, findings, 1)
	assert.Equal(t, timesheet.CodeCoreTimeViolation, findings[0].Code)
}

func TestApplyTolerance_FixedWithinToleranceSnapsToTarget(t *testing.T) {
	// 08:04 within the 5 minute band counts as 08:00; 16:27 counts as 16:30.
	pairs, findings := ApplyTolerance([]punch.Pair{mainPair(484, 987)}, fixedPlan())

	assert.Empty(t, findings)
	assert.Equal(t, 480, pairs[0].Start.CalculatedMinutes)
	assert.Equal(t, 990, pairs[0].End.CalculatedMinutes)
}

func TestApplyTolerance_FixedEarlyArrivalRounds(t *testing.T) {
	// 07:38 arrival rounds up to the next quarter hour, 07:45.
	pairs, findings := ApplyTolerance([]punch.Pair{mainPair(458, 990)}, fixedPlan())

	assert.Empty(t, findings)
	assert.Equal(t, 465, pairs[0].Start.CalculatedMinutes)
}

func TestApplyTolerance_FixedLateArrivalViolates(t *testing.T) {
	pairs, findings := ApplyTolerance([]punch.Pair{mainPair(492, 990)}, fixedPlan())

	assert.Equal(t, 492, pairs[0].Start.CalculatedMinutes)
	require.Len(t, findings, 1)
	assert.Equal(t, timesheet.CodeCoreTimeViolation, findings[0].Code)
}

func TestApplyTolerance_FixedLateDepartureRoundsDown(t *testing.T) {
	// 16:50 departure rounds down to 16:45.
	pairs, findings := ApplyTolerance([]punch.Pair{mainPair(480, 1010)}, fixedPlan())

	assert.Empty(t, findings)
	assert.Equal(t, 1005, pairs[0].End.CalculatedMinutes)
}

func TestApplyTolerance_OnlyOuterEndpointsAdjustedBydefault(t *testing.T) {
	// A split day: only the first arrival and the last departure are
	// adjusted, the midday endpoints stay booked.
	pairs, _ := ApplyTolerance([]punch.Pair{
		mainPair(484, 720),
		mainPair(780, 987),
	}, fixedPlan())

	assert.Equal(t, 480, pairs[0].Start.CalculatedMinutes)
	assert.Equal(t, 720, pairs[0].End.CalculatedMinutes)
	assert.Equal(t, 780, pairs[1].Start.CalculatedMinutes)
	assert.Equal(t, 990, pairs[1].End.CalculatedMinutes)
}

func TestApplyTolerance_ApplyToAllPunches(t *testing.T) {
	plan := fixedPlan()
	plan.ComeRounding.ApplyToAllPunches = true
	plan.GoRounding.ApplyToAllPunches = true

	pairs, _ := ApplyTolerance([]punch.Pair{
		mainPair(484, 720),
		mainPair(780, 987),
	}, plan)

	// Every arrival and departure runs through the adjustment now.
	assert.Equal(t, 480, pairs[0].Start.CalculatedMinutes)
	assert.Equal(t, 720, pairs[0].End.CalculatedMinutes) // early departure, kept with a finding
	assert.Equal(t, 990, pairs[1].End.CalculatedMinutes)
}

func TestApplyTolerance_EndNeverBeforeStart(t *testing.T) {
	// Degenerate bookings must not produce a negative pair.
	plan := flextimePlan()
	pairs, _ := ApplyTolerance([]punch.Pair{mainPair(400, 410)}, plan)

	assert.GreaterOrEqual(t, pairs[0].End.CalculatedMinutes, pairs[0].Start.CalculatedMinutes)
}

func TestApplyTolerance_InputPairsNotMutated(t *testing.T) {
	in := []punch.Pair{mainPair(390, 1032)}
	_, _ = ApplyTolerance(in, flextimePlan())

	assert.Equal(t, 390, in[0].Start.CalculatedMinutes)
}
