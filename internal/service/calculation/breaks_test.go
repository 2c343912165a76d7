package calculation

import (
	"testing"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
)

func TestBreakDeduction_FixedAlwaysCounts(t *testing.T) {
	rules := []schedule.BreakRule{{Kind: schedule.BreakFixed, DurationMinutes: 30}}

	assert.Equal(t, 30, BreakDeduction(480, 0, rules))
	assert.Equal(t, 30, BreakDeduction(0, 0, rules))
	// Booked breaks add on top of fixed ones.
	assert.Equal(t, 50, BreakDeduction(480, 20, rules))
}

func TestBreakDeduction_VariableReplacedByBookedBreaks(t *testing.T) {
	rules := []schedule.BreakRule{{Kind: schedule.BreakVariable, DurationMinutes: 45}}

	// No booked break: the variable break applies.
	assert.Equal(t, 45, BreakDeduction(480, 0, rules))
	// Booked breaks take its place, even when shorter.
	assert.Equal(t, 20, BreakDeduction(480, 20, rules))
	assert.Equal(t, 60, BreakDeduction(480, 60, rules))
}

func TestBreakDeduction_MinimumTriggersAfterThreshold(t *testing.T) {
	rules := []schedule.BreakRule{{Kind: schedule.BreakMinimum, DurationMinutes: 30, AfterMinutes: 360}}

	assert.Equal(t, 0, BreakDeduction(360, 0, rules))
	assert.Equal(t, 30, BreakDeduction(361, 0, rules))
	assert.Equal(t, 30, BreakDeduction(600, 0, rules))
}

func TestBreakDeduction_MinimumOnlyDeductOverage(t *testing.T) {
	rules := []schedule.BreakRule{{
		Kind:              schedule.BreakMinimum,
		DurationMinutes:   30,
		AfterMinutes:      360,
		OnlyDeductOverage: true,
	}}

	assert.Equal(t, 0, BreakDeduction(360, 0, rules))
	// Only the 10 minutes beyond the threshold are deducted.
	assert.Equal(t, 10, BreakDeduction(370, 0, rules))
	// Capped at the full duration.
	assert.Equal(t, 30, BreakDeduction(420, 0, rules))
	assert.Equal(t, 30, BreakDeduction(600, 0, rules))
}

func TestBreakDeduction_CombinedRules(t *testing.T) {
	rules := []schedule.BreakRule{
		{Kind: schedule.BreakFixed, DurationMinutes: 15},
		{Kind: schedule.BreakVariable, DurationMinutes: 30},
		{Kind: schedule.BreakMinimum, DurationMinutes: 15, AfterMinutes: 540},
	}

	// Short day, nothing booked: fixed + variable.
	assert.Equal(t, 45, BreakDeduction(480, 0, rules))
	// Long day, booked break: fixed + booked + minimum.
	assert.Equal(t, 50, BreakDeduction(560, 20, rules))
}

// Net time must never grow when gross time shrinks.
func TestBreakDeduction_MonotonicInGross(t *testing.T) {
	rules := []schedule.BreakRule{
		{Kind: schedule.BreakFixed, DurationMinutes: 10},
		{Kind: schedule.BreakMinimum, DurationMinutes: 30, AfterMinutes: 360, OnlyDeductOverage: true},
		{Kind: schedule.BreakMinimum, DurationMinutes: 15, AfterMinutes: 540},
	}

	prev := 0
	for gross := 0; gross <= 720; gross++ {
		d := BreakDeduction(gross, 0, rules)
		assert.GreaterOrEqual(t, d, prev, "deduction shrank at gross=%d", gross)
		prev = d
	}
}
