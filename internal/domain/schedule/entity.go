package schedule

import "time"

// DayPlan is the effective working-time rule set for one employee-day.
// All times are minutes from local midnight.
type DayPlan struct {
	ID        string
	CompanyID string
	Name      string
	Mode      PlanMode

	// Arrival/departure windows. A nil ComeTo or GoTo leaves that side of
	// the window open.
	ComeFrom int
	ComeTo   *int
	GoFrom   int
	GoTo     *int

	// Up to two target-hour variants; the alternative is only used when it
	// is the enabled one.
	TargetMinutes    int
	TargetEnabled    bool
	AltTargetMinutes *int
	AltTargetEnabled bool

	Tolerance     Tolerance
	ComeRounding  RoundingRule
	GoRounding    RoundingRule
	BreakRules    []BreakRule
	MaxNetMinutes *int

	NoPunchPolicy   NoPunchPolicy
	DayChangePolicy DayChangePolicy

	// Shift detection. AltPlanIDs are checked in order (max 6) when the
	// first punch falls outside this plan's own window.
	ShiftDetectionEnabled bool
	ShiftWindow           *ShiftWindow
	AltPlanIDs            []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type PlanMode string

const (
	PlanModeFixed    PlanMode = "fixed"
	PlanModeFlextime PlanMode = "flextime"
)

// Tolerance holds the four directional tolerance values in minutes.
type Tolerance struct {
	ComeMinus        int
	ComePlus         int
	GoMinus          int
	GoPlus           int
	VariableWorkTime bool
}

type RoundingMode string

const (
	RoundUp           RoundingMode = "up"
	RoundDown         RoundingMode = "down"
	RoundMathematical RoundingMode = "mathematical"
	RoundAdd          RoundingMode = "add"
	RoundSubtract     RoundingMode = "subtract"
)

type RoundingRule struct {
	Mode              RoundingMode
	IntervalMinutes   int
	ApplyToAllPunches bool
}

type BreakKind string

const (
	BreakFixed    BreakKind = "fixed"
	BreakVariable BreakKind = "variable"
	BreakMinimum  BreakKind = "minimum"
)

type BreakRule struct {
	Kind            BreakKind
	DurationMinutes int
	// AfterMinutes is the gross-time threshold for minimum breaks.
	AfterMinutes      int
	OnlyDeductOverage bool
}

// NoPunchPolicy decides what a day without any main pair and without an
// absence or holiday is worth.
type NoPunchPolicy string

const (
	NoPunchError        NoPunchPolicy = "error"
	NoPunchDeductTarget NoPunchPolicy = "deduct_target"
	NoPunchCreditTarget NoPunchPolicy = "credit_target"
	NoPunchVocational   NoPunchPolicy = "vocational"
)

type DayChangePolicy string

const (
	DayChangeNone         DayChangePolicy = "none"
	DayChangeEvaluateCome DayChangePolicy = "evaluate_come"
	DayChangeEvaluateGo   DayChangePolicy = "evaluate_go"
	DayChangeAutoComplete DayChangePolicy = "auto_complete"
)

// ShiftWindow is an arrival window used for shift auto-detection. A window
// with From > To wraps midnight.
type ShiftWindow struct {
	From int
	To   int
}

// Contains reports whether minute m falls inside the window. Overnight
// windows (From > To) cover [From, 1440) and [0, To].
func (w ShiftWindow) Contains(m int) bool {
	if w.From > w.To {
		return m >= w.From || m <= w.To
	}
	return m >= w.From && m <= w.To
}

// EffectiveTarget returns the target minutes for the day, preferring the
// alternative variant when it is the one enabled.
func (p *DayPlan) EffectiveTarget() int {
	if !p.TargetEnabled && p.AltTargetEnabled && p.AltTargetMinutes != nil {
		return *p.AltTargetMinutes
	}
	return p.TargetMinutes
}

// WeekAssignment maps each weekday of an employee's week to a day plan.
// Every weekday resolves to a plan, never to nil.
type WeekAssignment struct {
	ID         string
	EmployeeID string
	// PlanIDs is indexed by time.Weekday (0 = Sunday).
	PlanIDs   [7]string
	ValidFrom time.Time
	ValidTo   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
