package punch

import "time"

// Punch is a single clock event. Times are stored as minutes from local
// midnight of Date.
//
// OriginalMinutes is written once at ingestion and never touched again.
// EditedMinutes starts equal to OriginalMinutes and may be corrected by a
// supervisor. CalculatedMinutes is owned exclusively by the calculation
// pipeline and is overwritten on every recalculation.
type Punch struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time
	Type       Type

	OriginalMinutes   int
	EditedMinutes     int
	CalculatedMinutes int

	// Synthetic marks punches created by the day-change resolver. They are
	// regenerated on recalculation, never entered by hand.
	Synthetic bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Type string

const (
	TypeArrive     Type = "arrive"
	TypeLeave      Type = "leave"
	TypeBreakStart Type = "breakStart"
	TypeBreakEnd   Type = "breakEnd"
	TypeTripStart  Type = "tripStart"
	TypeTripEnd    Type = "tripEnd"
)

// PairKind classifies a punch pair.
type PairKind string

const (
	PairMain  PairKind = "main"
	PairBreak PairKind = "break"
	PairTrip  PairKind = "trip"
)

// Kind returns the pair kind a punch type belongs to.
func (t Type) Kind() PairKind {
	switch t {
	case TypeBreakStart, TypeBreakEnd:
		return PairBreak
	case TypeTripStart, TypeTripEnd:
		return PairTrip
	default:
		return PairMain
	}
}

// IsStart reports whether the punch opens an interval.
func (t Type) IsStart() bool {
	switch t {
	case TypeArrive, TypeBreakStart, TypeTripStart:
		return true
	}
	return false
}

// Pair is one closed interval of matching punches. Pairs are derived by the
// pairing engine and never persisted.
type Pair struct {
	Kind  PairKind
	Start Punch
	End   Punch
}

// Duration returns the pair length in minutes based on calculated times.
func (p Pair) Duration() int {
	return p.End.CalculatedMinutes - p.Start.CalculatedMinutes
}
