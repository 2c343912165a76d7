package calculation

import (
	"fmt"
	"sort"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/punch"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/timesheet"
)

// BuildPairs groups the punches of one employee-day into typed pairs.
//
// Punches are swept in edited-time order. One "pending start" slot is kept
// per kind (main, break, trip): a second start of the same kind flags the
// prior one as unpaired and takes its slot, an end without a pending start
// is itself unpaired, and any slot still occupied after the sweep becomes a
// missing-end finding.
func BuildPairs(punches []punch.Punch) ([]punch.Pair, []Finding) {
	sorted := make([]punch.Punch, len(punches))
	copy(sorted, punches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EditedMinutes < sorted[j].EditedMinutes
	})

	pending := make(map[punch.PairKind]*punch.Punch, 3)
	var pairs []punch.Pair
	var findings []Finding

	for i := range sorted {
		p := sorted[i]
		p.CalculatedMinutes = p.EditedMinutes
		kind := p.Type.Kind()

		if p.Type.IsStart() {
			if prev, ok := pending[kind]; ok {
				findings = append(findings, newFinding(timesheet.CodeUnpairedBooking,
					fmt.Sprintf("%s booking at minute %d has no matching end", prev.Type, prev.EditedMinutes)))
			}
			cp := p
			pending[kind] = &cp
			continue
		}

		start, ok := pending[kind]
		if !ok {
			findings = append(findings, newFinding(timesheet.CodeUnpairedBooking,
				fmt.Sprintf("%s booking at minute %d has no matching start", p.Type, p.EditedMinutes)))
			continue
		}
		pairs = append(pairs, punch.Pair{Kind: kind, Start: *start, End: p})
		delete(pending, kind)
	}

	// Stable order for the leftover report: main, break, trip.
	for _, kind := range []punch.PairKind{punch.PairMain, punch.PairBreak, punch.PairTrip} {
		if start, ok := pending[kind]; ok {
			findings = append(findings, newFinding(timesheet.CodeMissingEndBooking,
				fmt.Sprintf("%s booking at minute %d was never closed", start.Type, start.EditedMinutes)))
		}
	}

	return pairs, findings
}
