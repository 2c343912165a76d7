package calculation

import (
	"sort"
	"time"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/punch"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/schedule"
)

// ResolveDayChange normalizes punches that cross midnight, before pairing
// and aggregation run. The returned dates are the linked overnight date
// pairs; their daily values must be recalculated together.
//
// Synthetic punches from earlier runs are stripped before resolving, so
// re-running on already-resolved data never splits twice.
//
// Punch times stay relative to the midnight of their (possibly re-dated)
// date: a leave pulled back to the arrival date carries minutes above 1440,
// an arrival pushed to the departure date carries negative minutes.
func ResolveDayChange(policy schedule.DayChangePolicy, punches []punch.Punch) ([]punch.Punch, [][2]time.Time) {
	kept := make([]punch.Punch, 0, len(punches))
	for _, p := range punches {
		if !p.Synthetic {
			kept = append(kept, p)
		}
	}

	if policy == schedule.DayChangeNone {
		sortPunches(kept)
		return kept, nil
	}

	byDate := make(map[time.Time][]punch.Punch)
	for _, p := range kept {
		d := midnight(p.Date)
		byDate[d] = append(byDate[d], p)
	}
	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	for _, d := range dates {
		day := byDate[d]
		sort.SliceStable(day, func(i, j int) bool { return day[i].EditedMinutes < day[j].EditedMinutes })
		byDate[d] = day
	}

	var linked [][2]time.Time
	for _, d := range dates {
		next := d.AddDate(0, 0, 1)
		nextDay, ok := byDate[next]
		if !ok {
			continue
		}
		day := byDate[d]
		if !endsWithOpenArrival(day) || !startsWithLeave(nextDay) {
			continue
		}

		switch policy {
		case schedule.DayChangeEvaluateCome:
			// Pull the departure-side punches back to the arrival date.
			cut := leadingThroughFirstLeave(nextDay)
			for i := 0; i < cut; i++ {
				p := nextDay[i]
				p.Date = d
				p.EditedMinutes += minutesPerDay
				p.CalculatedMinutes = p.EditedMinutes
				day = append(day, p)
			}
			byDate[d] = day
			byDate[next] = nextDay[cut:]

		case schedule.DayChangeEvaluateGo:
			// Push the arrival-side punches forward to the departure date.
			from := trailingFromLastArrive(day)
			moved := make([]punch.Punch, 0, len(day)-from)
			for i := from; i < len(day); i++ {
				p := day[i]
				p.Date = next
				p.EditedMinutes -= minutesPerDay
				p.CalculatedMinutes = p.EditedMinutes
				moved = append(moved, p)
			}
			byDate[d] = day[:from]
			byDate[next] = append(moved, nextDay...)

		case schedule.DayChangeAutoComplete:
			// Split the overnight shift into two calculable days.
			ref := day[len(day)-1]
			byDate[d] = append(day, punch.Punch{
				EmployeeID:        ref.EmployeeID,
				CompanyID:         ref.CompanyID,
				Date:              d,
				Type:              punch.TypeLeave,
				OriginalMinutes:   minutesPerDay,
				EditedMinutes:     minutesPerDay,
				CalculatedMinutes: minutesPerDay,
				Synthetic:         true,
			})
			byDate[next] = append([]punch.Punch{{
				EmployeeID:        ref.EmployeeID,
				CompanyID:         ref.CompanyID,
				Date:              next,
				Type:              punch.TypeArrive,
				OriginalMinutes:   0,
				EditedMinutes:     0,
				CalculatedMinutes: 0,
				Synthetic:         true,
			}}, nextDay...)
		}

		linked = append(linked, [2]time.Time{d, next})
	}

	out := make([]punch.Punch, 0, len(kept)+2*len(linked))
	for _, d := range dates {
		out = append(out, byDate[d]...)
	}
	sortPunches(out)
	return out, linked
}

const minutesPerDay = 1440

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sortPunches(ps []punch.Punch) {
	sort.SliceStable(ps, func(i, j int) bool {
		if !ps[i].Date.Equal(ps[j].Date) {
			return ps[i].Date.Before(ps[j].Date)
		}
		return ps[i].EditedMinutes < ps[j].EditedMinutes
	})
}

// endsWithOpenArrival reports whether the day's last main-kind punch is an
// arrival, i.e. the shift was still open at midnight.
func endsWithOpenArrival(day []punch.Punch) bool {
	for i := len(day) - 1; i >= 0; i-- {
		if day[i].Type.Kind() != punch.PairMain {
			continue
		}
		return day[i].Type.IsStart()
	}
	return false
}

// startsWithLeave reports whether the day's first main-kind punch is a
// departure.
func startsWithLeave(day []punch.Punch) bool {
	for _, p := range day {
		if p.Type.Kind() != punch.PairMain {
			continue
		}
		return !p.Type.IsStart()
	}
	return false
}

// leadingThroughFirstLeave returns how many leading punches belong to the
// overnight shift, up to and including the first departure.
func leadingThroughFirstLeave(day []punch.Punch) int {
	for i, p := range day {
		if p.Type.Kind() == punch.PairMain && !p.Type.IsStart() {
			return i + 1
		}
	}
	return len(day)
}

// trailingFromLastArrive returns the index of the last arrival, the start
// of the trailing run that belongs to the overnight shift.
func trailingFromLastArrive(day []punch.Punch) int {
	for i := len(day) - 1; i >= 0; i-- {
		if day[i].Type.Kind() == punch.PairMain && day[i].Type.IsStart() {
			return i
		}
	}
	return len(day)
}
