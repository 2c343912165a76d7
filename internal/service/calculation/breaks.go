package calculation

import "github.com/clockwise-hr/timecalc-backend-go/internal/domain/schedule"

// BreakDeduction computes the minutes to subtract from gross time.
//
// Fixed breaks always count. Variable breaks count only on days without any
// booked break; on days with booked breaks, the booked durations take their
// place. Minimum breaks trigger once gross time exceeds their threshold and
// either deduct their full duration or, with OnlyDeductOverage, just the
// part of gross time beyond the threshold up to the duration.
//
// The result is monotonic non-decreasing in gross minutes for a fixed rule
// configuration.
func BreakDeduction(grossMinutes int, bookedBreakMinutes int, rules []schedule.BreakRule) int {
	hasBooked := bookedBreakMinutes > 0

	total := 0
	if hasBooked {
		total += bookedBreakMinutes
	}

	for _, rule := range rules {
		switch rule.Kind {
		case schedule.BreakFixed:
			total += rule.DurationMinutes
		case schedule.BreakVariable:
			if !hasBooked {
				total += rule.DurationMinutes
			}
		case schedule.BreakMinimum:
			if grossMinutes <= rule.AfterMinutes {
				continue
			}
			if rule.OnlyDeductOverage {
				over := grossMinutes - rule.AfterMinutes
				if over < rule.DurationMinutes {
					total += over
				} else {
					total += rule.DurationMinutes
				}
			} else {
				total += rule.DurationMinutes
			}
		}
	}

	return total
}
