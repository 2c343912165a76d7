package calculation

import "github.com/clockwise-hr/timecalc-backend-go/internal/domain/schedule"

// Round adjusts an integer minute value according to a rounding mode and
// interval. The interval must be positive for the interval-based modes;
// otherwise the value passes through unchanged.
func Round(mode schedule.RoundingMode, value, interval int) int {
	if interval <= 0 {
		return value
	}

	switch mode {
	case schedule.RoundUp:
		return ceilTo(value, interval)
	case schedule.RoundDown:
		return floorTo(value, interval)
	case schedule.RoundMathematical:
		return mathematicalTo(value, interval)
	case schedule.RoundAdd:
		return value + interval
	case schedule.RoundSubtract:
		return value - interval
	}
	return value
}

func floorTo(value, interval int) int {
	r := value % interval
	if r == 0 {
		return value
	}
	if value < 0 {
		return value - (interval + r)
	}
	return value - r
}

func ceilTo(value, interval int) int {
	r := value % interval
	if r == 0 {
		return value
	}
	if value < 0 {
		return value - r
	}
	return value + (interval - r)
}

// mathematicalTo rounds to the nearest multiple, half away from zero.
func mathematicalTo(value, interval int) int {
	if value < 0 {
		return -mathematicalTo(-value, interval)
	}
	r := value % interval
	if 2*r >= interval {
		return value - r + interval
	}
	return value - r
}
