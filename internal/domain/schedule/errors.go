package schedule

import "errors"

var (
	ErrDayPlanNotFound        = errors.New("day plan not found")
	ErrNoWeekAssignment       = errors.New("no week assignment covers the requested date")
	ErrInvalidRoundingRule    = errors.New("rounding interval must be positive")
	ErrTooManyAlternatePlans  = errors.New("a day plan supports at most 6 alternate shift plans")
	ErrWeekAssignmentIncomplete = errors.New("week assignment must resolve every weekday to a day plan")
)
