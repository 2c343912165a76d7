package timesheet

import "errors"

// Structural failures. Unlike the finding codes in codes.go these stop the
// calculation and must be retried after the precondition is fixed.
var (
	ErrDailyValueNotFound       = errors.New("daily value not found")
	ErrMonthlyValueNotFound     = errors.New("monthly value not found")
	ErrPriorMonthNotCalculated  = errors.New("prior month has not been calculated yet")
	ErrMonthClosed              = errors.New("month is closed; reopen it before recalculating")
	ErrMonthNotClosed           = errors.New("month is not closed")
)
