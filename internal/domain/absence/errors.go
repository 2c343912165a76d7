package absence

import "errors"

var (
	ErrAbsenceNotFound     = errors.New("absence day not found")
	ErrAbsenceTypeNotFound = errors.New("absence type not found")
	ErrDuplicateAbsence    = errors.New("an absence already exists for this employee and date")
	ErrInvalidPortion      = errors.New("absence portion must be 0, 0.5 or 1")
)
