package punch

import "errors"

var (
	ErrPunchNotFound   = errors.New("punch not found")
	ErrUnknownType     = errors.New("unknown punch type")
	ErrOriginalChanged = errors.New("original punch time is immutable")
)
