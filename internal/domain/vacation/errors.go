package vacation

import "errors"

var (
	ErrBalanceNotFound  = errors.New("vacation balance not found")
	ErrNegativeBalance  = errors.New("vacation balance would go negative")
	ErrNoConfig         = errors.New("no vacation configuration for company")
)
