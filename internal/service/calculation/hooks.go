package calculation

import (
	"context"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/timesheet"
)

// Hooks is the extension point for tenant-specific post-processing. Each
// hook receives the finished record after it has been persisted; the core
// pipeline never depends on what a hook does.
type Hooks struct {
	AfterDaily   func(ctx context.Context, value timesheet.DailyValue)
	AfterMonthly func(ctx context.Context, value timesheet.MonthlyValue)
}

func (h Hooks) afterDaily(ctx context.Context, value timesheet.DailyValue) {
	if h.AfterDaily != nil {
		h.AfterDaily(ctx, value)
	}
}

func (h Hooks) afterMonthly(ctx context.Context, value timesheet.MonthlyValue) {
	if h.AfterMonthly != nil {
		h.AfterMonthly(ctx, value)
	}
}
