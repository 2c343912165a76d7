package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/clockwise-hr/timecalc-backend-go/internal/service/batch"
)

// RecalculationJobs recalculates the previous day for every configured
// company overnight, so late bookings and overnight shifts that close after
// midnight are picked up without anyone pressing a button.
type RecalculationJobs struct {
	runner    *batch.Runner
	companies []string
}

func NewRecalculationJobs(runner *batch.Runner, companies []string) *RecalculationJobs {
	return &RecalculationJobs{
		runner:    runner,
		companies: companies,
	}
}

func (j *RecalculationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("nightly_recalculation", 1*time.Hour, j.NightlyRecalculation)
}

func (j *RecalculationJobs) NightlyRecalculation(ctx context.Context) error {
	// Only run in the 02:00-02:59 UTC window
	if time.Now().UTC().Hour() != 2 {
		return nil
	}

	// Cover two days back so an overnight shift ending yesterday gets its
	// partner day recalculated too.
	today := time.Now().UTC().Truncate(24 * time.Hour)
	from := today.AddDate(0, 0, -2)
	to := today.AddDate(0, 0, -1)

	slog.Info("Cron: Starting nightly recalculation", "from", from, "to", to)

	for _, companyID := range j.companies {
		result, err := j.runner.RecalculateDays(ctx, companyID, from, to)
		if err != nil {
			slog.Error("Cron: Nightly recalculation failed", "company_id", companyID, "error", err)
			continue
		}
		slog.Info("Cron: Nightly recalculation finished",
			"company_id", companyID,
			"employees", result.Employees,
			"failures", len(result.Failures),
		)
	}

	return nil
}
