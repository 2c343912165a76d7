package batch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/timesheet"
	"golang.org/x/sync/errgroup"
)

// Runner drives recalculation batches. Employees are fully independent and
// fan out across the worker pool; within one employee, days run in date
// order and months strictly in sequence.
type Runner struct {
	calcService  timesheet.CalculationService
	employeeRepo employee.EmployeeRepository
	workers      int
}

func NewRunner(calcService timesheet.CalculationService, employeeRepo employee.EmployeeRepository, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		calcService:  calcService,
		employeeRepo: employeeRepo,
		workers:      workers,
	}
}

// Failure records one employee whose recalculation failed. Failures never
// abort the rest of the batch.
type Failure struct {
	EmployeeID string
	Err        error
}

// Result summarizes one batch run.
type Result struct {
	Employees int
	Failures  []Failure
}

// RecalculateDays recalculates [from, to] for every active employee of the
// company.
func (r *Runner) RecalculateDays(ctx context.Context, companyID string, from, to time.Time) (Result, error) {
	employees, err := r.employeeRepo.ListActive(ctx, companyID)
	if err != nil {
		return Result{}, err
	}

	result := Result{Employees: len(employees)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, emp := range employees {
		g.Go(func() error {
			if _, err := r.calcService.CalculateRange(gctx, emp.ID, from, to, companyID); err != nil {
				mu.Lock()
				result.Failures = append(result.Failures, Failure{EmployeeID: emp.ID, Err: err})
				mu.Unlock()
				slog.Warn("daily recalculation failed", "employee_id", emp.ID, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	slog.Info("daily recalculation batch finished",
		"company_id", companyID,
		"employees", result.Employees,
		"failures", len(result.Failures),
	)
	return result, nil
}

// RecalculateDaysFor recalculates [from, to] for an explicit set of
// employees.
func (r *Runner) RecalculateDaysFor(ctx context.Context, companyID string, employeeIDs []string, from, to time.Time) (Result, error) {
	result := Result{Employees: len(employeeIDs)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, id := range employeeIDs {
		g.Go(func() error {
			if _, err := r.calcService.CalculateRange(gctx, id, from, to, companyID); err != nil {
				mu.Lock()
				result.Failures = append(result.Failures, Failure{EmployeeID: id, Err: err})
				mu.Unlock()
				slog.Warn("daily recalculation failed", "employee_id", id, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}

// RecalculateMonths recalculates the month range for every active employee.
// Months of one employee run oldest first because each depends on the
// previous month's carryover.
func (r *Runner) RecalculateMonths(ctx context.Context, companyID string, fromYear int, fromMonth time.Month, toYear int, toMonth time.Month) (Result, error) {
	employees, err := r.employeeRepo.ListActive(ctx, companyID)
	if err != nil {
		return Result{}, err
	}

	result := Result{Employees: len(employees)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, emp := range employees {
		g.Go(func() error {
			year, month := fromYear, fromMonth
			for year < toYear || (year == toYear && month <= toMonth) {
				if _, err := r.calcService.CalculateMonth(gctx, emp.ID, year, month, companyID); err != nil {
					mu.Lock()
					result.Failures = append(result.Failures, Failure{EmployeeID: emp.ID, Err: err})
					mu.Unlock()
					slog.Warn("monthly recalculation failed",
						"employee_id", emp.ID, "year", year, "month", int(month), "error", err)
					break
				}
				if month == time.December {
					year, month = year+1, time.January
				} else {
					month++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	slog.Info("monthly recalculation batch finished",
		"company_id", companyID,
		"employees", result.Employees,
		"failures", len(result.Failures),
	)
	return result, nil
}
