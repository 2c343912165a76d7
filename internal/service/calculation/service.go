package calculation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/absence"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/punch"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/schedule"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/timesheet"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/vacation"
	"github.com/clockwise-hr/timecalc-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/timecalc-backend-go/internal/repository/postgresql"
)

// Settings is the tenant-independent calculation configuration.
type Settings struct {
	CoreTimeViolationIsError bool
}

type ServiceImpl struct {
	db *database.DB

	punchRepo    punch.PunchRepository
	planRepo     schedule.DayPlanRepository
	dailyRepo    timesheet.DailyValueRepository
	monthlyRepo  timesheet.MonthlyValueRepository
	rulesRepo    timesheet.FlextimeRulesRepository
	employeeRepo employee.EmployeeRepository
	absenceRepo  absence.AbsenceRepository
	holidayRepo  absence.HolidayRepository
	vacationRepo vacation.VacationRepository

	settings Settings
	hooks    Hooks

	// runInTx wraps per-day persistence in a transaction; a field so tests
	// can run without a live pool.
	runInTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewCalculationService(
	db *database.DB,
	punchRepo punch.PunchRepository,
	planRepo schedule.DayPlanRepository,
	dailyRepo timesheet.DailyValueRepository,
	monthlyRepo timesheet.MonthlyValueRepository,
	rulesRepo timesheet.FlextimeRulesRepository,
	employeeRepo employee.EmployeeRepository,
	absenceRepo absence.AbsenceRepository,
	holidayRepo absence.HolidayRepository,
	vacationRepo vacation.VacationRepository,
	settings Settings,
	hooks Hooks,
) timesheet.CalculationService {
	s := &ServiceImpl{
		db:           db,
		punchRepo:    punchRepo,
		planRepo:     planRepo,
		dailyRepo:    dailyRepo,
		monthlyRepo:  monthlyRepo,
		rulesRepo:    rulesRepo,
		employeeRepo: employeeRepo,
		absenceRepo:  absenceRepo,
		holidayRepo:  holidayRepo,
		vacationRepo: vacationRepo,
		settings:     settings,
		hooks:        hooks,
	}
	s.runInTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, fn)
	}
	return s
}

// CalculateDay implements timesheet.CalculationService.
func (s *ServiceImpl) CalculateDay(ctx context.Context, employeeID string, date time.Time, companyID string) (timesheet.DailyValue, error) {
	values, err := s.CalculateRange(ctx, employeeID, date, date, companyID)
	if err != nil {
		return timesheet.DailyValue{}, err
	}
	for _, v := range values {
		if sameDay(v.Date, date) {
			return v, nil
		}
	}
	return timesheet.DailyValue{}, timesheet.ErrDailyValueNotFound
}

// CalculateRange implements timesheet.CalculationService. Punches of the
// surrounding days are loaded as well so overnight shifts at the range
// edges resolve correctly; days linked by a day change are replaced inside
// one transaction.
func (s *ServiceImpl) CalculateRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]timesheet.DailyValue, error) {
	from, to = midnight(from), midnight(to)
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: %s is after %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID, companyID); err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}

	plans := make(map[time.Time]schedule.DayPlan)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		plan, err := s.planRepo.GetForEmployeeDate(ctx, employeeID, d, companyID)
		if err != nil {
			return nil, fmt.Errorf("resolve day plan for %s: %w", d.Format("2006-01-02"), err)
		}
		plans[d] = plan
	}

	raw, err := s.punchRepo.ListByEmployeeRange(ctx, employeeID, from.AddDate(0, 0, -1), to.AddDate(0, 0, 1), companyID)
	if err != nil {
		return nil, fmt.Errorf("load punches: %w", err)
	}

	resolved, linked := ResolveDayChange(plans[from].DayChangePolicy, raw)

	byDate := make(map[time.Time][]punch.Punch)
	for _, p := range resolved {
		byDate[midnight(p.Date)] = append(byDate[midnight(p.Date)], p)
	}

	// Overnight-linked days are replaced together, even when the partner
	// falls outside the requested range.
	partnerOf := make(map[time.Time]time.Time, 2*len(linked))
	for _, pair := range linked {
		partnerOf[pair[0]] = pair[1]
		partnerOf[pair[1]] = pair[0]
	}

	var values []timesheet.DailyValue
	done := make(map[time.Time]bool)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if done[d] {
			continue
		}
		dates := []time.Time{d}
		if partner, ok := partnerOf[d]; ok && !done[partner] {
			if _, loaded := plans[partner]; !loaded {
				plan, err := s.planRepo.GetForEmployeeDate(ctx, employeeID, partner, companyID)
				if err != nil {
					return nil, fmt.Errorf("resolve day plan for %s: %w", partner.Format("2006-01-02"), err)
				}
				plans[partner] = plan
			}
			dates = append(dates, partner)
		}

		var results []DayResult
		for _, cd := range dates {
			plan := plans[cd]
			res, err := s.calculateOne(ctx, employeeID, companyID, cd, plan, byDate[cd])
			if err != nil {
				return nil, err
			}
			results = append(results, res)
		}

		err := s.runInTx(ctx, func(txCtx context.Context) error {
			for i, res := range results {
				cd := dates[i]
				if err := s.persistDay(txCtx, employeeID, companyID, cd, res, byDate[cd]); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		for i, res := range results {
			done[dates[i]] = true
			values = append(values, res.Value)
			s.hooks.afterDaily(ctx, res.Value)
			slog.Info("daily value calculated",
				"employee_id", employeeID,
				"date", dates[i].Format("2006-01-02"),
				"net_minutes", res.Value.NetMinutes,
				"has_error", res.Value.HasError,
			)
		}
	}

	return values, nil
}

// calculateOne assembles the snapshot for one day and runs the pure
// pipeline on it.
func (s *ServiceImpl) calculateOne(ctx context.Context, employeeID, companyID string, date time.Time, basePlan schedule.DayPlan, punches []punch.Punch) (DayResult, error) {
	effective := &basePlan
	var shiftFindings []Finding

	if basePlan.ShiftDetectionEnabled && len(punches) > 0 {
		first := punches[0].EditedMinutes
		for _, p := range punches {
			if p.EditedMinutes < first {
				first = p.EditedMinutes
			}
		}
		alternates, err := s.loadAlternates(ctx, &basePlan, companyID)
		if err != nil {
			return DayResult{}, err
		}
		effective, shiftFindings = DetectShift(first, &basePlan, alternates)
	}

	in := DayInput{
		EmployeeID:               employeeID,
		CompanyID:                companyID,
		Date:                     date,
		Plan:                     effective,
		Punches:                  punches,
		ShiftFindings:            shiftFindings,
		CoreTimeViolationIsError: s.settings.CoreTimeViolationIsError,
	}

	ab, err := s.absenceRepo.GetByEmployeeDate(ctx, employeeID, date, companyID)
	if err == nil {
		in.Absence = &ab
		abType, err := s.absenceRepo.GetType(ctx, ab.AbsenceTypeID, companyID)
		if err != nil {
			return DayResult{}, fmt.Errorf("load absence type: %w", err)
		}
		in.AbsenceType = &abType
	} else if !errors.Is(err, absence.ErrAbsenceNotFound) {
		return DayResult{}, fmt.Errorf("load absence: %w", err)
	}

	holiday, found, err := s.holidayRepo.GetByDate(ctx, date, companyID)
	if err != nil {
		return DayResult{}, fmt.Errorf("load holiday: %w", err)
	}
	if found {
		in.Holiday = &holiday
	}

	return CalculateDayValue(in), nil
}

func (s *ServiceImpl) loadAlternates(ctx context.Context, plan *schedule.DayPlan, companyID string) ([]*schedule.DayPlan, error) {
	ids := plan.AltPlanIDs
	if len(ids) > 6 {
		ids = ids[:6]
	}
	if len(ids) == 0 {
		return nil, nil
	}
	loaded, err := s.planRepo.GetByIDs(ctx, ids, companyID)
	if err != nil {
		return nil, fmt.Errorf("load alternate plans: %w", err)
	}
	alternates := make([]*schedule.DayPlan, 0, len(ids))
	for _, id := range ids {
		if alt, ok := loaded[id]; ok {
			cp := alt
			alternates = append(alternates, &cp)
		}
	}
	return alternates, nil
}

// persistDay replaces the daily value, its correction items, the synthetic
// punches and the calculated punch times inside the caller's transaction.
func (s *ServiceImpl) persistDay(ctx context.Context, employeeID, companyID string, date time.Time, res DayResult, punches []punch.Punch) error {
	items := make([]timesheet.CorrectionItem, 0, len(res.Findings))
	for _, f := range res.Findings {
		items = append(items, timesheet.CorrectionItem{
			EmployeeID: employeeID,
			CompanyID:  companyID,
			Date:       date,
			Code:       f.Code,
			Severity:   f.Severity,
			Message:    f.Message,
		})
	}

	if _, err := s.dailyRepo.Replace(ctx, res.Value, items); err != nil {
		return fmt.Errorf("replace daily value: %w", err)
	}

	var synthetic []punch.Punch
	for _, p := range punches {
		if p.Synthetic {
			synthetic = append(synthetic, p)
		}
	}
	if err := s.punchRepo.ReplaceSynthetic(ctx, employeeID, date, companyID, synthetic); err != nil {
		return fmt.Errorf("replace synthetic punches: %w", err)
	}

	var adjusted []punch.Punch
	for _, pair := range res.Pairs {
		if pair.Start.ID != "" {
			adjusted = append(adjusted, pair.Start)
		}
		if pair.End.ID != "" {
			adjusted = append(adjusted, pair.End)
		}
	}
	if len(adjusted) > 0 {
		if err := s.punchRepo.UpdateCalculated(ctx, adjusted); err != nil {
			return fmt.Errorf("write calculated punch times: %w", err)
		}
	}

	return nil
}

// CalculateMonth implements timesheet.CalculationService.
func (s *ServiceImpl) CalculateMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string) (timesheet.MonthlyValue, error) {
	existing, err := s.monthlyRepo.GetByEmployeeMonth(ctx, employeeID, year, month, companyID)
	if err == nil && existing.IsClosed {
		return timesheet.MonthlyValue{}, timesheet.ErrMonthClosed
	} else if err != nil && !errors.Is(err, timesheet.ErrMonthlyValueNotFound) {
		return timesheet.MonthlyValue{}, fmt.Errorf("load monthly value: %w", err)
	}

	prior, err := s.loadPriorMonth(ctx, employeeID, year, month, companyID)
	if err != nil {
		return timesheet.MonthlyValue{}, err
	}

	days, err := s.dailyRepo.ListByEmployeeMonth(ctx, employeeID, year, month, companyID)
	if err != nil {
		return timesheet.MonthlyValue{}, fmt.Errorf("load daily values: %w", err)
	}

	rules, err := s.rulesRepo.GetByCompany(ctx, companyID)
	if err != nil {
		return timesheet.MonthlyValue{}, fmt.Errorf("load flextime rules: %w", err)
	}

	vacStart, vacTaken, err := s.monthVacationFigures(ctx, employeeID, year, month, companyID, prior)
	if err != nil {
		return timesheet.MonthlyValue{}, err
	}

	value := EvaluateMonth(MonthInput{
		EmployeeID:    employeeID,
		CompanyID:     companyID,
		Year:          year,
		Month:         month,
		Days:          days,
		Prior:         prior,
		Rules:         rules,
		VacationStart: vacStart,
		VacationTaken: vacTaken,
	})

	stored, err := s.monthlyRepo.Replace(ctx, value)
	if err != nil {
		return timesheet.MonthlyValue{}, fmt.Errorf("replace monthly value: %w", err)
	}

	s.hooks.afterMonthly(ctx, stored)
	slog.Info("monthly value calculated",
		"employee_id", employeeID,
		"year", year,
		"month", int(month),
		"flextime_carryover", stored.FlextimeCarryover,
	)
	return stored, nil
}

// loadPriorMonth enforces the sequential dependency: month N needs month
// N-1 calculated first, except for the very first month of an employee.
func (s *ServiceImpl) loadPriorMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string) (*timesheet.MonthlyValue, error) {
	py, pm := year, month-1
	if month == time.January {
		py, pm = year-1, time.December
	}

	prior, err := s.monthlyRepo.GetByEmployeeMonth(ctx, employeeID, py, pm, companyID)
	if err == nil {
		return &prior, nil
	}
	if !errors.Is(err, timesheet.ErrMonthlyValueNotFound) {
		return nil, fmt.Errorf("load prior month: %w", err)
	}

	any, err := s.monthlyRepo.HasAnyBefore(ctx, employeeID, year, month, companyID)
	if err != nil {
		return nil, fmt.Errorf("check month history: %w", err)
	}
	if any {
		return nil, timesheet.ErrPriorMonthNotCalculated
	}
	return nil, nil
}

// monthVacationFigures derives the month's vacation start and taken days.
func (s *ServiceImpl) monthVacationFigures(ctx context.Context, employeeID string, year int, month time.Month, companyID string, prior *timesheet.MonthlyValue) (float64, float64, error) {
	absences, err := s.absenceRepo.ListByEmployeeYear(ctx, employeeID, year, companyID)
	if err != nil {
		return 0, 0, fmt.Errorf("load absences: %w", err)
	}
	types, err := s.absenceRepo.ListTypes(ctx, companyID)
	if err != nil {
		return 0, 0, fmt.Errorf("load absence types: %w", err)
	}

	taken, takenBefore := 0.0, 0.0
	for _, a := range absences {
		t, ok := types[a.AbsenceTypeID]
		if !ok || !t.DeductsVacation {
			continue
		}
		d := a.VacationDeduction * a.Portion
		switch {
		case a.Date.Month() == month:
			taken += d
		case a.Date.Month() < month:
			takenBefore += d
		}
	}

	if prior != nil && prior.Year == year {
		return prior.VacationEnd, taken, nil
	}

	yearAvailable := 0.0
	balance, err := s.vacationRepo.GetByEmployeeYear(ctx, employeeID, year, companyID)
	if err == nil {
		available := balance.Remaining.Add(balance.Taken)
		yearAvailable, _ = available.Float64()
	} else if !errors.Is(err, vacation.ErrBalanceNotFound) {
		return 0, 0, fmt.Errorf("load vacation balance: %w", err)
	}

	return yearAvailable - takenBefore, taken, nil
}

// CloseMonth implements timesheet.CalculationService.
func (s *ServiceImpl) CloseMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string, actor string) (timesheet.MonthlyValue, error) {
	existing, err := s.monthlyRepo.GetByEmployeeMonth(ctx, employeeID, year, month, companyID)
	if err != nil {
		return timesheet.MonthlyValue{}, err
	}
	if existing.IsClosed {
		return timesheet.MonthlyValue{}, timesheet.ErrMonthClosed
	}

	value, err := s.monthlyRepo.SetClosed(ctx, employeeID, year, month, companyID, true, actor)
	if err != nil {
		return timesheet.MonthlyValue{}, fmt.Errorf("close month: %w", err)
	}
	slog.Info("month closed", "employee_id", employeeID, "year", year, "month", int(month), "actor", actor)
	return value, nil
}

// ReopenMonth implements timesheet.CalculationService.
func (s *ServiceImpl) ReopenMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string, actor string) (timesheet.MonthlyValue, error) {
	existing, err := s.monthlyRepo.GetByEmployeeMonth(ctx, employeeID, year, month, companyID)
	if err != nil {
		return timesheet.MonthlyValue{}, err
	}
	if !existing.IsClosed {
		return timesheet.MonthlyValue{}, timesheet.ErrMonthNotClosed
	}

	value, err := s.monthlyRepo.SetClosed(ctx, employeeID, year, month, companyID, false, actor)
	if err != nil {
		return timesheet.MonthlyValue{}, fmt.Errorf("reopen month: %w", err)
	}
	slog.Info("month reopened", "employee_id", employeeID, "year", year, "month", int(month), "actor", actor)
	return value, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
