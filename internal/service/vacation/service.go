package vacation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/absence"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/vacation"
	"github.com/shopspring/decimal"
)

type VacationServiceImpl struct {
	vacationRepo vacation.VacationRepository
	employeeRepo employee.EmployeeRepository
	absenceRepo  absence.AbsenceRepository

	// now is swappable for tests; cutoff forfeiture depends on it.
	now func() time.Time
}

func NewVacationService(
	vacationRepo vacation.VacationRepository,
	employeeRepo employee.EmployeeRepository,
	absenceRepo absence.AbsenceRepository,
) *VacationServiceImpl {
	return &VacationServiceImpl{
		vacationRepo: vacationRepo,
		employeeRepo: employeeRepo,
		absenceRepo:  absenceRepo,
		now:          time.Now,
	}
}

// RecomputeBalance implements vacation.VacationService. It rebuilds the
// employee's balance for the year from master data and absence records and
// replaces the stored record. Safe to re-run at any time.
func (s *VacationServiceImpl) RecomputeBalance(ctx context.Context, employeeID string, year int, companyID string) (vacation.VacationBalance, error) {
	cfg, err := s.vacationRepo.GetConfig(ctx, companyID)
	if err != nil {
		return vacation.VacationBalance{}, fmt.Errorf("load vacation config: %w", err)
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return vacation.VacationBalance{}, fmt.Errorf("load employee: %w", err)
	}

	rules, err := s.vacationRepo.ListRules(ctx, companyID)
	if err != nil {
		return vacation.VacationBalance{}, fmt.Errorf("load entitlement rules: %w", err)
	}

	absences, types, err := s.loadDeductions(ctx, employeeID, year, companyID)
	if err != nil {
		return vacation.VacationBalance{}, err
	}

	special := specialEntitlement(emp, rules, year)
	proration := prorationFactor(emp, year)

	entitlement := cfg.BaseEntitlement.Add(special).Mul(proration)
	entitlement = roundEntitlement(entitlement, cfg.Rounding, cfg.RoundingDirection)

	carryIn, forfeited := s.carryover(ctx, employeeID, year, companyID, cfg, absences, types)

	taken := decimal.Zero
	for _, a := range absences {
		t, ok := types[a.AbsenceTypeID]
		if !ok || !t.DeductsVacation {
			continue
		}
		taken = taken.Add(deduction(a))
	}

	remaining := entitlement.Add(carryIn).Sub(forfeited).Sub(taken)
	if remaining.IsNegative() && !cfg.AllowNegativeBalance {
		slog.Warn("vacation balance clamped to zero",
			"employee_id", employeeID,
			"year", year,
			"deficit", remaining.Neg().String(),
		)
		remaining = decimal.Zero
	}

	balance := vacation.VacationBalance{
		EmployeeID:         employeeID,
		CompanyID:          companyID,
		Year:               year,
		BaseEntitlement:    cfg.BaseEntitlement,
		SpecialEntitlement: special,
		ProrationFactor:    proration,
		CarryoverIn:        carryIn,
		CarryoverForfeited: forfeited,
		Taken:              taken,
		Remaining:          remaining,
		ComputedAt:         s.now(),
	}

	stored, err := s.vacationRepo.Replace(ctx, balance)
	if err != nil {
		return vacation.VacationBalance{}, fmt.Errorf("replace vacation balance: %w", err)
	}
	return stored, nil
}

func (s *VacationServiceImpl) loadDeductions(ctx context.Context, employeeID string, year int, companyID string) ([]absence.AbsenceDay, map[string]absence.AbsenceType, error) {
	absences, err := s.absenceRepo.ListByEmployeeYear(ctx, employeeID, year, companyID)
	if err != nil {
		return nil, nil, fmt.Errorf("load absences: %w", err)
	}
	types, err := s.absenceRepo.ListTypes(ctx, companyID)
	if err != nil {
		return nil, nil, fmt.Errorf("load absence types: %w", err)
	}
	return absences, types, nil
}

// carryover derives the prior-year carryover after the cap and forfeiture
// rules.
func (s *VacationServiceImpl) carryover(ctx context.Context, employeeID string, year int, companyID string, cfg vacation.Config, absences []absence.AbsenceDay, types map[string]absence.AbsenceType) (carryIn, forfeited decimal.Decimal) {
	if cfg.CarryoverPolicy == vacation.CarryoverForfeitAll {
		return decimal.Zero, decimal.Zero
	}

	prior, err := s.vacationRepo.GetByEmployeeYear(ctx, employeeID, year-1, companyID)
	if err != nil {
		if !errors.Is(err, vacation.ErrBalanceNotFound) {
			slog.Warn("prior vacation balance unavailable", "employee_id", employeeID, "year", year-1, "error", err)
		}
		return decimal.Zero, decimal.Zero
	}

	carryIn = prior.Remaining
	if carryIn.IsNegative() {
		// A negative prior balance carries over as a debt only when the
		// tenant allows negative balances at all.
		if !cfg.AllowNegativeBalance {
			carryIn = decimal.Zero
		}
		return carryIn, decimal.Zero
	}
	if cfg.CarryoverCap != nil && carryIn.GreaterThan(*cfg.CarryoverCap) {
		carryIn = *cfg.CarryoverCap
	}

	if cfg.CarryoverPolicy != vacation.CarryoverCutoff {
		return carryIn, decimal.Zero
	}

	cutoff := time.Date(year, cfg.CutoffMonth, cfg.CutoffDay, 23, 59, 59, 0, time.UTC)
	if s.now().Before(cutoff) {
		return carryIn, decimal.Zero
	}

	// Taken days consume the carryover first; whatever carryover was still
	// unused at the cutoff date is forfeited.
	usedBeforeCutoff := decimal.Zero
	for _, a := range absences {
		t, ok := types[a.AbsenceTypeID]
		if !ok || !t.DeductsVacation || a.Date.After(cutoff) {
			continue
		}
		usedBeforeCutoff = usedBeforeCutoff.Add(deduction(a))
	}

	if usedBeforeCutoff.GreaterThanOrEqual(carryIn) {
		return carryIn, decimal.Zero
	}
	return carryIn, carryIn.Sub(usedBeforeCutoff)
}

func deduction(a absence.AbsenceDay) decimal.Decimal {
	return decimal.NewFromFloat(a.VacationDeduction).Mul(decimal.NewFromFloat(a.Portion))
}

// specialEntitlement sums the extra days of every matched rule.
func specialEntitlement(emp employee.Employee, rules []vacation.EntitlementRule, year int) decimal.Decimal {
	total := decimal.Zero
	for _, rule := range rules {
		switch rule.Kind {
		case vacation.RuleAge:
			if emp.BirthDate == nil {
				continue
			}
			if year-emp.BirthDate.Year() >= rule.Threshold {
				total = total.Add(rule.ExtraDays)
			}
		case vacation.RuleTenure:
			if completedYears(emp.HireDate, time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)) >= rule.Threshold {
				total = total.Add(rule.ExtraDays)
			}
		case vacation.RuleDisability:
			if emp.Disabled {
				total = total.Add(rule.ExtraDays)
			}
		}
	}
	return total
}

func completedYears(since, at time.Time) int {
	years := at.Year() - since.Year()
	anniversary := since.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	return years
}

// prorationFactor is monthsActive/12 for entry or exit years, 1 otherwise.
// A month counts when the employee was employed on its first day (entry) and
// through its last day (exit).
func prorationFactor(emp employee.Employee, year int) decimal.Decimal {
	firstMonth := time.January
	lastMonth := time.December

	if emp.HireDate.Year() > year || (emp.ExitDate != nil && emp.ExitDate.Year() < year) {
		return decimal.Zero
	}
	if emp.HireDate.Year() == year {
		firstMonth = emp.HireDate.Month()
		if emp.HireDate.Day() > 1 {
			firstMonth++
		}
	}
	if emp.ExitDate != nil && emp.ExitDate.Year() == year {
		lastMonth = emp.ExitDate.Month()
		lastOfMonth := time.Date(year, lastMonth+1, 0, 0, 0, 0, 0, emp.ExitDate.Location())
		if emp.ExitDate.Day() < lastOfMonth.Day() {
			lastMonth--
		}
	}

	months := int(lastMonth) - int(firstMonth) + 1
	if months <= 0 {
		return decimal.Zero
	}
	if months >= 12 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(int64(months)).Div(decimal.NewFromInt(12))
}

func roundEntitlement(v decimal.Decimal, policy vacation.RoundingPolicy, dir vacation.RoundingDirection) decimal.Decimal {
	var step decimal.Decimal
	switch policy {
	case vacation.RoundHalfDay:
		step = decimal.NewFromFloat(0.5)
	case vacation.RoundFullDay:
		step = decimal.NewFromInt(1)
	default:
		return v
	}

	q := v.Div(step)
	switch dir {
	case vacation.DirectionDown:
		q = q.Floor()
	case vacation.DirectionUp:
		q = q.Ceil()
	default:
		q = q.Round(0)
	}
	return q.Mul(step)
}
