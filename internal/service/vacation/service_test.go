package vacation

import (
	"context"
	"testing"
	"time"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/absence"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/vacation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes; the service only ever touches the repository interfaces.

type fakeVacationRepo struct {
	config   vacation.Config
	rules    []vacation.EntitlementRule
	balances map[int]vacation.VacationBalance // by year
	stored   *vacation.VacationBalance
}

func (f *fakeVacationRepo) Replace(_ context.Context, b vacation.VacationBalance) (vacation.VacationBalance, error) {
	b.ID = "bal-1"
	f.stored = &b
	return b, nil
}

func (f *fakeVacationRepo) GetByEmployeeYear(_ context.Context, _ string, year int, _ string) (vacation.VacationBalance, error) {
	b, ok := f.balances[year]
	if !ok {
		return vacation.VacationBalance{}, vacation.ErrBalanceNotFound
	}
	return b, nil
}

func (f *fakeVacationRepo) ListRules(_ context.Context, _ string) ([]vacation.EntitlementRule, error) {
	return f.rules, nil
}

func (f *fakeVacationRepo) GetConfig(_ context.Context, _ string) (vacation.Config, error) {
	return f.config, nil
}

type fakeEmployeeRepo struct {
	emp employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, _ string, _ string) (employee.Employee, error) {
	return f.emp, nil
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context, _ string) ([]employee.Employee, error) {
	return []employee.Employee{f.emp}, nil
}

type fakeAbsenceRepo struct {
	absences []absence.AbsenceDay
	types    map[string]absence.AbsenceType
}

func (f *fakeAbsenceRepo) GetByEmployeeDate(_ context.Context, _ string, date time.Time, _ string) (absence.AbsenceDay, error) {
	for _, a := range f.absences {
		if a.Date.Equal(date) {
			return a, nil
		}
	}
	return absence.AbsenceDay{}, absence.ErrAbsenceNotFound
}

func (f *fakeAbsenceRepo) ListByEmployeeYear(_ context.Context, _ string, year int, _ string) ([]absence.AbsenceDay, error) {
	var out []absence.AbsenceDay
	for _, a := range f.absences {
		if a.Date.Year() == year {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAbsenceRepo) GetType(_ context.Context, id string, _ string) (absence.AbsenceType, error) {
	t, ok := f.types[id]
	if !ok {
		return absence.AbsenceType{}, absence.ErrAbsenceTypeNotFound
	}
	return t, nil
}

func (f *fakeAbsenceRepo) ListTypes(_ context.Context, _ string) (map[string]absence.AbsenceType, error) {
	return f.types, nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func baseConfig() vacation.Config {
	return vacation.Config{
		BaseEntitlement:   dec("30"),
		CarryoverPolicy:   vacation.CarryoverKeep,
		Rounding:          vacation.RoundHalfDay,
		RoundingDirection: vacation.DirectionNearest,
	}
}

func vacationDay(date time.Time) absence.AbsenceDay {
	return absence.AbsenceDay{
		ID:                "abs-" + date.Format("0102"),
		EmployeeID:        "emp-1",
		Date:              date,
		AbsenceTypeID:     "type-vac",
		Portion:           1,
		VacationDeduction: 1,
	}
}

func newTestService(vr *fakeVacationRepo, ar *fakeAbsenceRepo, emp employee.Employee, now time.Time) *VacationServiceImpl {
	s := NewVacationService(vr, &fakeEmployeeRepo{emp: emp}, ar)
	s.now = func() time.Time { return now }
	return s
}

func fullYearEmployee() employee.Employee {
	return employee.Employee{
		ID:       "emp-1",
		HireDate: time.Date(2018, 4, 1, 0, 0, 0, 0, time.UTC),
		Active:   true,
	}
}

func TestRecomputeBalance_FullYear(t *testing.T) {
	vr := &fakeVacationRepo{config: baseConfig(), balances: map[int]vacation.VacationBalance{}}
	ar := &fakeAbsenceRepo{types: map[string]absence.AbsenceType{
		"type-vac": {ID: "type-vac", DeductsVacation: true, CreditsTarget: true},
	}}
	ar.absences = []absence.AbsenceDay{
		vacationDay(time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)),
		vacationDay(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)),
	}

	svc := newTestService(vr, ar, fullYearEmployee(), time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	b, err := svc.RecomputeBalance(context.Background(), "emp-1", 2025, "co-1")
	require.NoError(t, err)

	assert.True(t, b.ProrationFactor.Equal(dec("1")), "got %s", b.ProrationFactor)
	assert.True(t, b.Taken.Equal(dec("2")), "got %s", b.Taken)
	assert.True(t, b.Remaining.Equal(dec("28")), "got %s", b.Remaining)
	require.NotNil(t, vr.stored)
}

func TestRecomputeBalance_EntryYearProration(t *testing.T) {
	vr := &fakeVacationRepo{config: baseConfig(), balances: map[int]vacation.VacationBalance{}}
	vr.config.BaseEntitlement = dec("24")
	vr.config.Rounding = vacation.RoundNone
	ar := &fakeAbsenceRepo{types: map[string]absence.AbsenceType{}}

	// Hired March 1st: March counts, 10 of 12 months active.
	emp := fullYearEmployee()
	emp.HireDate = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	svc := newTestService(vr, ar, emp, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))
	b, err := svc.RecomputeBalance(context.Background(), "emp-1", 2025, "co-1")
	require.NoError(t, err)

	// 24 * 10/12 = 20
	assert.True(t, b.Remaining.Equal(dec("20")), "got %s", b.Remaining)
}

func TestRecomputeBalance_MidMonthEntrySkipsTheMonth(t *testing.T) {
	vr := &fakeVacationRepo{config: baseConfig(), balances: map[int]vacation.VacationBalance{}}
	vr.config.BaseEntitlement = dec("24")
	vr.config.Rounding = vacation.RoundNone
	ar := &fakeAbsenceRepo{types: map[string]absence.AbsenceType{}}

	// Hired March 15th: March does not count, 9 of 12 months active.
	emp := fullYearEmployee()
	emp.HireDate = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	svc := newTestService(vr, ar, emp, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))
	b, err := svc.RecomputeBalance(context.Background(), "emp-1", 2025, "co-1")
	require.NoError(t, err)

	assert.True(t, b.Remaining.Equal(dec("18")), "got %s", b.Remaining)
}

func TestRecomputeBalance_ExitYearProration(t *testing.T) {
	vr := &fakeVacationRepo{config: baseConfig(), balances: map[int]vacation.VacationBalance{}}
	vr.config.BaseEntitlement = dec("24")
	vr.config.Rounding = vacation.RoundNone
	ar := &fakeAbsenceRepo{types: map[string]absence.AbsenceType{}}

	// Exits June 30th: June counts, 6 of 12 months.
	emp := fullYearEmployee()
	exit := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	emp.ExitDate = &exit

	svc := newTestService(vr, ar, emp, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	b, err := svc.RecomputeBalance(context.Background(), "emp-1", 2025, "co-1")
	require.NoError(t, err)

	assert.True(t, b.Remaining.Equal(dec("12")), "got %s", b.Remaining)
}

func TestRecomputeBalance_SpecialEntitlements(t *testing.T) {
	vr := &fakeVacationRepo{config: baseConfig(), balances: map[int]vacation.VacationBalance{}}
	vr.rules = []vacation.EntitlementRule{
		{Kind: vacation.RuleAge, Threshold: 50, ExtraDays: dec("2")},
		{Kind: vacation.RuleTenure, Threshold: 10, ExtraDays: dec("3")},
		{Kind: vacation.RuleDisability, ExtraDays: dec("5")},
	}
	ar := &fakeAbsenceRepo{types: map[string]absence.AbsenceType{}}

	birth := time.Date(1970, 6, 1, 0, 0, 0, 0, time.UTC)
	emp := fullYearEmployee()
	emp.BirthDate = &birth // 55 in 2025
	emp.HireDate = time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	emp.Disabled = true

	svc := newTestService(vr, ar, emp, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	b, err := svc.RecomputeBalance(context.Background(), "emp-1", 2025, "co-1")
	require.NoError(t, err)

	assert.True(t, b.SpecialEntitlement.Equal(dec("10")), "got %s", b.SpecialEntitlement)
	assert.True(t, b.Remaining.Equal(dec("40")), "got %s", b.Remaining)
}

func TestRecomputeBalance_CarryoverKeep(t *testing.T) {
	vr := &fakeVacationRepo{config: baseConfig()}
	vr.balances = map[int]vacation.VacationBalance{
		2024: {Year: 2024, Remaining: dec("4.5")},
	}
	ar := &fakeAbsenceRepo{types: map[string]absence.AbsenceType{}}

	svc := newTestService(vr, ar, fullYearEmployee(), time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	b, err := svc.RecomputeBalance(context.Background(), "emp-1", 2025, "co-1")
	require.NoError(t, err)

	assert.True(t, b.CarryoverIn.Equal(dec("4.5")), "got %s", b.CarryoverIn)
	assert.True(t, b.Remaining.Equal(dec("34.5")), "got %s", b.Remaining)
}

func TestRecomputeBalance_CarryoverForfeitAll(t *testing.T) {
	vr := &fakeVacationRepo{config: baseConfig()}
	vr.config.CarryoverPolicy = vacation.CarryoverForfeitAll
	vr.balances = map[int]vacation.VacationBalance{
		2024: {Year: 2024, Remaining: dec("4.5")},
	}
	ar := &fakeAbsenceRepo{types: map[string]absence.AbsenceType{}}

	svc := newTestService(vr, ar, fullYearEmployee(), time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	b, err := svc.RecomputeBalance(context.Background(), "emp-1", 2025, "co-1")
	require.NoError(t, err)

	assert.True(t, b.CarryoverIn.IsZero())
	assert.True(t, b.Remaining.Equal(dec("30")), "got %s", b.Remaining)
}

func TestRecomputeBalance_CarryoverCutoff(t *testing.T) {
	cfg := baseConfig()
	cfg.CarryoverPolicy = vacation.CarryoverCutoff
	cfg.CutoffMonth = time.March
	cfg.CutoffDay = 31

	ar := &fakeAbsenceRepo{types: map[string]absence.AbsenceType{
		"type-vac": {ID: "type-vac", DeductsVacation: true},
	}}
	// 2 days taken before the cutoff, 1 after.
	ar.absences = []absence.AbsenceDay{
		vacationDay(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)),
		vacationDay(time.Date(2025, 2, 11, 0, 0, 0, 0, time.UTC)),
		vacationDay(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)),
	}

	vr := &fakeVacationRepo{config: cfg}
	vr.balances = map[int]vacation.VacationBalance{
		2024: {Year: 2024, Remaining: dec("5")},
	}

	// Recomputed after the cutoff: 5 carried in, 2 used before the cutoff,
	// 3 forfeited.
	svc := newTestService(vr, ar, fullYearEmployee(), time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	b, err := svc.RecomputeBalance(context.Background(), "emp-1", 2025, "co-1")
	require.NoError(t, err)

	assert.True(t, b.CarryoverIn.Equal(dec("5")))
	assert.True(t, b.CarryoverForfeited.Equal(dec("3")), "got %s", b.CarryoverForfeited)
	// 30 + 5 - 3 forfeited - 3 taken = 29
	assert.True(t, b.Remaining.Equal(dec("29")), "got %s", b.Remaining)
}

func TestRecomputeBalance_CutoffNotReachedYet(t *testing.T) {
	cfg := baseConfig()
	cfg.CarryoverPolicy = vacation.CarryoverCutoff
	cfg.CutoffMonth = time.March
	cfg.CutoffDay = 31

	vr := &fakeVacationRepo{config: cfg}
	vr.balances = map[int]vacation.VacationBalance{
		2024: {Year: 2024, Remaining: dec("5")},
	}
	ar := &fakeAbsenceRepo{types: map[string]absence.AbsenceType{}}

	svc := newTestService(vr, ar, fullYearEmployee(), time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	b, err := svc.RecomputeBalance(context.Background(), "emp-1", 2025, "co-1")
	require.NoError(t, err)

	assert.True(t, b.CarryoverForfeited.IsZero())
	assert.True(t, b.Remaining.Equal(dec("35")), "got %s", b.Remaining)
}

func TestRecomputeBalance_CarryoverCap(t *testing.T) {
	cap := dec("10")
	cfg := baseConfig()
	cfg.CarryoverCap = &cap

	vr := &fakeVacationRepo{config: cfg}
	vr.balances = map[int]vacation.VacationBalance{
		2024: {Year: 2024, Remaining: dec("15")},
	}
	ar := &fakeAbsenceRepo{types: map[string]absence.AbsenceType{}}

	svc := newTestService(vr, ar, fullYearEmployee(), time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	b, err := svc.RecomputeBalance(context.Background(), "emp-1", 2025, "co-1")
	require.NoError(t, err)

	assert.True(t, b.CarryoverIn.Equal(dec("10")), "got %s", b.CarryoverIn)
}

func TestRecomputeBalance_NegativeBalanceClampedToZero(t *testing.T) {
	vr := &fakeVacationRepo{config: baseConfig(), balances: map[int]vacation.VacationBalance{}}
	vr.config.BaseEntitlement = dec("2")
	ar := &fakeAbsenceRepo{types: map[string]absence.AbsenceType{
		"type-vac": {ID: "type-vac", DeductsVacation: true},
	}}
	ar.absences = []absence.AbsenceDay{
		vacationDay(time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)),
		vacationDay(time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC)),
		vacationDay(time.Date(2025, 5, 7, 0, 0, 0, 0, time.UTC)),
	}

	svc := newTestService(vr, ar, fullYearEmployee(), time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	b, err := svc.RecomputeBalance(context.Background(), "emp-1", 2025, "co-1")
	require.NoError(t, err)

	assert.True(t, b.Remaining.IsZero(), "got %s", b.Remaining)
}

func TestRecomputeBalance_NegativeBalanceAllowed(t *testing.T) {
	vr := &fakeVacationRepo{config: baseConfig(), balances: map[int]vacation.VacationBalance{}}
	vr.config.BaseEntitlement = dec("2")
	vr.config.AllowNegativeBalance = true
	ar := &fakeAbsenceRepo{types: map[string]absence.AbsenceType{
		"type-vac": {ID: "type-vac", DeductsVacation: true},
	}}
	ar.absences = []absence.AbsenceDay{
		vacationDay(time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)),
		vacationDay(time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC)),
		vacationDay(time.Date(2025, 5, 7, 0, 0, 0, 0, time.UTC)),
	}

	svc := newTestService(vr, ar, fullYearEmployee(), time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	b, err := svc.RecomputeBalance(context.Background(), "emp-1", 2025, "co-1")
	require.NoError(t, err)

	assert.True(t, b.Remaining.Equal(dec("-1")), "got %s", b.Remaining)
}

func TestRecomputeBalance_HalfDayDeduction(t *testing.T) {
	vr := &fakeVacationRepo{config: baseConfig(), balances: map[int]vacation.VacationBalance{}}
	ar := &fakeAbsenceRepo{types: map[string]absence.AbsenceType{
		"type-vac": {ID: "type-vac", DeductsVacation: true},
	}}
	half := vacationDay(time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC))
	half.Portion = 0.5
	ar.absences = []absence.AbsenceDay{half}

	svc := newTestService(vr, ar, fullYearEmployee(), time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	b, err := svc.RecomputeBalance(context.Background(), "emp-1", 2025, "co-1")
	require.NoError(t, err)

	assert.True(t, b.Taken.Equal(dec("0.5")), "got %s", b.Taken)
	assert.True(t, b.Remaining.Equal(dec("29.5")), "got %s", b.Remaining)
}

func TestRecomputeBalance_NonDeductingAbsenceIgnored(t *testing.T) {
	vr := &fakeVacationRepo{config: baseConfig(), balances: map[int]vacation.VacationBalance{}}
	ar := &fakeAbsenceRepo{types: map[string]absence.AbsenceType{
		"type-sick": {ID: "type-sick", DeductsVacation: false},
	}}
	sick := vacationDay(time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC))
	sick.AbsenceTypeID = "type-sick"
	ar.absences = []absence.AbsenceDay{sick}

	svc := newTestService(vr, ar, fullYearEmployee(), time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	b, err := svc.RecomputeBalance(context.Background(), "emp-1", 2025, "co-1")
	require.NoError(t, err)

	assert.True(t, b.Taken.IsZero())
}

func TestRoundEntitlement(t *testing.T) {
	cases := []struct {
		value  string
		policy vacation.RoundingPolicy
		dir    vacation.RoundingDirection
		want   string
	}{
		{"20.3", vacation.RoundNone, vacation.DirectionNearest, "20.3"},
		{"20.3", vacation.RoundHalfDay, vacation.DirectionNearest, "20.5"},
		{"20.2", vacation.RoundHalfDay, vacation.DirectionNearest, "20"},
		{"20.3", vacation.RoundHalfDay, vacation.DirectionDown, "20"},
		{"20.1", vacation.RoundHalfDay, vacation.DirectionUp, "20.5"},
		{"20.4", vacation.RoundFullDay, vacation.DirectionNearest, "20"},
		{"20.5", vacation.RoundFullDay, vacation.DirectionNearest, "21"},
		{"20.9", vacation.RoundFullDay, vacation.DirectionDown, "20"},
		{"20.1", vacation.RoundFullDay, vacation.DirectionUp, "21"},
	}
	for _, c := range cases {
		got := roundEntitlement(dec(c.value), c.policy, c.dir)
		assert.True(t, got.Equal(dec(c.want)), "round(%s, %s, %s) = %s, want %s",
			c.value, c.policy, c.dir, got, c.want)
	}
}
