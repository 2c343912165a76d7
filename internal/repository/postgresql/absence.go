package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/absence"
	"github.com/clockwise-hr/timecalc-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type absenceRepository struct {
	db *database.DB
}

func NewAbsenceRepository(db *database.DB) absence.AbsenceRepository {
	return &absenceRepository{db: db}
}

const absenceColumns = `id, employee_id, company_id, date, absence_type_id,
		portion, vacation_deduction, created_at, updated_at`

// GetByEmployeeDate implements absence.AbsenceRepository.
func (r *absenceRepository) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time, companyID string) (absence.AbsenceDay, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM absence_days
		WHERE employee_id = $1 AND company_id = $2 AND date = $3
	`, absenceColumns)

	var a absence.AbsenceDay
	err := q.QueryRow(ctx, query, employeeID, companyID, date).Scan(
		&a.ID, &a.EmployeeID, &a.CompanyID, &a.Date, &a.AbsenceTypeID,
		&a.Portion, &a.VacationDeduction, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return absence.AbsenceDay{}, absence.ErrAbsenceNotFound
		}
		return absence.AbsenceDay{}, fmt.Errorf("failed to get absence day: %w", err)
	}
	return a, nil
}

// ListByEmployeeYear implements absence.AbsenceRepository.
func (r *absenceRepository) ListByEmployeeYear(ctx context.Context, employeeID string, year int, companyID string) ([]absence.AbsenceDay, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM absence_days
		WHERE employee_id = $1 AND company_id = $2
		  AND date >= $3 AND date < $4
		ORDER BY date
	`, absenceColumns)

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	rows, err := q.Query(ctx, query, employeeID, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list absence days: %w", err)
	}
	defer rows.Close()

	var absences []absence.AbsenceDay
	for rows.Next() {
		var a absence.AbsenceDay
		err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.CompanyID, &a.Date, &a.AbsenceTypeID,
			&a.Portion, &a.VacationDeduction, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan absence day: %w", err)
		}
		absences = append(absences, a)
	}
	return absences, rows.Err()
}

// GetType implements absence.AbsenceRepository.
func (r *absenceRepository) GetType(ctx context.Context, id string, companyID string) (absence.AbsenceType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, code, name,
			   credits_target, deducts_vacation, overrides_holiday,
			   created_at, updated_at
		FROM absence_types
		WHERE id = $1 AND company_id = $2
	`

	var t absence.AbsenceType
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&t.ID, &t.CompanyID, &t.Code, &t.Name,
		&t.CreditsTarget, &t.DeductsVacation, &t.OverridesHoliday,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return absence.AbsenceType{}, absence.ErrAbsenceTypeNotFound
		}
		return absence.AbsenceType{}, fmt.Errorf("failed to get absence type: %w", err)
	}
	return t, nil
}

// ListTypes implements absence.AbsenceRepository.
func (r *absenceRepository) ListTypes(ctx context.Context, companyID string) (map[string]absence.AbsenceType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, code, name,
			   credits_target, deducts_vacation, overrides_holiday,
			   created_at, updated_at
		FROM absence_types
		WHERE company_id = $1
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list absence types: %w", err)
	}
	defer rows.Close()

	types := make(map[string]absence.AbsenceType)
	for rows.Next() {
		var t absence.AbsenceType
		err := rows.Scan(
			&t.ID, &t.CompanyID, &t.Code, &t.Name,
			&t.CreditsTarget, &t.DeductsVacation, &t.OverridesHoliday,
			&t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan absence type: %w", err)
		}
		types[t.ID] = t
	}
	return types, rows.Err()
}

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) absence.HolidayRepository {
	return &holidayRepository{db: db}
}

// GetByDate implements absence.HolidayRepository.
func (r *holidayRepository) GetByDate(ctx context.Context, date time.Time, companyID string) (absence.Holiday, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, date, name, portion
		FROM holidays
		WHERE company_id = $1 AND date = $2
	`

	var h absence.Holiday
	err := q.QueryRow(ctx, query, companyID, date).Scan(&h.ID, &h.CompanyID, &h.Date, &h.Name, &h.Portion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return absence.Holiday{}, false, nil
		}
		return absence.Holiday{}, false, fmt.Errorf("failed to get holiday: %w", err)
	}
	return h, true, nil
}

// ListByYear implements absence.HolidayRepository.
func (r *holidayRepository) ListByYear(ctx context.Context, year int, companyID string) ([]absence.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, date, name, portion
		FROM holidays
		WHERE company_id = $1 AND date >= $2 AND date < $3
		ORDER BY date
	`

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	rows, err := q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []absence.Holiday
	for rows.Next() {
		var h absence.Holiday
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.Date, &h.Name, &h.Portion); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}
