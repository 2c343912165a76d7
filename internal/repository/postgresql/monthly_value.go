package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/timesheet"
	"github.com/clockwise-hr/timecalc-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type monthlyValueRepository struct {
	db *database.DB
}

func NewMonthlyValueRepository(db *database.DB) timesheet.MonthlyValueRepository {
	return &monthlyValueRepository{db: db}
}

const monthlyValueColumns = `id, employee_id, company_id, year, month,
		gross_minutes, net_minutes, target_minutes,
		overtime_minutes, undertime_minutes, break_minutes, error_days,
		flextime_start, flextime_change, flextime_end, flextime_carryover,
		vacation_start, vacation_taken, vacation_end,
		is_closed, closed_at, closed_by, reopened_at, reopened_by,
		created_at, updated_at`

func scanMonthlyValue(row pgx.Row) (timesheet.MonthlyValue, error) {
	var v timesheet.MonthlyValue
	var month int
	err := row.Scan(
		&v.ID, &v.EmployeeID, &v.CompanyID, &v.Year, &month,
		&v.GrossMinutes, &v.NetMinutes, &v.TargetMinutes,
		&v.OvertimeMinutes, &v.UndertimeMinutes, &v.BreakMinutes, &v.ErrorDays,
		&v.FlextimeStart, &v.FlextimeChange, &v.FlextimeEnd, &v.FlextimeCarryover,
		&v.VacationStart, &v.VacationTaken, &v.VacationEnd,
		&v.IsClosed, &v.ClosedAt, &v.ClosedBy, &v.ReopenedAt, &v.ReopenedBy,
		&v.CreatedAt, &v.UpdatedAt,
	)
	v.Month = time.Month(month)
	return v, err
}

// Replace implements timesheet.MonthlyValueRepository. The upsert refuses
// to touch a closed month.
func (r *monthlyValueRepository) Replace(ctx context.Context, value timesheet.MonthlyValue) (timesheet.MonthlyValue, error) {
	existing, err := r.GetByEmployeeMonth(ctx, value.EmployeeID, value.Year, value.Month, value.CompanyID)
	if err == nil && existing.IsClosed {
		return timesheet.MonthlyValue{}, timesheet.ErrMonthClosed
	} else if err != nil && !errors.Is(err, timesheet.ErrMonthlyValueNotFound) {
		return timesheet.MonthlyValue{}, err
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_values (
			id, employee_id, company_id, year, month,
			gross_minutes, net_minutes, target_minutes,
			overtime_minutes, undertime_minutes, break_minutes, error_days,
			flextime_start, flextime_change, flextime_end, flextime_carryover,
			vacation_start, vacation_taken, vacation_end, is_closed
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, FALSE
		)
		ON CONFLICT (employee_id, company_id, year, month) DO UPDATE SET
			gross_minutes = EXCLUDED.gross_minutes,
			net_minutes = EXCLUDED.net_minutes,
			target_minutes = EXCLUDED.target_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			undertime_minutes = EXCLUDED.undertime_minutes,
			break_minutes = EXCLUDED.break_minutes,
			error_days = EXCLUDED.error_days,
			flextime_start = EXCLUDED.flextime_start,
			flextime_change = EXCLUDED.flextime_change,
			flextime_end = EXCLUDED.flextime_end,
			flextime_carryover = EXCLUDED.flextime_carryover,
			vacation_start = EXCLUDED.vacation_start,
			vacation_taken = EXCLUDED.vacation_taken,
			vacation_end = EXCLUDED.vacation_end,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		uuid.NewString(), value.EmployeeID, value.CompanyID, value.Year, int(value.Month),
		value.GrossMinutes, value.NetMinutes, value.TargetMinutes,
		value.OvertimeMinutes, value.UndertimeMinutes, value.BreakMinutes, value.ErrorDays,
		value.FlextimeStart, value.FlextimeChange, value.FlextimeEnd, value.FlextimeCarryover,
		value.VacationStart, value.VacationTaken, value.VacationEnd,
	).Scan(&value.ID, &value.CreatedAt, &value.UpdatedAt)
	if err != nil {
		return timesheet.MonthlyValue{}, fmt.Errorf("failed to upsert monthly value: %w", err)
	}
	return value, nil
}

// GetByEmployeeMonth implements timesheet.MonthlyValueRepository.
func (r *monthlyValueRepository) GetByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string) (timesheet.MonthlyValue, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM monthly_values
		WHERE employee_id = $1 AND company_id = $2 AND year = $3 AND month = $4
	`, monthlyValueColumns)

	value, err := scanMonthlyValue(q.QueryRow(ctx, query, employeeID, companyID, year, int(month)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.MonthlyValue{}, timesheet.ErrMonthlyValueNotFound
		}
		return timesheet.MonthlyValue{}, fmt.Errorf("failed to get monthly value: %w", err)
	}
	return value, nil
}

// SetClosed implements timesheet.MonthlyValueRepository.
func (r *monthlyValueRepository) SetClosed(ctx context.Context, employeeID string, year int, month time.Month, companyID string, closed bool, actor string) (timesheet.MonthlyValue, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	if closed {
		query = fmt.Sprintf(`
			UPDATE monthly_values
			SET is_closed = TRUE, closed_at = NOW(), closed_by = $5, updated_at = NOW()
			WHERE employee_id = $1 AND company_id = $2 AND year = $3 AND month = $4
			RETURNING %s
		`, monthlyValueColumns)
	} else {
		query = fmt.Sprintf(`
			UPDATE monthly_values
			SET is_closed = FALSE, reopened_at = NOW(), reopened_by = $5, updated_at = NOW()
			WHERE employee_id = $1 AND company_id = $2 AND year = $3 AND month = $4
			RETURNING %s
		`, monthlyValueColumns)
	}

	value, err := scanMonthlyValue(q.QueryRow(ctx, query, employeeID, companyID, year, int(month), actor))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.MonthlyValue{}, timesheet.ErrMonthlyValueNotFound
		}
		return timesheet.MonthlyValue{}, fmt.Errorf("failed to update month state: %w", err)
	}
	return value, nil
}

// HasAnyBefore implements timesheet.MonthlyValueRepository.
func (r *monthlyValueRepository) HasAnyBefore(ctx context.Context, employeeID string, year int, month time.Month, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM monthly_values
			WHERE employee_id = $1 AND company_id = $2
			  AND (year < $3 OR (year = $3 AND month < $4))
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, companyID, year, int(month)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check month history: %w", err)
	}
	return exists, nil
}
