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

type dailyValueRepository struct {
	db *database.DB
}

func NewDailyValueRepository(db *database.DB) timesheet.DailyValueRepository {
	return &dailyValueRepository{db: db}
}

// Replace implements timesheet.DailyValueRepository. Callers run it inside
// WithTransaction so the delete and the inserts land atomically.
func (r *dailyValueRepository) Replace(ctx context.Context, value timesheet.DailyValue, items []timesheet.CorrectionItem) (timesheet.DailyValue, error) {
	q := GetQuerier(ctx, r.db)

	deleteValues := `
		DELETE FROM daily_values
		WHERE employee_id = $1 AND company_id = $2 AND date = $3
	`
	if _, err := q.Exec(ctx, deleteValues, value.EmployeeID, value.CompanyID, value.Date); err != nil {
		return timesheet.DailyValue{}, fmt.Errorf("failed to delete daily value: %w", err)
	}

	deleteItems := `
		DELETE FROM correction_items
		WHERE employee_id = $1 AND company_id = $2 AND date = $3
	`
	if _, err := q.Exec(ctx, deleteItems, value.EmployeeID, value.CompanyID, value.Date); err != nil {
		return timesheet.DailyValue{}, fmt.Errorf("failed to delete correction items: %w", err)
	}

	insertValue := `
		INSERT INTO daily_values (
			id, employee_id, company_id, date, day_plan_id,
			gross_minutes, net_minutes, target_minutes,
			overtime_minutes, undertime_minutes, break_minutes, capped_minutes,
			absence_day_id, holiday_id,
			is_manually_changed, has_error, error_codes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		) RETURNING id, created_at, updated_at
	`
	value.ID = uuid.NewString()
	err := q.QueryRow(ctx, insertValue,
		value.ID, value.EmployeeID, value.CompanyID, value.Date, value.DayPlanID,
		value.GrossMinutes, value.NetMinutes, value.TargetMinutes,
		value.OvertimeMinutes, value.UndertimeMinutes, value.BreakMinutes, value.CappedMinutes,
		value.AbsenceDayID, value.HolidayID,
		value.IsManuallyChanged, value.HasError, value.ErrorCodes,
	).Scan(&value.ID, &value.CreatedAt, &value.UpdatedAt)
	if err != nil {
		return timesheet.DailyValue{}, fmt.Errorf("failed to insert daily value: %w", err)
	}

	insertItem := `
		INSERT INTO correction_items (
			id, employee_id, company_id, date, code, severity, message
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, item := range items {
		_, err := q.Exec(ctx, insertItem,
			uuid.NewString(), item.EmployeeID, item.CompanyID, item.Date,
			item.Code, item.Severity, item.Message,
		)
		if err != nil {
			return timesheet.DailyValue{}, fmt.Errorf("failed to insert correction item: %w", err)
		}
	}

	return value, nil
}

const dailyValueColumns = `id, employee_id, company_id, date, day_plan_id,
		gross_minutes, net_minutes, target_minutes,
		overtime_minutes, undertime_minutes, break_minutes, capped_minutes,
		absence_day_id, holiday_id,
		is_manually_changed, has_error, error_codes,
		created_at, updated_at`

func scanDailyValue(row pgx.Row) (timesheet.DailyValue, error) {
	var v timesheet.DailyValue
	err := row.Scan(
		&v.ID, &v.EmployeeID, &v.CompanyID, &v.Date, &v.DayPlanID,
		&v.GrossMinutes, &v.NetMinutes, &v.TargetMinutes,
		&v.OvertimeMinutes, &v.UndertimeMinutes, &v.BreakMinutes, &v.CappedMinutes,
		&v.AbsenceDayID, &v.HolidayID,
		&v.IsManuallyChanged, &v.HasError, &v.ErrorCodes,
		&v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}

// GetByEmployeeDate implements timesheet.DailyValueRepository.
func (r *dailyValueRepository) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time, companyID string) (timesheet.DailyValue, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM daily_values
		WHERE employee_id = $1 AND company_id = $2 AND date = $3
	`, dailyValueColumns)

	value, err := scanDailyValue(q.QueryRow(ctx, query, employeeID, companyID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.DailyValue{}, timesheet.ErrDailyValueNotFound
		}
		return timesheet.DailyValue{}, fmt.Errorf("failed to get daily value: %w", err)
	}
	return value, nil
}

// ListByEmployeeMonth implements timesheet.DailyValueRepository.
func (r *dailyValueRepository) ListByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string) ([]timesheet.DailyValue, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM daily_values
		WHERE employee_id = $1 AND company_id = $2
		  AND date >= $3 AND date < $4
		ORDER BY date
	`, dailyValueColumns)

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := q.Query(ctx, query, employeeID, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily values: %w", err)
	}
	defer rows.Close()

	var values []timesheet.DailyValue
	for rows.Next() {
		v, err := scanDailyValue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
