package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/punch"
	"github.com/clockwise-hr/timecalc-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type punchRepository struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepository{db: db}
}

const punchColumns = `id, employee_id, company_id, date, type,
		original_minutes, edited_minutes, calculated_minutes, synthetic,
		created_at, updated_at`

// ListByEmployeeDate implements punch.PunchRepository.
func (r *punchRepository) ListByEmployeeDate(ctx context.Context, employeeID string, date time.Time, companyID string) ([]punch.Punch, error) {
	return r.list(ctx, employeeID, date, date, companyID)
}

// ListByEmployeeRange implements punch.PunchRepository.
func (r *punchRepository) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]punch.Punch, error) {
	return r.list(ctx, employeeID, from, to, companyID)
}

func (r *punchRepository) list(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM punches
		WHERE employee_id = $1
		  AND company_id = $2
		  AND date BETWEEN $3 AND $4
		ORDER BY date, edited_minutes
	`, punchColumns)

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	var punches []punch.Punch
	for rows.Next() {
		var p punch.Punch
		err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.CompanyID, &p.Date, &p.Type,
			&p.OriginalMinutes, &p.EditedMinutes, &p.CalculatedMinutes, &p.Synthetic,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	return punches, rows.Err()
}

// UpdateCalculated implements punch.PunchRepository. Only the
// pipeline-owned calculated minutes are touched.
func (r *punchRepository) UpdateCalculated(ctx context.Context, punches []punch.Punch) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE punches
		SET calculated_minutes = $2, updated_at = NOW()
		WHERE id = $1
	`

	for _, p := range punches {
		if _, err := q.Exec(ctx, query, p.ID, p.CalculatedMinutes); err != nil {
			return fmt.Errorf("failed to update calculated minutes: %w", err)
		}
	}
	return nil
}

// ReplaceSynthetic implements punch.PunchRepository.
func (r *punchRepository) ReplaceSynthetic(ctx context.Context, employeeID string, date time.Time, companyID string, punches []punch.Punch) error {
	q := GetQuerier(ctx, r.db)

	deleteQuery := `
		DELETE FROM punches
		WHERE employee_id = $1 AND company_id = $2 AND date = $3 AND synthetic = TRUE
	`
	if _, err := q.Exec(ctx, deleteQuery, employeeID, companyID, date); err != nil {
		return fmt.Errorf("failed to delete synthetic punches: %w", err)
	}

	insertQuery := `
		INSERT INTO punches (
			id, employee_id, company_id, date, type,
			original_minutes, edited_minutes, calculated_minutes, synthetic
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
	`
	for _, p := range punches {
		id := p.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err := q.Exec(ctx, insertQuery,
			id, employeeID, companyID, date, p.Type,
			p.OriginalMinutes, p.EditedMinutes, p.CalculatedMinutes,
		)
		if err != nil {
			return fmt.Errorf("failed to insert synthetic punch: %w", err)
		}
	}
	return nil
}
