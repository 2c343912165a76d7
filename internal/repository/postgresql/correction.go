package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/timesheet"
	"github.com/clockwise-hr/timecalc-backend-go/internal/pkg/database"
)

type correctionRepository struct {
	db *database.DB
}

func NewCorrectionRepository(db *database.DB) timesheet.CorrectionRepository {
	return &correctionRepository{db: db}
}

// List implements timesheet.CorrectionRepository.
func (r *correctionRepository) List(ctx context.Context, filter timesheet.CorrectionFilter, companyID string) ([]timesheet.CorrectionItem, error) {
	q := GetQuerier(ctx, r.db)

	var sb strings.Builder
	sb.WriteString(`
		SELECT id, employee_id, company_id, date, code, severity, message, created_at
		FROM correction_items
		WHERE company_id = $1
	`)
	args := []interface{}{companyID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		fmt.Fprintf(&sb, " AND employee_id = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		fmt.Fprintf(&sb, " AND date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		fmt.Fprintf(&sb, " AND date <= $%d", len(args))
	}
	if filter.Severity != nil {
		args = append(args, *filter.Severity)
		fmt.Fprintf(&sb, " AND severity = $%d", len(args))
	}

	sb.WriteString(" ORDER BY date DESC, severity, code")
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	fmt.Fprintf(&sb, " LIMIT %d", limit)

	rows, err := q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list correction items: %w", err)
	}
	defer rows.Close()

	var items []timesheet.CorrectionItem
	for rows.Next() {
		var item timesheet.CorrectionItem
		err := rows.Scan(
			&item.ID, &item.EmployeeID, &item.CompanyID, &item.Date,
			&item.Code, &item.Severity, &item.Message, &item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan correction item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
