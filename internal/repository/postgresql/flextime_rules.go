package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/timesheet"
	"github.com/clockwise-hr/timecalc-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type flextimeRulesRepository struct {
	db *database.DB
}

func NewFlextimeRulesRepository(db *database.DB) timesheet.FlextimeRulesRepository {
	return &flextimeRulesRepository{db: db}
}

// GetByCompany implements timesheet.FlextimeRulesRepository. Companies
// without a configured row evaluate with the plain carryover mode.
func (r *flextimeRulesRepository) GetByCompany(ctx context.Context, companyID string) (timesheet.FlextimeRules, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT credit_type, max_monthly_flextime, flextime_threshold,
			   lower_annual_limit, upper_annual_limit
		FROM flextime_rules
		WHERE company_id = $1
	`

	var rules timesheet.FlextimeRules
	err := q.QueryRow(ctx, query, companyID).Scan(
		&rules.CreditType, &rules.MaxMonthlyFlextime, &rules.FlextimeThreshold,
		&rules.LowerAnnualLimit, &rules.UpperAnnualLimit,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.FlextimeRules{CreditType: timesheet.CreditNone}, nil
		}
		return timesheet.FlextimeRules{}, fmt.Errorf("failed to get flextime rules: %w", err)
	}
	return rules, nil
}
