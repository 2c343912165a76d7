package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/vacation"
	"github.com/clockwise-hr/timecalc-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type vacationRepository struct {
	db *database.DB
}

func NewVacationRepository(db *database.DB) vacation.VacationRepository {
	return &vacationRepository{db: db}
}

// Replace implements vacation.VacationRepository.
func (r *vacationRepository) Replace(ctx context.Context, balance vacation.VacationBalance) (vacation.VacationBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO vacation_balances (
			id, employee_id, company_id, year,
			base_entitlement, special_entitlement, proration_factor,
			carryover_in, carryover_forfeited, taken, remaining, computed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (employee_id, company_id, year) DO UPDATE SET
			base_entitlement = EXCLUDED.base_entitlement,
			special_entitlement = EXCLUDED.special_entitlement,
			proration_factor = EXCLUDED.proration_factor,
			carryover_in = EXCLUDED.carryover_in,
			carryover_forfeited = EXCLUDED.carryover_forfeited,
			taken = EXCLUDED.taken,
			remaining = EXCLUDED.remaining,
			computed_at = EXCLUDED.computed_at,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		uuid.NewString(), balance.EmployeeID, balance.CompanyID, balance.Year,
		balance.BaseEntitlement, balance.SpecialEntitlement, balance.ProrationFactor,
		balance.CarryoverIn, balance.CarryoverForfeited, balance.Taken, balance.Remaining,
		balance.ComputedAt,
	).Scan(&balance.ID, &balance.CreatedAt, &balance.UpdatedAt)
	if err != nil {
		return vacation.VacationBalance{}, fmt.Errorf("failed to upsert vacation balance: %w", err)
	}
	return balance, nil
}

// GetByEmployeeYear implements vacation.VacationRepository.
func (r *vacationRepository) GetByEmployeeYear(ctx context.Context, employeeID string, year int, companyID string) (vacation.VacationBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, year,
			   base_entitlement, special_entitlement, proration_factor,
			   carryover_in, carryover_forfeited, taken, remaining,
			   computed_at, created_at, updated_at
		FROM vacation_balances
		WHERE employee_id = $1 AND company_id = $2 AND year = $3
	`

	var b vacation.VacationBalance
	err := q.QueryRow(ctx, query, employeeID, companyID, year).Scan(
		&b.ID, &b.EmployeeID, &b.CompanyID, &b.Year,
		&b.BaseEntitlement, &b.SpecialEntitlement, &b.ProrationFactor,
		&b.CarryoverIn, &b.CarryoverForfeited, &b.Taken, &b.Remaining,
		&b.ComputedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return vacation.VacationBalance{}, vacation.ErrBalanceNotFound
		}
		return vacation.VacationBalance{}, fmt.Errorf("failed to get vacation balance: %w", err)
	}
	return b, nil
}

// ListRules implements vacation.VacationRepository.
func (r *vacationRepository) ListRules(ctx context.Context, companyID string) ([]vacation.EntitlementRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, kind, threshold, extra_days
		FROM vacation_entitlement_rules
		WHERE company_id = $1
		ORDER BY kind, threshold
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entitlement rules: %w", err)
	}
	defer rows.Close()

	var rules []vacation.EntitlementRule
	for rows.Next() {
		var rule vacation.EntitlementRule
		if err := rows.Scan(&rule.ID, &rule.CompanyID, &rule.Kind, &rule.Threshold, &rule.ExtraDays); err != nil {
			return nil, fmt.Errorf("failed to scan entitlement rule: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// GetConfig implements vacation.VacationRepository.
func (r *vacationRepository) GetConfig(ctx context.Context, companyID string) (vacation.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT base_entitlement, carryover_policy, carryover_cap,
			   cutoff_month, cutoff_day, rounding, rounding_direction,
			   allow_negative_balance
		FROM vacation_configs
		WHERE company_id = $1
	`

	var cfg vacation.Config
	var cap *decimal.Decimal
	var cutoffMonth int
	err := q.QueryRow(ctx, query, companyID).Scan(
		&cfg.BaseEntitlement, &cfg.CarryoverPolicy, &cap,
		&cutoffMonth, &cfg.CutoffDay, &cfg.Rounding, &cfg.RoundingDirection,
		&cfg.AllowNegativeBalance,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return vacation.Config{}, vacation.ErrNoConfig
		}
		return vacation.Config{}, fmt.Errorf("failed to get vacation config: %w", err)
	}
	cfg.CarryoverCap = cap
	cfg.CutoffMonth = time.Month(cutoffMonth)
	return cfg, nil
}
