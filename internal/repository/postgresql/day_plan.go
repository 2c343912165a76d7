package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/schedule"
	"github.com/clockwise-hr/timecalc-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type dayPlanRepository struct {
	db *database.DB
}

func NewDayPlanRepository(db *database.DB) schedule.DayPlanRepository {
	return &dayPlanRepository{db: db}
}

const dayPlanColumns = `id, company_id, name, mode,
		come_from, come_to, go_from, go_to,
		target_minutes, target_enabled, alt_target_minutes, alt_target_enabled,
		tolerance_come_minus, tolerance_come_plus, tolerance_go_minus, tolerance_go_plus,
		variable_work_time,
		come_rounding_mode, come_rounding_interval, come_rounding_all,
		go_rounding_mode, go_rounding_interval, go_rounding_all,
		max_net_minutes, no_punch_policy, day_change_policy,
		shift_detection_enabled, shift_window_from, shift_window_to,
		created_at, updated_at`

func scanDayPlan(row pgx.Row) (schedule.DayPlan, error) {
	var p schedule.DayPlan
	var windowFrom, windowTo *int
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.Mode,
		&p.ComeFrom, &p.ComeTo, &p.GoFrom, &p.GoTo,
		&p.TargetMinutes, &p.TargetEnabled, &p.AltTargetMinutes, &p.AltTargetEnabled,
		&p.Tolerance.ComeMinus, &p.Tolerance.ComePlus, &p.Tolerance.GoMinus, &p.Tolerance.GoPlus,
		&p.Tolerance.VariableWorkTime,
		&p.ComeRounding.Mode, &p.ComeRounding.IntervalMinutes, &p.ComeRounding.ApplyToAllPunches,
		&p.GoRounding.Mode, &p.GoRounding.IntervalMinutes, &p.GoRounding.ApplyToAllPunches,
		&p.MaxNetMinutes, &p.NoPunchPolicy, &p.DayChangePolicy,
		&p.ShiftDetectionEnabled, &windowFrom, &windowTo,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return schedule.DayPlan{}, err
	}
	if windowFrom != nil && windowTo != nil {
		p.ShiftWindow = &schedule.ShiftWindow{From: *windowFrom, To: *windowTo}
	}
	return p, nil
}

// GetByID implements schedule.DayPlanRepository.
func (r *dayPlanRepository) GetByID(ctx context.Context, id string, companyID string) (schedule.DayPlan, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM day_plans WHERE id = $1 AND company_id = $2`, dayPlanColumns)

	plan, err := scanDayPlan(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.DayPlan{}, schedule.ErrDayPlanNotFound
		}
		return schedule.DayPlan{}, fmt.Errorf("failed to get day plan: %w", err)
	}

	if err := r.attachDetails(ctx, &plan); err != nil {
		return schedule.DayPlan{}, err
	}
	return plan, nil
}

// GetByIDs implements schedule.DayPlanRepository.
func (r *dayPlanRepository) GetByIDs(ctx context.Context, ids []string, companyID string) (map[string]schedule.DayPlan, error) {
	plans := make(map[string]schedule.DayPlan, len(ids))
	for _, id := range ids {
		plan, err := r.GetByID(ctx, id, companyID)
		if err != nil {
			if errors.Is(err, schedule.ErrDayPlanNotFound) {
				continue
			}
			return nil, err
		}
		plans[id] = plan
	}
	return plans, nil
}

// GetForEmployeeDate implements schedule.DayPlanRepository.
func (r *dayPlanRepository) GetForEmployeeDate(ctx context.Context, employeeID string, date time.Time, companyID string) (schedule.DayPlan, error) {
	assignment, err := r.GetWeekAssignment(ctx, employeeID, date, companyID)
	if err != nil {
		return schedule.DayPlan{}, err
	}

	planID := assignment.PlanIDs[int(date.Weekday())]
	if planID == "" {
		return schedule.DayPlan{}, schedule.ErrWeekAssignmentIncomplete
	}
	return r.GetByID(ctx, planID, companyID)
}

// GetWeekAssignment implements schedule.DayPlanRepository.
func (r *dayPlanRepository) GetWeekAssignment(ctx context.Context, employeeID string, date time.Time, companyID string) (schedule.WeekAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT wa.id, wa.employee_id,
			   wa.sunday_plan_id, wa.monday_plan_id, wa.tuesday_plan_id,
			   wa.wednesday_plan_id, wa.thursday_plan_id, wa.friday_plan_id,
			   wa.saturday_plan_id,
			   wa.valid_from, wa.valid_to, wa.created_at, wa.updated_at
		FROM week_assignments wa
		JOIN employees e ON e.id = wa.employee_id
		WHERE wa.employee_id = $1
		  AND e.company_id = $2
		  AND wa.valid_from <= $3
		  AND (wa.valid_to IS NULL OR wa.valid_to >= $3)
		ORDER BY wa.valid_from DESC
		LIMIT 1
	`

	var wa schedule.WeekAssignment
	err := q.QueryRow(ctx, query, employeeID, companyID, date).Scan(
		&wa.ID, &wa.EmployeeID,
		&wa.PlanIDs[0], &wa.PlanIDs[1], &wa.PlanIDs[2],
		&wa.PlanIDs[3], &wa.PlanIDs[4], &wa.PlanIDs[5],
		&wa.PlanIDs[6],
		&wa.ValidFrom, &wa.ValidTo, &wa.CreatedAt, &wa.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WeekAssignment{}, schedule.ErrNoWeekAssignment
		}
		return schedule.WeekAssignment{}, fmt.Errorf("failed to get week assignment: %w", err)
	}
	return wa, nil
}

// attachDetails loads the plan's break rules and alternate shift plan
// references.
func (r *dayPlanRepository) attachDetails(ctx context.Context, plan *schedule.DayPlan) error {
	q := GetQuerier(ctx, r.db)

	breakQuery := `
		SELECT kind, duration_minutes, after_minutes, only_deduct_overage
		FROM day_plan_break_rules
		WHERE day_plan_id = $1
		ORDER BY position
	`
	rows, err := q.Query(ctx, breakQuery, plan.ID)
	if err != nil {
		return fmt.Errorf("failed to list break rules: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var br schedule.BreakRule
		if err := rows.Scan(&br.Kind, &br.DurationMinutes, &br.AfterMinutes, &br.OnlyDeductOverage); err != nil {
			return fmt.Errorf("failed to scan break rule: %w", err)
		}
		plan.BreakRules = append(plan.BreakRules, br)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	altQuery := `
		SELECT alternate_plan_id
		FROM day_plan_alternates
		WHERE day_plan_id = $1
		ORDER BY priority
		LIMIT 6
	`
	altRows, err := q.Query(ctx, altQuery, plan.ID)
	if err != nil {
		return fmt.Errorf("failed to list alternate plans: %w", err)
	}
	defer altRows.Close()
	for altRows.Next() {
		var id string
		if err := altRows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan alternate plan: %w", err)
		}
		plan.AltPlanIDs = append(plan.AltPlanIDs, id)
	}
	return altRows.Err()
}
