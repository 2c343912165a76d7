package vacation

import "context"

// VacationRepository persists balances and reads entitlement master data.
type VacationRepository interface {
	// Replace upserts the balance for its employee-year.
	Replace(ctx context.Context, balance VacationBalance) (VacationBalance, error)

	GetByEmployeeYear(ctx context.Context, employeeID string, year int, companyID string) (VacationBalance, error)

	ListRules(ctx context.Context, companyID string) ([]EntitlementRule, error)

	GetConfig(ctx context.Context, companyID string) (Config, error)
}

// VacationService recomputes the running balance for an employee-year.
type VacationService interface {
	RecomputeBalance(ctx context.Context, employeeID string, year int, companyID string) (VacationBalance, error)
}
