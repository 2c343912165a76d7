package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// ListActive returns all active employees of the company, used by the
	// batch driver to fan out recalculation.
	ListActive(ctx context.Context, companyID string) ([]Employee, error)
}
