package employee

import "time"

// Employee carries the master-data fields the calculation needs. Personnel
// management itself lives outside this service.
type Employee struct {
	ID        string
	CompanyID string
	Name      string

	HireDate  time.Time
	ExitDate  *time.Time
	BirthDate *time.Time
	Disabled  bool

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
