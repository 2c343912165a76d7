package vacation

type BalanceResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`

	BaseEntitlement    string `json:"base_entitlement"`
	SpecialEntitlement string `json:"special_entitlement"`
	ProrationFactor    string `json:"proration_factor"`
	CarryoverIn        string `json:"carryover_in"`
	CarryoverForfeited string `json:"carryover_forfeited"`
	Taken              string `json:"taken"`
	Remaining          string `json:"remaining"`

	ComputedAt string `json:"computed_at"`
}

// ToBalanceResponse renders decimal amounts as strings so clients never see
// binary float artifacts in day fractions.
func ToBalanceResponse(b VacationBalance) BalanceResponse {
	return BalanceResponse{
		ID:                 b.ID,
		EmployeeID:         b.EmployeeID,
		Year:               b.Year,
		BaseEntitlement:    b.BaseEntitlement.String(),
		SpecialEntitlement: b.SpecialEntitlement.String(),
		ProrationFactor:    b.ProrationFactor.StringFixed(4),
		CarryoverIn:        b.CarryoverIn.String(),
		CarryoverForfeited: b.CarryoverForfeited.String(),
		Taken:              b.Taken.String(),
		Remaining:          b.Remaining.String(),
		ComputedAt:         b.ComputedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
