package vacation

import (
	"time"

	"github.com/shopspring/decimal"
)

// VacationBalance is the running entitlement of one employee-year. Amounts
// are in days; fractions (half days, prorated remainders) are exact
// decimals.
type VacationBalance struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Year       int

	BaseEntitlement    decimal.Decimal
	SpecialEntitlement decimal.Decimal
	// ProrationFactor is monthsActive/12 for entry/exit years, 1 otherwise.
	ProrationFactor decimal.Decimal
	CarryoverIn     decimal.Decimal
	// CarryoverForfeited is the portion of CarryoverIn lost to capping.
	CarryoverForfeited decimal.Decimal
	Taken              decimal.Decimal
	Remaining          decimal.Decimal

	ComputedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EntitlementRule grants extra days when an employee crosses a threshold.
type EntitlementRule struct {
	ID        string
	CompanyID string
	Kind      RuleKind
	// Threshold is years of age or tenure; unused for disability rules.
	Threshold int
	ExtraDays decimal.Decimal
}

type RuleKind string

const (
	RuleAge        RuleKind = "age"
	RuleTenure     RuleKind = "tenure"
	RuleDisability RuleKind = "disability"
)

// CarryoverPolicy controls what happens to unused prior-year balance.
type CarryoverPolicy string

const (
	// CarryoverKeep transfers the full unused balance.
	CarryoverKeep CarryoverPolicy = "keep"
	// CarryoverForfeitAll drops the prior-year balance at year end.
	CarryoverForfeitAll CarryoverPolicy = "forfeit_all"
	// CarryoverCutoff forfeits whatever carryover is still unused at the
	// configured cutoff date of the new year.
	CarryoverCutoff CarryoverPolicy = "cutoff"
)

// RoundingPolicy for prorated entitlements.
type RoundingPolicy string

const (
	RoundNone    RoundingPolicy = "none"
	RoundHalfDay RoundingPolicy = "half_day"
	RoundFullDay RoundingPolicy = "full_day"
)

type RoundingDirection string

const (
	DirectionDown    RoundingDirection = "down"
	DirectionNearest RoundingDirection = "nearest"
	DirectionUp      RoundingDirection = "up"
)

// Config is the tenant-level vacation configuration.
type Config struct {
	BaseEntitlement      decimal.Decimal
	CarryoverPolicy      CarryoverPolicy
	CarryoverCap         *decimal.Decimal
	CutoffMonth          time.Month
	CutoffDay            int
	Rounding             RoundingPolicy
	RoundingDirection    RoundingDirection
	AllowNegativeBalance bool
}
