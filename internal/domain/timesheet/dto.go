package timesheet

import (
	"time"

	"github.com/clockwise-hr/timecalc-backend-go/internal/pkg/validator"
)

// ========================================
// CALCULATION DTOs
// ========================================

type RecalculateRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	// EmployeeIDs limits the batch; empty means every active employee.
	EmployeeIDs []string `json:"employee_ids,omitempty"`

	FromDate time.Time `json:"-"`
	ToDate   time.Time `json:"-"`
}

func (r *RecalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.From) {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from is required",
		})
	} else if d, ok := validator.IsValidDate(r.From); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be a date in YYYY-MM-DD format",
		})
	} else {
		r.FromDate = d
	}

	if validator.IsEmpty(r.To) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to is required",
		})
	} else if d, ok := validator.IsValidDate(r.To); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be a date in YYYY-MM-DD format",
		})
	} else {
		r.ToDate = d
	}

	if !r.FromDate.IsZero() && !r.ToDate.IsZero() && r.ToDate.Before(r.FromDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must not be before from",
		})
	}

	for _, id := range r.EmployeeIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_ids",
				Message: "employee_ids must contain valid UUIDs",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DailyValueResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	DayPlanID  string `json:"day_plan_id"`

	GrossMinutes     int `json:"gross_minutes"`
	NetMinutes       int `json:"net_minutes"`
	TargetMinutes    int `json:"target_minutes"`
	OvertimeMinutes  int `json:"overtime_minutes"`
	UndertimeMinutes int `json:"undertime_minutes"`
	BreakMinutes     int `json:"break_minutes"`
	CappedMinutes    int `json:"capped_minutes"`

	AbsenceDayID *string `json:"absence_day_id,omitempty"`
	HolidayID    *string `json:"holiday_id,omitempty"`

	IsManuallyChanged bool     `json:"is_manually_changed"`
	HasError          bool     `json:"has_error"`
	ErrorCodes        []string `json:"error_codes"`
}

func ToDailyValueResponse(v DailyValue) DailyValueResponse {
	codes := v.ErrorCodes
	if codes == nil {
		codes = []string{}
	}
	return DailyValueResponse{
		ID:                v.ID,
		EmployeeID:        v.EmployeeID,
		Date:              v.Date.Format("2006-01-02"),
		DayPlanID:         v.DayPlanID,
		GrossMinutes:      v.GrossMinutes,
		NetMinutes:        v.NetMinutes,
		TargetMinutes:     v.TargetMinutes,
		OvertimeMinutes:   v.OvertimeMinutes,
		UndertimeMinutes:  v.UndertimeMinutes,
		BreakMinutes:      v.BreakMinutes,
		CappedMinutes:     v.CappedMinutes,
		AbsenceDayID:      v.AbsenceDayID,
		HolidayID:         v.HolidayID,
		IsManuallyChanged: v.IsManuallyChanged,
		HasError:          v.HasError,
		ErrorCodes:        codes,
	}
}

func ToDailyValueResponses(values []DailyValue) []DailyValueResponse {
	out := make([]DailyValueResponse, 0, len(values))
	for _, v := range values {
		out = append(out, ToDailyValueResponse(v))
	}
	return out
}

type MonthlyValueResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`

	GrossMinutes     int `json:"gross_minutes"`
	NetMinutes       int `json:"net_minutes"`
	TargetMinutes    int `json:"target_minutes"`
	OvertimeMinutes  int `json:"overtime_minutes"`
	UndertimeMinutes int `json:"undertime_minutes"`
	BreakMinutes     int `json:"break_minutes"`
	ErrorDays        int `json:"error_days"`

	FlextimeStart     int `json:"flextime_start"`
	FlextimeChange    int `json:"flextime_change"`
	FlextimeEnd       int `json:"flextime_end"`
	FlextimeCarryover int `json:"flextime_carryover"`

	VacationStart float64 `json:"vacation_start"`
	VacationTaken float64 `json:"vacation_taken"`
	VacationEnd   float64 `json:"vacation_end"`

	IsClosed   bool       `json:"is_closed"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
	ClosedBy   *string    `json:"closed_by,omitempty"`
	ReopenedAt *time.Time `json:"reopened_at,omitempty"`
	ReopenedBy *string    `json:"reopened_by,omitempty"`
}

func ToMonthlyValueResponse(v MonthlyValue) MonthlyValueResponse {
	return MonthlyValueResponse{
		ID:                v.ID,
		EmployeeID:        v.EmployeeID,
		Year:              v.Year,
		Month:             int(v.Month),
		GrossMinutes:      v.GrossMinutes,
		NetMinutes:        v.NetMinutes,
		TargetMinutes:     v.TargetMinutes,
		OvertimeMinutes:   v.OvertimeMinutes,
		UndertimeMinutes:  v.UndertimeMinutes,
		BreakMinutes:      v.BreakMinutes,
		ErrorDays:         v.ErrorDays,
		FlextimeStart:     v.FlextimeStart,
		FlextimeChange:    v.FlextimeChange,
		FlextimeEnd:       v.FlextimeEnd,
		FlextimeCarryover: v.FlextimeCarryover,
		VacationStart:     v.VacationStart,
		VacationTaken:     v.VacationTaken,
		VacationEnd:       v.VacationEnd,
		IsClosed:          v.IsClosed,
		ClosedAt:          v.ClosedAt,
		ClosedBy:          v.ClosedBy,
		ReopenedAt:        v.ReopenedAt,
		ReopenedBy:        v.ReopenedBy,
	}
}

type CorrectionItemResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Code       string `json:"code"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
}

func ToCorrectionItemResponses(items []CorrectionItem) []CorrectionItemResponse {
	out := make([]CorrectionItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, CorrectionItemResponse{
			ID:         item.ID,
			EmployeeID: item.EmployeeID,
			Date:       item.Date.Format("2006-01-02"),
			Code:       item.Code,
			Severity:   string(item.Severity),
			Message:    item.Message,
		})
	}
	return out
}
