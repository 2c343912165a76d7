package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/timesheet"
	"github.com/clockwise-hr/timecalc-backend-go/internal/handler/http/response"
	"github.com/clockwise-hr/timecalc-backend-go/internal/pkg/validator"
	"github.com/clockwise-hr/timecalc-backend-go/internal/service/batch"
	"github.com/go-chi/chi/v5"
)

type CalculationHandler interface {
	CalculateDay(w http.ResponseWriter, r *http.Request)
	GetDay(w http.ResponseWriter, r *http.Request)
	CalculateMonth(w http.ResponseWriter, r *http.Request)
	GetMonth(w http.ResponseWriter, r *http.Request)
	CloseMonth(w http.ResponseWriter, r *http.Request)
	ReopenMonth(w http.ResponseWriter, r *http.Request)
	Recalculate(w http.ResponseWriter, r *http.Request)
}

type calculationHandlerImpl struct {
	calcService timesheet.CalculationService
	dailyRepo   timesheet.DailyValueRepository
	monthlyRepo timesheet.MonthlyValueRepository
	runner      *batch.Runner
}

func NewCalculationHandler(
	calcService timesheet.CalculationService,
	dailyRepo timesheet.DailyValueRepository,
	monthlyRepo timesheet.MonthlyValueRepository,
	runner *batch.Runner,
) CalculationHandler {
	return &calculationHandlerImpl{
		calcService: calcService,
		dailyRepo:   dailyRepo,
		monthlyRepo: monthlyRepo,
		runner:      runner,
	}
}

// CalculateDay implements CalculationHandler.
func (h *calculationHandlerImpl) CalculateDay(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFromClaims(w, r)
	if !ok {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "employeeID must be a valid UUID", nil)
		return
	}

	date, ok := validator.IsValidDate(chi.URLParam(r, "date"))
	if !ok {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	value, err := h.calcService.CalculateDay(r.Context(), employeeID, date, companyID)
	if err != nil {
		slog.Error("Day calculation failed", "employee_id", employeeID, "date", date, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, timesheet.ToDailyValueResponse(value))
}

// GetDay implements CalculationHandler.
func (h *calculationHandlerImpl) GetDay(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFromClaims(w, r)
	if !ok {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "employeeID must be a valid UUID", nil)
		return
	}

	date, ok := validator.IsValidDate(chi.URLParam(r, "date"))
	if !ok {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	value, err := h.dailyRepo.GetByEmployeeDate(r.Context(), employeeID, date, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timesheet.ToDailyValueResponse(value))
}

// CalculateMonth implements CalculationHandler.
func (h *calculationHandlerImpl) CalculateMonth(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFromClaims(w, r)
	if !ok {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "employeeID must be a valid UUID", nil)
		return
	}

	year, month, ok := validator.IsValidMonth(chi.URLParam(r, "month"))
	if !ok {
		response.BadRequest(w, "month must be in YYYY-MM format", nil)
		return
	}

	value, err := h.calcService.CalculateMonth(r.Context(), employeeID, year, month, companyID)
	if err != nil {
		slog.Error("Month calculation failed",
			"employee_id", employeeID, "year", year, "month", int(month), "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, timesheet.ToMonthlyValueResponse(value))
}

// GetMonth implements CalculationHandler.
func (h *calculationHandlerImpl) GetMonth(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFromClaims(w, r)
	if !ok {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "employeeID must be a valid UUID", nil)
		return
	}

	year, month, ok := validator.IsValidMonth(chi.URLParam(r, "month"))
	if !ok {
		response.BadRequest(w, "month must be in YYYY-MM format", nil)
		return
	}

	value, err := h.monthlyRepo.GetByEmployeeMonth(r.Context(), employeeID, year, month, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timesheet.ToMonthlyValueResponse(value))
}

// CloseMonth implements CalculationHandler.
func (h *calculationHandlerImpl) CloseMonth(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFromClaims(w, r)
	if !ok {
		return
	}
	actor, ok := subjectFromClaims(w, r)
	if !ok {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "employeeID must be a valid UUID", nil)
		return
	}

	year, month, ok := validator.IsValidMonth(chi.URLParam(r, "month"))
	if !ok {
		response.BadRequest(w, "month must be in YYYY-MM format", nil)
		return
	}

	value, err := h.calcService.CloseMonth(r.Context(), employeeID, year, month, companyID, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Month closed", timesheet.ToMonthlyValueResponse(value))
}

// ReopenMonth implements CalculationHandler.
func (h *calculationHandlerImpl) ReopenMonth(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFromClaims(w, r)
	if !ok {
		return
	}
	actor, ok := subjectFromClaims(w, r)
	if !ok {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "employeeID must be a valid UUID", nil)
		return
	}

	year, month, ok := validator.IsValidMonth(chi.URLParam(r, "month"))
	if !ok {
		response.BadRequest(w, "month must be in YYYY-MM format", nil)
		return
	}

	value, err := h.calcService.ReopenMonth(r.Context(), employeeID, year, month, companyID, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Month reopened", timesheet.ToMonthlyValueResponse(value))
}

// Recalculate implements CalculationHandler. It runs the batch synchronously
// and reports per-employee failures in the payload; a failed employee never
// fails the request.
func (h *calculationHandlerImpl) Recalculate(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFromClaims(w, r)
	if !ok {
		return
	}

	var req timesheet.RecalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode recalculate request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			response.BadRequest(w, "Validation failed", verrs.ToMap())
			return
		}
		response.BadRequest(w, err.Error(), nil)
		return
	}

	var (
		result batch.Result
		err    error
	)
	if len(req.EmployeeIDs) > 0 {
		result, err = h.runner.RecalculateDaysFor(r.Context(), companyID, req.EmployeeIDs, req.FromDate, req.ToDate)
	} else {
		result, err = h.runner.RecalculateDays(r.Context(), companyID, req.FromDate, req.ToDate)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	failures := make([]map[string]string, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, map[string]string{
			"employee_id": f.EmployeeID,
			"error":       f.Err.Error(),
		})
	}

	response.SuccessWithMessage(w, "Recalculation finished", map[string]interface{}{
		"employees": result.Employees,
		"failures":  failures,
	})
}
