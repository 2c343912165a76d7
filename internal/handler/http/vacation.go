package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/vacation"
	"github.com/clockwise-hr/timecalc-backend-go/internal/handler/http/response"
	"github.com/clockwise-hr/timecalc-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type VacationHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	RecomputeBalance(w http.ResponseWriter, r *http.Request)
}

type vacationHandlerImpl struct {
	vacationService vacation.VacationService
	vacationRepo    vacation.VacationRepository
}

func NewVacationHandler(vacationService vacation.VacationService, vacationRepo vacation.VacationRepository) VacationHandler {
	return &vacationHandlerImpl{
		vacationService: vacationService,
		vacationRepo:    vacationRepo,
	}
}

func parseYear(r *http.Request) (int, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1900 || year > 2200 {
		return 0, false
	}
	return year, true
}

// GetBalance implements VacationHandler.
func (h *vacationHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFromClaims(w, r)
	if !ok {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "employeeID must be a valid UUID", nil)
		return
	}
	year, ok := parseYear(r)
	if !ok {
		response.BadRequest(w, "year must be a four digit year", nil)
		return
	}

	balance, err := h.vacationRepo.GetByEmployeeYear(r.Context(), employeeID, year, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, vacation.ToBalanceResponse(balance))
}

// RecomputeBalance implements VacationHandler.
func (h *vacationHandlerImpl) RecomputeBalance(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFromClaims(w, r)
	if !ok {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "employeeID must be a valid UUID", nil)
		return
	}
	year, ok := parseYear(r)
	if !ok {
		response.BadRequest(w, "year must be a four digit year", nil)
		return
	}

	balance, err := h.vacationService.RecomputeBalance(r.Context(), employeeID, year, companyID)
	if err != nil {
		slog.Error("Vacation recompute failed", "employee_id", employeeID, "year", year, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Balance recomputed", vacation.ToBalanceResponse(balance))
}
