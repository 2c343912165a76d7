package http

import (
	"net/http"
	"strconv"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/timesheet"
	"github.com/clockwise-hr/timecalc-backend-go/internal/handler/http/response"
	"github.com/clockwise-hr/timecalc-backend-go/internal/pkg/validator"
)

type CorrectionHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type correctionHandlerImpl struct {
	correctionRepo timesheet.CorrectionRepository
}

func NewCorrectionHandler(correctionRepo timesheet.CorrectionRepository) CorrectionHandler {
	return &correctionHandlerImpl{correctionRepo: correctionRepo}
}

// List implements CorrectionHandler. Query params: employee_id, from, to,
// severity, limit.
func (h *correctionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFromClaims(w, r)
	if !ok {
		return
	}

	var filter timesheet.CorrectionFilter
	q := r.URL.Query()

	if v := q.Get("employee_id"); v != "" {
		if !validator.IsValidUUID(v) {
			response.BadRequest(w, "employee_id must be a valid UUID", nil)
			return
		}
		filter.EmployeeID = &v
	}
	if v := q.Get("from"); v != "" {
		d, ok := validator.IsValidDate(v)
		if !ok {
			response.BadRequest(w, "from must be in YYYY-MM-DD format", nil)
			return
		}
		filter.From = &d
	}
	if v := q.Get("to"); v != "" {
		d, ok := validator.IsValidDate(v)
		if !ok {
			response.BadRequest(w, "to must be in YYYY-MM-DD format", nil)
			return
		}
		filter.To = &d
	}
	if v := q.Get("severity"); v != "" {
		if !validator.IsInSlice(v, []string{string(timesheet.SeverityWarning), string(timesheet.SeverityError)}) {
			response.BadRequest(w, "severity must be warning or error", nil)
			return
		}
		s := timesheet.Severity(v)
		filter.Severity = &s
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			response.BadRequest(w, "limit must be a positive integer", nil)
			return
		}
		filter.Limit = limit
	}

	items, err := h.correctionRepo.List(r.Context(), filter, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timesheet.ToCorrectionItemResponses(items))
}
