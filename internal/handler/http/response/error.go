package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/absence"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/schedule"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/timesheet"
	"github.com/clockwise-hr/timecalc-backend-go/internal/domain/vacation"
)

// HandleError maps domain errors to HTTP responses. Unknown errors are logged
// and answered with a generic 500 so internals never leak to clients.
func HandleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, schedule.ErrDayPlanNotFound),
		errors.Is(err, schedule.ErrNoWeekAssignment),
		errors.Is(err, absence.ErrAbsenceNotFound),
		errors.Is(err, absence.ErrAbsenceTypeNotFound),
		errors.Is(err, timesheet.ErrDailyValueNotFound),
		errors.Is(err, timesheet.ErrMonthlyValueNotFound),
		errors.Is(err, vacation.ErrBalanceNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, timesheet.ErrPriorMonthNotCalculated):
		PreconditionFailed(w, err.Error())
	case errors.Is(err, timesheet.ErrMonthClosed),
		errors.Is(err, timesheet.ErrMonthNotClosed):
		Conflict(w, err.Error())
	case errors.Is(err, vacation.ErrNoConfig),
		errors.Is(err, schedule.ErrWeekAssignmentIncomplete):
		BadRequest(w, err.Error(), nil)
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
