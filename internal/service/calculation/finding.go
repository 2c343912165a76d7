package calculation

import "github.com/clockwise-hr/timecalc-backend-go/internal/domain/timesheet"

// Finding is one data-quality observation made by a pipeline stage. Stages
// never abort on findings; they keep computing best-effort figures and the
// findings surface as correction items on the daily value.
type Finding struct {
	Code     string
	Severity timesheet.Severity
	Message  string
}

func newFinding(code string, message string) Finding {
	return Finding{
		Code:     code,
		Severity: timesheet.DefaultSeverity(code),
		Message:  message,
	}
}

// promote raises CORE_TIME_VIOLATION findings to errors when the company
// configuration demands it.
func promote(findings []Finding, coreTimeIsError bool) []Finding {
	if !coreTimeIsError {
		return findings
	}
	out := make([]Finding, len(findings))
	copy(out, findings)
	for i := range out {
		if out[i].Code == timesheet.CodeCoreTimeViolation {
			out[i].Severity = timesheet.SeverityError
		}
	}
	return out
}
