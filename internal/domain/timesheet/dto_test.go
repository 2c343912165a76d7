package timesheet

import (
	"testing"
	"time"

	"github.com/clockwise-hr/timecalc-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculateRequest_Validate(t *testing.T) {
	req := RecalculateRequest{From: "2025-03-01", To: "2025-03-31"}
	require.NoError(t, req.Validate())
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), req.FromDate)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), req.ToDate)
}

func TestRecalculateRequest_Validate_Errors(t *testing.T) {
	cases := []struct {
		name  string
		req   RecalculateRequest
		field string
	}{
		{"missing from", RecalculateRequest{To: "2025-03-31"}, "from"},
		{"bad from", RecalculateRequest{From: "03/01/2025", To: "2025-03-31"}, "from"},
		{"missing to", RecalculateRequest{From: "2025-03-01"}, "to"},
		{"reversed range", RecalculateRequest{From: "2025-03-31", To: "2025-03-01"}, "to"},
		{"bad employee id", RecalculateRequest{From: "2025-03-01", To: "2025-03-31", EmployeeIDs: []string{"nope"}}, "employee_ids"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.req.Validate()
			require.Error(t, err)
			verrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok)
			assert.Contains(t, verrs.ToMap(), c.field)
		})
	}
}

func TestToDailyValueResponse(t *testing.T) {
	v := DailyValue{
		ID:         "dv-1",
		EmployeeID: "emp-1",
		Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		NetMinutes: 480,
	}

	resp := ToDailyValueResponse(v)

	assert.Equal(t, "2025-03-10", resp.Date)
	// A clean day still serializes an empty code list, never null.
	assert.NotNil(t, resp.ErrorCodes)
	assert.Empty(t, resp.ErrorCodes)
}
