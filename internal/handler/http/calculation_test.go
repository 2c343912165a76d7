package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAuthedRequest builds a request carrying verified claims and chi URL
// params, so handlers can be exercised without a router or a server.
func newAuthedRequest(t *testing.T, params map[string]string) *http.Request {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"sub":        "user-1",
		"company_id": "company-1",
		"type":       "access",
	})
	require.NoError(t, err)

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}

	ctx := jwtauth.NewContext(context.Background(), token, nil)
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(ctx)
}

func TestCalculationHandler_RejectsInvalidEmployeeID(t *testing.T) {
	// Invalid input is rejected before any dependency is touched, so the
	// handler can run with none wired.
	h := NewCalculationHandler(nil, nil, nil, nil)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		params  map[string]string
	}{
		{"calculate day", h.CalculateDay, map[string]string{"employeeID": "not-a-uuid", "date": "2025-03-10"}},
		{"get day", h.GetDay, map[string]string{"employeeID": "not-a-uuid", "date": "2025-03-10"}},
		{"calculate month", h.CalculateMonth, map[string]string{"employeeID": "not-a-uuid", "month": "2025-03"}},
		{"get month", h.GetMonth, map[string]string{"employeeID": "not-a-uuid", "month": "2025-03"}},
		{"close month", h.CloseMonth, map[string]string{"employeeID": "not-a-uuid", "month": "2025-03"}},
		{"reopen month", h.ReopenMonth, map[string]string{"employeeID": "not-a-uuid", "month": "2025-03"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler(rec, newAuthedRequest(t, tt.params))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "UUID")
		})
	}
}

func TestCalculationHandler_RejectsInvalidMonth(t *testing.T) {
	h := NewCalculationHandler(nil, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.GetMonth(rec, newAuthedRequest(t, map[string]string{
		"employeeID": "0b2f7f4e-3a57-4f0e-9c63-6a2e1f0d8b11",
		"month":      "03-2025",
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "YYYY-MM")
}
