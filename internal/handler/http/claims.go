package http

import (
	"log/slog"
	"net/http"

	"github.com/clockwise-hr/timecalc-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// companyFromClaims reads company_id from the verified JWT. Every tenant-
// scoped handler goes through here so a request can never cross companies.
func companyFromClaims(w http.ResponseWriter, r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		slog.Error("Failed to get JWT claims", "error", err)
		response.Unauthorized(w, "invalid token")
		return "", false
	}
	companyID, exist := claims["company_id"].(string)
	if companyID == "" || !exist {
		slog.Error("company_id not found in JWT claims", "claims", claims)
		response.Unauthorized(w, "invalid token")
		return "", false
	}
	return companyID, true
}

// subjectFromClaims reads the acting user for audit fields.
func subjectFromClaims(w http.ResponseWriter, r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "invalid token")
		return "", false
	}
	sub, exist := claims["sub"].(string)
	if sub == "" || !exist {
		response.Unauthorized(w, "invalid token")
		return "", false
	}
	return sub, true
}
