package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/clockwise-hr/timecalc-backend-go/internal/config"
	"github.com/clockwise-hr/timecalc-backend-go/internal/handler/http/middleware"
	"github.com/clockwise-hr/timecalc-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	calculationHandler CalculationHandler,
	vacationHandler VacationHandler,
	correctionHandler CorrectionHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timecalc"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/calculation", func(r chi.Router) {
				r.Route("/days/{employeeID}/{date}", func(r chi.Router) {
					r.Get("/", calculationHandler.GetDay)
					r.Post("/", calculationHandler.CalculateDay)
				})

				r.Route("/months/{employeeID}/{month}", func(r chi.Router) {
					r.Get("/", calculationHandler.GetMonth)
					r.Post("/", calculationHandler.CalculateMonth)
					r.Post("/close", calculationHandler.CloseMonth)
					r.Post("/reopen", calculationHandler.ReopenMonth)
				})

				r.Post("/recalculate", calculationHandler.Recalculate)
			})

			r.Route("/vacation/{employeeID}/{year}", func(r chi.Router) {
				r.Get("/", vacationHandler.GetBalance)
				r.Post("/recompute", vacationHandler.RecomputeBalance)
			})

			r.Get("/corrections", correctionHandler.List)
		})
	})

	return r
}
