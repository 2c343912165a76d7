package main

import (
	"fmt"
	"net/http"

	"github.com/clockwise-hr/timecalc-backend-go/internal/config"
	appHTTP "github.com/clockwise-hr/timecalc-backend-go/internal/handler/http"
	"github.com/clockwise-hr/timecalc-backend-go/internal/pkg/cron"
	"github.com/clockwise-hr/timecalc-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/timecalc-backend-go/internal/pkg/jwt"
	"github.com/clockwise-hr/timecalc-backend-go/internal/repository/postgresql"
	"github.com/clockwise-hr/timecalc-backend-go/internal/service/batch"
	calculationService "github.com/clockwise-hr/timecalc-backend-go/internal/service/calculation"
	vacationService "github.com/clockwise-hr/timecalc-backend-go/internal/service/vacation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, database.PoolSettings{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	punchRepo := postgresql.NewPunchRepository(db)
	dayPlanRepo := postgresql.NewDayPlanRepository(db)
	dailyValueRepo := postgresql.NewDailyValueRepository(db)
	monthlyValueRepo := postgresql.NewMonthlyValueRepository(db)
	flextimeRulesRepo := postgresql.NewFlextimeRulesRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	absenceRepo := postgresql.NewAbsenceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	vacationRepo := postgresql.NewVacationRepository(db)
	correctionRepo := postgresql.NewCorrectionRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	calcService := calculationService.NewCalculationService(
		db,
		punchRepo,
		dayPlanRepo,
		dailyValueRepo,
		monthlyValueRepo,
		flextimeRulesRepo,
		employeeRepo,
		absenceRepo,
		holidayRepo,
		vacationRepo,
		calculationService.Settings{
			CoreTimeViolationIsError: cfg.Calculation.CoreTimeViolationIsError,
		},
		calculationService.Hooks{},
	)
	vacationSvc := vacationService.NewVacationService(vacationRepo, employeeRepo, absenceRepo)
	runner := batch.NewRunner(calcService, employeeRepo, cfg.Calculation.Workers)

	calculationHandler := appHTTP.NewCalculationHandler(calcService, dailyValueRepo, monthlyValueRepo, runner)
	vacationHandler := appHTTP.NewVacationHandler(vacationSvc, vacationRepo)
	correctionHandler := appHTTP.NewCorrectionHandler(correctionRepo)

	scheduler := cron.NewScheduler()
	cron.NewRecalculationJobs(runner, cfg.Calculation.NightlyCompanies).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		calculationHandler,
		vacationHandler,
		correctionHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
