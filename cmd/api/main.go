package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/hrcore/attendance-backend-go/internal/config"
	appHTTP "github.com/hrcore/attendance-backend-go/internal/handler/http"
	"github.com/hrcore/attendance-backend-go/internal/pkg/clock"
	"github.com/hrcore/attendance-backend-go/internal/pkg/cron"
	"github.com/hrcore/attendance-backend-go/internal/pkg/database"
	"github.com/hrcore/attendance-backend-go/internal/pkg/email"
	"github.com/hrcore/attendance-backend-go/internal/pkg/jwt"
	"github.com/hrcore/attendance-backend-go/internal/pkg/logger"
	"github.com/hrcore/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hrcore/attendance-backend-go/internal/service/attendance"
	leaveService "github.com/hrcore/attendance-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	appLogger := logger.New(cfg.App.LogLevel)

	db, err := database.NewPostgreSQLDB(cfg.DSN())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	profileRepo := postgresql.NewProfileRepository(db)
	monthlyAttendanceRepo := postgresql.NewMonthlyAttendanceRepository(db)
	balanceRepo := postgresql.NewBalanceRepository(db)
	correctionRequestRepo := postgresql.NewCorrectionRequestRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	systemClock := clock.System()

	// Directory lookups live outside this service; until that integration
	// lands, decision emails are skipped per user.
	notifier, err := email.NewNotifier(cfg.SMTP, func(string) (string, bool) { return "", false })
	if err != nil {
		log.Fatal("Failed to initialize email notifier:", err)
	}

	attendanceSvc := attendanceService.NewAttendanceService(monthlyAttendanceRepo, profileRepo, balanceRepo)
	ledgerSvc := leaveService.NewLedgerService(balanceRepo, monthlyAttendanceRepo, systemClock, appLogger)
	requestSvc := leaveService.NewRequestService(
		correctionRequestRepo,
		monthlyAttendanceRepo,
		profileRepo,
		balanceRepo,
		ledgerSvc,
		notifier,
		systemClock,
		appLogger,
	)
	bulkSvc := leaveService.NewBulkService(requestSvc, appLogger)

	scheduler := cron.NewScheduler()
	accrualJobs := cron.NewAccrualJobs(monthlyAttendanceRepo, ledgerSvc, systemClock)
	accrualJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(ledgerSvc, requestSvc, bulkSvc)

	router := appHTTP.NewRouter(cfg, jwtService, attendanceHandler, leaveHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
