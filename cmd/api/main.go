package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forher-hr/hr-backend-go/internal/config"
	appHTTP "github.com/forher-hr/hr-backend-go/internal/handler/http"
	"github.com/forher-hr/hr-backend-go/internal/pkg/cron"
	"github.com/forher-hr/hr-backend-go/internal/pkg/database"
	"github.com/forher-hr/hr-backend-go/internal/pkg/jwt"
	"github.com/forher-hr/hr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/forher-hr/hr-backend-go/internal/service/attendance"
	authService "github.com/forher-hr/hr-backend-go/internal/service/auth"
	holidayService "github.com/forher-hr/hr-backend-go/internal/service/holiday"
	leaveService "github.com/forher-hr/hr-backend-go/internal/service/leave"
	payrollService "github.com/forher-hr/hr-backend-go/internal/service/payroll"
	shiftService "github.com/forher-hr/hr-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), int32(cfg.Database.MaxConns), int32(cfg.Database.MinConns))
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	contractRepo := postgresql.NewContractRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	templateRepo := postgresql.NewShiftTemplateRepository(db)
	assignmentRepo := postgresql.NewShiftAssignmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	structureRepo := postgresql.NewStructureRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	runRepo := postgresql.NewRunRepository(db)
	salesRepo := postgresql.NewSalesDataRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	shiftSvc := shiftService.NewShiftService(templateRepo, assignmentRepo, employeeRepo)
	holidaySvc := holidayService.NewHolidayService(db, holidayRepo, leaveRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		assignmentRepo,
		employeeRepo,
		contractRepo,
		leaveRepo,
		holidayRepo,
		attendanceService.Policy{
			GraceMinutes:     cfg.Attendance.GraceMinutes,
			ClampToShift:     cfg.Attendance.ClampToShift,
			OvertimeScope:    cfg.Attendance.OvertimeScope,
			MaxPunchesPerDay: cfg.Attendance.MaxPunchesPerDay,
		},
	)
	aggregator := payrollService.NewAggregator(attendanceRepo, leaveRepo, salesRepo)
	payrollSvc := payrollService.NewPayrollService(
		db,
		structureRepo,
		payslipRepo,
		runRepo,
		salesRepo,
		contractRepo,
		employeeRepo,
		aggregator,
	)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		shiftHandler,
		attendanceHandler,
		holidayHandler,
		leaveHandler,
		payrollHandler,
	)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceSvc, db, cfg.Cron.RunDay, cfg.Cron.RunHour)
	attendanceJobs.RegisterJobs(scheduler)
	payrollJobs := cron.NewPayrollJobs(payrollSvc, db, cfg.Cron.RunDay, cfg.Cron.RunHour)
	payrollJobs.RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down...")
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Server stopped")
}
