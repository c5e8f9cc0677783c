package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/config"
	appHTTP "github.com/attendance-marker/attendance-backend-go/internal/handler/http"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/cron"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/database"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/email"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/otp"
	"github.com/attendance-marker/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendance-marker/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/attendance-marker/attendance-backend-go/internal/service/auth"
	employeeService "github.com/attendance-marker/attendance-backend-go/internal/service/employee"
	leaveService "github.com/attendance-marker/attendance-backend-go/internal/service/leave"
	lopService "github.com/attendance-marker/attendance-backend-go/internal/service/lop"
	notificationService "github.com/attendance-marker/attendance-backend-go/internal/service/notification"
	reportService "github.com/attendance-marker/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		slog.Error("Error applying schema", "error", err)
		os.Exit(1)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRepo := postgresql.NewLeaveApplicationRepository(db)
	lopRepo := postgresql.NewLOPRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		slog.Error("Error creating JWT service", "error", err)
		os.Exit(1)
	}

	templates, err := email.NewTemplates()
	if err != nil {
		slog.Error("Error parsing email templates", "error", err)
		os.Exit(1)
	}
	notifications := notificationService.NewNotificationService(email.NewMailer(cfg.SMTP), templates)
	otpStore := otp.NewStore(cfg.Attendance.OTPTTL)

	authSvc := serviceAuth.NewAuthService(employeeRepo, JWTService, cfg.Credentials)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, otpStore, notifications, cfg.Attendance)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo, lopRepo, transactor, notifications)
	lopSvc := lopService.NewLOPService(lopRepo, employeeRepo)
	reportSvc := reportService.NewReportService(employeeRepo, attendanceRepo, lopRepo, cfg.Attendance)

	scheduler := cron.NewScheduler()
	cron.NewOTPJobs(otpStore).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		LOP:        appHTTP.NewLOPHandler(lopSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
	}, appHTTP.RouterOptions{
		AllowedOrigins: strings.Split(cfg.App.FrontendURL, ","),
		Env:            cfg.App.Env,
		RequestTimeout: cfg.App.RequestTimeout,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
