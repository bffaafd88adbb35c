package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/pointage-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/pointage-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/pointage-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/pointage-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/pointage-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/pointage-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/pointage-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/pointage-backend-go/internal/service/attendance"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	clockRecordRepo := postgresql.NewClockRecordRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	calendarRepo := postgresql.NewCalendarRepository(db)
	transactor := postgresql.NewTransactor(db)

	systemClock := clock.System()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	attendanceSvc := attendanceService.NewAttendanceService(
		transactor,
		clockRecordRepo,
		employeeRepo,
		workScheduleRepo,
		calendarRepo,
		systemClock,
		attendanceService.Options{
			Location:            loc,
			StrictRecoveryScope: cfg.Attendance.StrictRecoveryScope,
		},
	)

	scheduler := cron.NewScheduler(ctx)
	attendanceJobs := cron.NewAttendanceJobs(attendanceSvc, systemClock, loc, cfg.Attendance.AnomalyScanInterval)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, JWTService)
	router := appHTTP.NewRouter(JWTService, attendanceHandler, appHTTP.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Env:            cfg.App.Env,
		Version:        version,
		LogLevel:       level,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", loc.String())
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	slog.Info("Shutting down server")
	return server.Shutdown(shutdownCtx)
}
