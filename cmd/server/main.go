package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mkhasanoff/academy-backend/internal/app"
	"github.com/mkhasanoff/academy-backend/internal/config"
	controller "github.com/mkhasanoff/academy-backend/internal/controller/http"
	"github.com/mkhasanoff/academy-backend/internal/repository"
	"github.com/mkhasanoff/academy-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	subscriptionRepo := repository.NewSubscriptionRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	availabilityRepo := repository.NewAvailabilityRepository(pool)

	subscriptionService := service.NewSubscriptionService(subscriptionRepo, logger)
	billingService := service.NewBillingService(subscriptionService, sessionRepo, logger)
	attendanceService := service.NewAttendanceService(sessionRepo, logger)
	scheduleService := service.NewScheduleService(availabilityRepo, sessionRepo, logger)

	router := controller.NewRouter(
		cfg.Environment,
		cfg.RequestTimeout,
		logger,
		controller.NewScheduleHandler(scheduleService),
		controller.NewSubscriptionHandler(subscriptionService),
		controller.NewBillingHandler(billingService, attendanceService),
	)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
		os.Exit(1)
	}
}
