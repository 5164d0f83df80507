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

	"crm_legal_go/config"
	"crm_legal_go/db"
	"crm_legal_go/handlers"
	"crm_legal_go/logger"
	"crm_legal_go/middleware"
	"crm_legal_go/services"
	"crm_legal_go/services/jobs"

	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	// Initialize database
	database, err := db.Open(cfg.DBPath, cfg.Environment)
	if err != nil {
		appLog.Fatal("failed to open database", "path", cfg.DBPath, "error", err)
	}
	defer db.Close(database)

	if err := db.Migrate(database); err != nil {
		appLog.Fatal("failed to run migrations", "error", err)
	}

	store := services.NewStore(database, appLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Backups
	backupKey, err := cfg.BackupKeyBytes()
	if err != nil {
		appLog.Fatal("invalid backup key", "error", err)
	}
	backups := services.NewBackupService(store, services.NewStorage(ctx, cfg, appLog), backupKey)

	// Reminder jobs
	job := jobs.NewReminderJob(store, jobs.NewNotifier(cfg, appLog), appLog)
	scheduler, err := jobs.NewScheduler(cfg, job, appLog)
	if err != nil {
		appLog.Fatal("failed to configure scheduler", "error", err)
	}
	// Catch up on anything that came due while the app was closed before
	// the first scheduled tick
	if err := job.Run(ctx); err != nil {
		appLog.Error("startup reminder run failed", "error", err)
	}
	scheduler.Start()

	// Create Echo instance
	e := handlers.NewServer()
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestLogger(appLog))

	handlers.MountAPI(e, middleware.RequireLoopback(cfg.APIAddr), middleware.Inject(store, cfg, backups))

	go func() {
		appLog.Info("api listening", "addr", cfg.APIAddr)
		if err := e.Start(cfg.APIAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("api server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		appLog.Error("api shutdown failed", "error", err)
	}
	scheduler.Stop(shutdownCtx)
}
