package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/giygas/kits-report-api/config"
	"github.com/giygas/kits-report-api/dashboard"
	"github.com/giygas/kits-report-api/data"
	"github.com/giygas/kits-report-api/handlers"
	"github.com/giygas/kits-report-api/health"
	"github.com/giygas/kits-report-api/kitsparser"
	"github.com/giygas/kits-report-api/logging"
	"github.com/giygas/kits-report-api/scheduler"
	"github.com/giygas/kits-report-api/server"
	"github.com/giygas/kits-report-api/validation"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

// application holds the wired components of the service
type application struct {
	dataContainer *data.DataContainer
	controller    *dashboard.Controller
	scheduler     *scheduler.Scheduler
	server        *server.Server
}

func newApplication(cfg *config.Config) *application {
	dataContainer := data.NewDataContainer()
	validator := validation.NewDataValidator()
	parser := kitsparser.NewKitsParser(cfg.SheetCSVURL, cfg.FetchTimeout)

	controller := dashboard.NewController(dataContainer, parser, validator)
	healthChecker := health.NewHealthChecker(dataContainer, cfg.RefreshInterval)
	httpHandler := handlers.NewHTTPHandler(dataContainer, validator, controller, healthChecker, cfg.DetailRowLimit)

	return &application{
		dataContainer: dataContainer,
		controller:    controller,
		scheduler:     scheduler.NewScheduler(dataContainer, controller, cfg.RefreshInterval),
		server:        server.NewServer(cfg, dataContainer, httpHandler),
	}
}

// loadEnv reads .env from the working directory, then from the executable directory
func loadEnv() {
	if err := godotenv.Load(); err == nil {
		return
	}

	ex, err := os.Executable()
	if err != nil {
		slog.Warn("Failed to get executable path", "error", err)
		return
	}
	if err := godotenv.Load(filepath.Join(filepath.Dir(ex), ".env")); err != nil {
		slog.Info("No .env file found, using the process environment")
	}
}

func main() {
	loadEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	logging.InitLoggerWithOptions(logging.Options{
		Dir:            "logs",
		Env:            cfg.Env,
		Level:          cfg.LogLevel,
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
	})
	defer logging.Close()

	app := newApplication(cfg)

	// The first load can be slow; serve health and metrics meanwhile
	go func() {
		if err := app.scheduler.Start(); err != nil {
			logging.Error("Initial sheet load failed, will retry on schedule", "error", err)
		}
	}()

	go func() {
		if err := app.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		logging.Error("Server shutdown failed", "error", err)
	}
}
