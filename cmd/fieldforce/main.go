package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amanops/fieldforce/internal/access"
	api "github.com/amanops/fieldforce/internal/api/http"
	"github.com/amanops/fieldforce/internal/config"
	"github.com/amanops/fieldforce/internal/repo/postgres"
	"github.com/amanops/fieldforce/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("Fieldforce service started")

	cfg, err := config.ParseConfig()
	if err != nil {
		logger.Error("Failed to load config", "error", err.Error())
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := postgres.NewDB(ctx, cfg.DB.ConnString(), logger)
	if err != nil {
		logger.Error("failed to connect to db", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close db", "error", err.Error())
		}
	}()
	if err := postgres.InitTables(ctx, db, logger); err != nil {
		logger.Error("failed to init db schema", "error", err.Error())
		os.Exit(1)
	}

	policy := access.Policy{FieldRepsAllTerritories: cfg.FieldRepsAllTerritories()}

	userRepo := postgres.NewUserRepo(db)
	merchantRepo := postgres.NewMerchantRepo(db)
	taskRepo := postgres.NewTaskRepo(db)
	editRequestRepo := postgres.NewEditRequestRepo(db)

	app := service.NewApp(
		service.NewUserService(userRepo, policy, nil),
		service.NewMerchantService(merchantRepo, policy, nil, nil),
		service.NewTaskService(taskRepo),
		service.NewEditRequestService(editRequestRepo, merchantRepo, policy, cfg.EscalationSLA(), nil, nil),
		service.NewWorkloadService(userRepo, taskRepo),
	)

	server := api.NewServer(app, logger)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           api.NewRouter(server, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go runEscalationSweeper(rootCtx, app.EditRequest, cfg.EscalationInterval(), logger)

	go func() {
		logger.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", "error", err.Error())
			stop()
		}
	}()

	<-rootCtx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down http server", "error", err.Error())
	}
}

// runEscalationSweeper periodically promotes overdue PENDING edit requests
// to ESCALATED so managers see them surfaced in the escalated tab.
func runEscalationSweeper(ctx context.Context, requests *service.EditRequestService, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			escalated, err := requests.EscalateOverdue(ctx)
			if err != nil {
				logger.Error("escalation sweep failed", "error", err.Error())
				continue
			}
			if escalated > 0 {
				logger.Info("escalated overdue edit requests", "count", escalated)
			}
		}
	}
}
