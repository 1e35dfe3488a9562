package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Damaurora/DamaskVapers/internal/auth"
	"github.com/Damaurora/DamaskVapers/internal/config"
	"github.com/Damaurora/DamaskVapers/internal/repository/mongodb"
	"github.com/Damaurora/DamaskVapers/internal/repository/sheets"
	"github.com/Damaurora/DamaskVapers/internal/scheduler"
	"github.com/Damaurora/DamaskVapers/internal/server/handlers"
	"github.com/Damaurora/DamaskVapers/internal/server/router"
	catalogsvc "github.com/Damaurora/DamaskVapers/internal/service/catalog"
	inventorysvc "github.com/Damaurora/DamaskVapers/internal/service/inventory"
	settingssvc "github.com/Damaurora/DamaskVapers/internal/service/settings"
	"github.com/Damaurora/DamaskVapers/pkg/clients/webhook"
	"github.com/Damaurora/DamaskVapers/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 15*time.Second)
	mongoRepo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.mongodb"))
	cancelConnect()
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	setupCtx, cancelSetup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := mongoRepo.EnsureIndexes(setupCtx); err != nil {
		baseLogger.Fatal("failed to ensure indexes", zap.Error(err))
	}
	if cfg.Server.SeedDefaults {
		if err := mongoRepo.Seed(setupCtx); err != nil {
			baseLogger.Fatal("failed to seed defaults", zap.Error(err))
		}
	}
	cancelSetup()

	sheetsRepo := sheets.NewGoogleSheetRepository(cfg.Sheets, baseLogger.Named("repo.sheets"))

	var notifier inventorysvc.Notifier
	if cfg.Sync.WebhookURL != "" {
		notifier = webhook.NewClient(cfg.Sync.WebhookURL)
		baseLogger.Info("sync webhook enabled")
	}

	inventorySvc := inventorysvc.NewService(mongoRepo, sheetsRepo, cfg.Sync, notifier, baseLogger.Named("svc.inventory"))
	catalogSvc := catalogsvc.NewService(mongoRepo, baseLogger.Named("svc.catalog"))
	settingsSvc := settingssvc.NewService(mongoRepo, baseLogger.Named("svc.settings"))
	authenticator := auth.NewAuthenticator(cfg.Auth)

	engine, err := router.New(router.Handlers{
		Catalog:  handlers.NewCatalogHandler(catalogSvc, baseLogger.Named("handlers.catalog")),
		Settings: handlers.NewSettingsHandler(settingsSvc, inventorySvc, baseLogger.Named("handlers.settings")),
		Auth:     handlers.NewAuthHandler(authenticator, baseLogger.Named("handlers.auth")),
	}, authenticator, baseLogger.Named("router"))
	if err != nil {
		baseLogger.Fatal("failed to build router", zap.Error(err))
	}

	if cfg.Sync.SchedulerEnabled {
		sched, err := scheduler.NewScheduler(cfg.Sync, mongoRepo, inventorySvc, baseLogger.Named("scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
