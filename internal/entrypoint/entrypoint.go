package entrypoint

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/carrental/internal/auth"
	"github.com/mrlokans/carrental/internal/config"
	"github.com/mrlokans/carrental/internal/database"
	"github.com/mrlokans/carrental/internal/database/settings"
	"github.com/mrlokans/carrental/internal/exporters"
	http_controllers "github.com/mrlokans/carrental/internal/http"
	"github.com/mrlokans/carrental/internal/scheduler"
	"github.com/mrlokans/carrental/internal/services"
	"github.com/mrlokans/carrental/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs srv until ctx is canceled, then shuts it down within timeout.
// onShutdown runs first so background workers drain before the listener closes.
func Serve(ctx context.Context, srv *http.Server, timeout time.Duration, logger *zap.Logger, onShutdown ShutdownFunc) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", zap.Duration("timeout", timeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if onShutdown != nil {
			onShutdown(shutdownCtx)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.Info("server exiting")
		return nil
	})

	return g.Wait()
}

// Run wires the desk, the optional auth layer, the export pipeline and the
// HTTP router, and serves until ctx is canceled.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger, version string) error {
	logger.Info("starting car rental desk", zap.String("version", version))

	db, err := database.NewDatabase(cfg.Database.Path, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("error closing database", zap.Error(err))
		}
	}()

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get SQL DB: %w", err)
	}

	desk := services.NewRentalDeskFromDB(db.DB)
	settingsRepo := settings.NewRepository(db.DB)
	exporter := exporters.NewListingExporter(sqlDB, cfg.Export.Dir)

	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	// Listing exports run through the task queue when it is enabled and
	// inline otherwise.
	var taskClient *tasks.Client
	exportJob := func(jobCtx context.Context) error {
		_, err := tasks.RunExport(jobCtx, exporter, settingsRepo, logger.Named("export"))
		return err
	}
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.ConfigFrom(cfg.Tasks), logger)
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				logger.Warn("error closing task client", zap.Error(err))
			}
		}()

		taskClient.Register(tasks.NewExportListingQueue(exporter, settingsRepo, logger.Named("export")))
		go taskClient.Start(workerCtx)

		exportJob = func(jobCtx context.Context) error {
			_, err := taskClient.EnqueueExport(jobCtx)
			return err
		}
	}

	if cfg.Export.ScheduleEnabled {
		exportScheduler := scheduler.NewExportScheduler(cfg.Export.Schedule, exportJob, logger)
		if err := exportScheduler.Start(workerCtx); err != nil {
			return err
		}
		defer exportScheduler.Stop()
	}

	routerCfg := http_controllers.RouterConfig{
		Desk:          desk,
		Database:      db,
		Logger:        logger,
		TemplatesPath: cfg.UI.TemplatesPath,
		Currency:      cfg.UI.Currency,
		Version:       version,
		AuthConfig:    cfg.Auth,
		SecureCookies: cfg.Auth.SecureCookies,
		ExportStatus:  settingsRepo,
	}
	if taskClient != nil {
		routerCfg.ExportQueue = taskClient
	}

	if cfg.Auth.Mode == config.AuthModeLocal {
		if err := setupAuth(&routerCfg, db, cfg.Auth, logger); err != nil {
			return err
		}
	} else {
		logger.Info("authentication mode: none (no authentication required)")
	}

	router, err := http_controllers.NewRouter(routerCfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	return Serve(ctx, srv, timeout, logger, func(shutdownCtx context.Context) {
		if taskClient != nil {
			taskClient.Stop(shutdownCtx)
		}
		cancelWorkers()
	})
}

func setupAuth(routerCfg *http_controllers.RouterConfig, db *database.Database, cfg config.Auth, logger *zap.Logger) error {
	logger.Info("authentication mode: local")

	authService := auth.NewService(db.DB, cfg)

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get SQL DB for sessions: %w", err)
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize session manager: %w", err)
	}

	csrfSecret, err := csrfSecretFrom(cfg.SessionSecret)
	if err != nil {
		return err
	}
	if cfg.SessionSecret == "" {
		logger.Info("generated session secret (set AUTH_SESSION_SECRET to persist)")
	}

	if hasUsers, _ := authService.HasUsers(); !hasUsers {
		logger.Info("no operator account yet, visit /setup to create one")
	}

	routerCfg.AuthService = authService
	routerCfg.SessionManager = sessionManager
	routerCfg.AuthMiddleware = auth.NewMiddleware(authService, sessionManager, cfg)
	routerCfg.CSRFSecret = csrfSecret
	return nil
}

// csrfSecretFrom decodes a hex secret, falls back to the raw bytes, and
// generates a fresh one when none is configured.
func csrfSecretFrom(configured string) ([]byte, error) {
	if configured != "" {
		if secret, err := hex.DecodeString(configured); err == nil {
			return secret, nil
		}
		return []byte(configured), nil
	}

	secret, err := auth.GenerateSessionSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSRF secret: %w", err)
	}
	return hex.DecodeString(secret)
}
