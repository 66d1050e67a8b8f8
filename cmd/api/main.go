package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/license-service/internal/api/http"
	"github.com/spec-kit/license-service/internal/api/http/handlers"
	"github.com/spec-kit/license-service/internal/auth"
	"github.com/spec-kit/license-service/internal/config"
	"github.com/spec-kit/license-service/internal/events"
	"github.com/spec-kit/license-service/internal/license"
	"github.com/spec-kit/license-service/internal/observability"
	"github.com/spec-kit/license-service/internal/persistence"
	"github.com/spec-kit/license-service/internal/repository"
	"github.com/spec-kit/license-service/internal/service"
	"github.com/spec-kit/license-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	licenseRepo := repository.NewLicenseRepository(pool)
	releaseRepo := repository.NewReleaseRepository(pool)
	appConfigRepo := repository.NewAppConfigRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo: accountRepo,
		AdminRepo:   adminRepo,
	})
	licenseService := service.NewLicenseService(service.LicenseDependencies{
		AccountRepo: accountRepo,
		LicenseRepo: licenseRepo,
		Dispatcher:  dispatcher,
		Clock:       license.SystemClock,
		Offline:     license.NewOfflinePolicy(cfg.License.MaxOffline()),
	})
	directoryService := service.NewDirectoryService(*cfg, service.DirectoryDependencies{
		AccountRepo: accountRepo,
		AdminRepo:   adminRepo,
		LicenseRepo: licenseRepo,
		Dispatcher:  dispatcher,
	}, logger)
	releaseService := service.NewReleaseService(releaseRepo, appConfigRepo)
	statsService := service.NewStatsService(cfg.Stats, accountRepo, appConfigRepo, redis, logger)
	auditService := service.NewAuditService(dispatcher, logger)

	worker.StartAuditWorker(auditService)

	if pool != nil {
		if err := directoryService.BootstrapAdmins(ctx); err != nil {
			logger.Fatal("failed to bootstrap admin accounts", zap.Error(err))
		}
		if err := releaseService.EnsureDefaults(ctx); err != nil {
			logger.Fatal("failed to seed release defaults", zap.Error(err))
		}
		if err := statsService.EnsureBaseCount(ctx); err != nil {
			logger.Fatal("failed to seed stats defaults", zap.Error(err))
		}
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), accountRepo, adminRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Accounts:       handlers.NewAccountsHandler(authService),
		Licenses:       handlers.NewLicensesHandler(licenseService),
		Admin:          handlers.NewAdminHandler(authService, directoryService, licenseService, releaseService),
		Releases:       handlers.NewReleasesHandler(releaseService),
		Stats:          handlers.NewStatsHandler(statsService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
