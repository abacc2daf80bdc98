package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/crm-service/internal/api/http"
	"github.com/spec-kit/crm-service/internal/api/http/handlers"
	"github.com/spec-kit/crm-service/internal/auth"
	"github.com/spec-kit/crm-service/internal/config"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/observability"
	"github.com/spec-kit/crm-service/internal/persistence"
	"github.com/spec-kit/crm-service/internal/repository"
	"github.com/spec-kit/crm-service/internal/service"
	"github.com/spec-kit/crm-service/internal/worker"
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

	// Tokens are signed with a key that lives exactly as long as this
	// process unless one is provided; a restart invalidates every
	// outstanding token.
	signingKey := []byte(cfg.Auth.SigningKey)
	if len(signingKey) == 0 {
		signingKey, err = auth.NewSigningKey()
		if err != nil {
			logger.Fatal("failed to generate signing key", zap.Error(err))
		}
		logger.Info("generated process signing key; outstanding tokens will not survive a restart")
	}
	tokenManager := auth.NewTokenManager(signingKey, cfg.Auth.TokenTTL())

	pool := pg.PoolHandle()
	employeeRepo := repository.NewEmployeeRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	throttle := repository.NewLoginThrottle(redis.Client, cfg.Auth.ThrottleMaxAttempts, cfg.Auth.ThrottleWindow())

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		EmployeeRepo: employeeRepo,
		Throttle:     throttle,
		Dispatcher:   dispatcher,
		TokenManager: tokenManager,
	})
	employeeService := service.NewEmployeeService(employeeRepo)
	customerService := service.NewCustomerService(customerRepo, employeeRepo)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Docs:      handlers.NewDocsHandler(cfg.App.Name, cfg.App.Version),
		Auth:      handlers.NewAuthHandler(authService),
		Employees: handlers.NewEmployeesHandler(authService, employeeService),
		Customers: handlers.NewCustomersHandler(customerService),
		Gate:      auth.NewGate(tokenManager),
		Policy:    auth.DefaultPolicy(),
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
