package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/isp-support-service/internal/api/http"
	"github.com/spec-kit/isp-support-service/internal/api/http/handlers"
	"github.com/spec-kit/isp-support-service/internal/auth"
	"github.com/spec-kit/isp-support-service/internal/config"
	"github.com/spec-kit/isp-support-service/internal/domain"
	"github.com/spec-kit/isp-support-service/internal/events"
	"github.com/spec-kit/isp-support-service/internal/observability"
	"github.com/spec-kit/isp-support-service/internal/persistence"
	"github.com/spec-kit/isp-support-service/internal/ratelimit"
	"github.com/spec-kit/isp-support-service/internal/repository"
	"github.com/spec-kit/isp-support-service/internal/service"
	"github.com/spec-kit/isp-support-service/internal/worker"
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
	ticketRepo := repository.NewTicketRepository(pool)
	historyRepo := repository.NewStatusHistoryRepository(pool)
	eventRepo := repository.NewTicketEventRepository(pool)
	coverageRepo := repository.NewCoverageRepository(pool)
	packageRepo := repository.NewPackageRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	txManager := repository.NewTxManager(pool)

	dispatcher := events.NewInMemoryDispatcher()

	var trackLimiter ratelimit.Limiter
	if cfg.Tracking.UseRedisLimiter {
		trackLimiter = ratelimit.NewRedisLimiter(redis.Client, "rl:track", cfg.Tracking.RateLimit, cfg.Tracking.RateWindow())
	} else {
		trackLimiter = ratelimit.NewMemoryLimiter(cfg.Tracking.RateLimit, cfg.Tracking.RateWindow())
	}

	policy := domain.DefaultTransitions()
	if cfg.Tickets.TransitionPolicy == "permissive" {
		policy = domain.PermissiveTransitions()
	}

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		HistoryRepo: historyRepo,
		EventRepo:   eventRepo,
		PackageRepo: packageRepo,
		StaffRepo:   staffRepo,
		Tx:          txManager,
		Dispatcher:  dispatcher,
		Policy:      policy,
	})
	trackingService := service.NewTrackingService(ticketRepo, historyRepo, eventRepo, trackLimiter, logger)
	coverageService := service.NewCoverageService(coverageRepo, packageRepo)
	authService := service.NewAuthService(cfg.Auth, staffRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), staffRepo)

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tracking:       handlers.NewTrackingHandler(trackingService),
		Coverage:       handlers.NewCoverageHandler(coverageService),
		Requests:       handlers.NewRequestsHandler(ticketService),
		Staff:          handlers.NewStaffHandler(authService),
		StaffTickets:   handlers.NewStaffTicketsHandler(ticketService),
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
