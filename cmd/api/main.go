package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/library-service/internal/api/http"
	"github.com/spec-kit/library-service/internal/api/http/handlers"
	"github.com/spec-kit/library-service/internal/auth"
	"github.com/spec-kit/library-service/internal/config"
	"github.com/spec-kit/library-service/internal/events"
	"github.com/spec-kit/library-service/internal/observability"
	"github.com/spec-kit/library-service/internal/persistence"
	"github.com/spec-kit/library-service/internal/repository"
	"github.com/spec-kit/library-service/internal/service"
	"github.com/spec-kit/library-service/internal/worker"
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

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		logger.Fatal("failed to create uploads dir", zap.Error(err))
	}

	pool := pg.PoolHandle()
	bookRepo := repository.NewBookRepository(pool)
	memberRepo := repository.NewMemberRepository(pool)
	transactionRepo := repository.NewTransactionRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, memberRepo, dispatcher)
	memberService := service.NewMemberService(memberRepo, transactionRepo)
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		BookRepo:        bookRepo,
		TransactionRepo: transactionRepo,
		CategoryRepo:    categoryRepo,
		Dispatcher:      dispatcher,
	})
	lendingService := service.NewLendingService(service.LendingDependencies{
		BookRepo:        bookRepo,
		MemberRepo:      memberRepo,
		TransactionRepo: transactionRepo,
		Dispatcher:      dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), memberRepo)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.Uploads.MaxBytes) + 1024*1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	app.Use(httptransport.RateLimiter(redis.Client, logger, cfg.RateLimit))

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, memberService),
		Admin:          handlers.NewAdminHandler(authService),
		Books:          handlers.NewBooksHandler(catalogService),
		Transactions:   handlers.NewTransactionsHandler(lendingService),
		Members:        handlers.NewMembersHandler(lendingService, memberService, cfg.Uploads),
		AuthMiddleware: authMiddleware,
		UploadsDir:     cfg.Uploads.Dir,
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
