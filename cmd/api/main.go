package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/gis-site-service/internal/api/http"
	"github.com/spec-kit/gis-site-service/internal/api/http/handlers"
	"github.com/spec-kit/gis-site-service/internal/auth"
	"github.com/spec-kit/gis-site-service/internal/config"
	"github.com/spec-kit/gis-site-service/internal/events"
	"github.com/spec-kit/gis-site-service/internal/notify"
	"github.com/spec-kit/gis-site-service/internal/observability"
	"github.com/spec-kit/gis-site-service/internal/persistence"
	"github.com/spec-kit/gis-site-service/internal/ratelimit"
	"github.com/spec-kit/gis-site-service/internal/repository"
	"github.com/spec-kit/gis-site-service/internal/service"
	"github.com/spec-kit/gis-site-service/internal/worker"
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
	pool := pg.PoolHandle()

	if cfg.Postgres.RunMigrations {
		if err := pg.Migrate(ctx, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	adminRepo := repository.NewAdminRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	emailConfigRepo := repository.NewEmailConfigRepository(pool)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{AdminRepo: adminRepo, Logger: logger})
	if cfg.Auth.BootstrapAdminEmail != "" {
		if _, _, err := authService.EnsureAdmin(ctx, cfg.Auth.BootstrapAdminName,
			cfg.Auth.BootstrapAdminEmail, cfg.Auth.BootstrapAdminPassword); err != nil {
			logger.Fatal("failed to bootstrap admin", zap.Error(err))
		}
	}
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), adminRepo)

	notifier, err := notify.NewNotifier(notify.NewMailer(cfg.Mail, logger), cfg.Site)
	if err != nil {
		logger.Fatal("failed to load email templates", zap.Error(err))
	}

	dispatcher := events.NewAsyncDispatcher(logger)
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		Dispatcher:        dispatcher,
		Notifier:          notifier,
		Recipients:        emailConfigRepo,
		FallbackRecipient: cfg.Mail.AdminRecipient,
		Metrics:           metrics,
		Logger:            logger,
	})
	drainNotifications := worker.StartNotificationWorker(notificationService, dispatcher)

	messageService := service.NewMessageService(service.MessageDependencies{
		MessageRepo: messageRepo,
		Replies:     notifier,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
	})
	contactService := service.NewContactService(service.ContactDependencies{
		ContactInfoRepo: repository.NewContactInfoRepository(pool),
		DepartmentRepo:  repository.NewDepartmentalContactRepository(pool),
		SocialLinkRepo:  repository.NewSocialLinkRepository(pool),
	})
	emailConfigService := service.NewEmailConfigService(service.EmailConfigDependencies{
		EmailConfigRepo: emailConfigRepo,
		Logger:          logger,
	})

	limiter := ratelimit.New(redis.Counter(), "contact-message", cfg.RateLimit.Messages, cfg.RateLimit.Window(), logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Contact:        handlers.NewContactHandler(contactService),
		Messages:       handlers.NewMessagesHandler(messageService),
		EmailConfig:    handlers.NewEmailConfigHandler(emailConfigService),
		AuthMiddleware: authMiddleware,
		SubmitLimit:    limiter.Middleware(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	drainNotifications()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
