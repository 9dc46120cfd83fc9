package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/support-portal/internal/api/http"
	"github.com/spec-kit/support-portal/internal/api/http/handlers"
	"github.com/spec-kit/support-portal/internal/backend"
	"github.com/spec-kit/support-portal/internal/chat"
	"github.com/spec-kit/support-portal/internal/config"
	"github.com/spec-kit/support-portal/internal/escalation"
	"github.com/spec-kit/support-portal/internal/events"
	"github.com/spec-kit/support-portal/internal/observability"
	"github.com/spec-kit/support-portal/internal/persistence"
	"github.com/spec-kit/support-portal/internal/richtext"
	"github.com/spec-kit/support-portal/internal/service"
	"github.com/spec-kit/support-portal/internal/session"
	"github.com/spec-kit/support-portal/internal/worker"
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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	backendClient := backend.NewClient(cfg.Backend, logger)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, logger)

	tokens := session.NewTokenManager(cfg.Session.JWTSecret, cfg.Session.SessionTTL())
	states := session.NewStateManager(cfg.Session.JWTSecret, cfg.Session.OAuthStateTTL(), redis.Client)
	sessionMiddleware := session.NewMiddleware(tokens)

	conversationStore := chat.NewConversationStore(redis.Client, cfg.Session.ChatHistoryTTL())
	chatService := chat.NewService(conversationStore, backendClient, dispatcher, logger)

	escalator := escalation.NewController(backendClient, cfg.Session.EscalateRedirectDelay())
	analystService := service.NewAnalystService(service.AnalystDependencies{
		API:        backendClient,
		Escalator:  escalator,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	adminService := service.NewAdminService(backendClient)
	authService := service.NewAuthService(backendClient, states, tokens, logger)

	renderer := richtext.New()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis),
		Auth:              handlers.NewAuthHandler(authService),
		Chat:              handlers.NewChatHandler(chatService, renderer),
		Analyst:           handlers.NewAnalystHandler(analystService, renderer),
		Admin:             handlers.NewAdminHandler(adminService),
		SessionMiddleware: sessionMiddleware,
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
