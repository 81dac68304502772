package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/app"
	"github.com/sgtutorhub/assignment_bot/internal/config"
	"github.com/sgtutorhub/assignment_bot/internal/controller"
	"github.com/sgtutorhub/assignment_bot/internal/controller/session"
	"github.com/sgtutorhub/assignment_bot/internal/repository"
	"github.com/sgtutorhub/assignment_bot/internal/server"
	"github.com/sgtutorhub/assignment_bot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting assignment bot",
		zap.String("environment", cfg.Environment),
		zap.Int("admins", len(cfg.AdminChatIDs)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Database unreachable", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, "migrations")
	if err != nil {
		logger.Fatal("Failed to init migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	tutorRepo := repository.NewTutorRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)

	// The bot instance and the controller depend on each other through the
	// default handler; this indirection breaks the cycle.
	var botController *controller.BotController
	defaultHandler := func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if botController != nil {
			botController.HandleDefault(ctx, b, update)
		}
	}

	b, err := bot.New(cfg.TelegramToken, bot.WithDefaultHandler(defaultHandler))
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	tutorService := service.NewTutorService(tutorRepo, logger)
	notificationService := service.NewNotificationService(
		b, tutorRepo, cfg.AdminChatIDs, cfg.ChannelChatID, cfg.BotUsername, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, notificationService, logger)

	sessions := session.NewMemoryStore()

	botController = controller.NewBotController(
		b, tutorService, assignmentService, notificationService, sessions, cfg.IsAdmin, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	sweeper := app.NewSweeper(sessions, logger)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("Failed to start session sweeper", zap.Error(err))
	}
	defer sweeper.Stop()

	httpSrv := server.New(cfg, b.WebhookHandler(), tutorService, assignmentService, notificationService, logger)
	go func() {
		if err := httpSrv.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Webhook mode when a secret is configured, long polling otherwise
	// (local development).
	if cfg.WebhookSecret != "" {
		logger.Info("Running in webhook mode")
		b.StartWebhook(ctx)
	} else {
		logger.Info("Running in long-polling mode")
		botController.Start(ctx)
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	logger.Info("Bye")
}
