package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks"
	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/callbacktypes"
	"github.com/sgtutorhub/assignment_bot/internal/controller/handlers"
	"github.com/sgtutorhub/assignment_bot/internal/controller/session"
	"github.com/sgtutorhub/assignment_bot/internal/service"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	callback *callbacktypes.Handler
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	tutorService *service.TutorService,
	assignmentService *service.AssignmentService,
	notificationService *service.NotificationService,
	sessions session.Store,
	isAdmin func(chatID int64) bool,
	logger *zap.Logger,
) *BotController {
	cb := &callbacktypes.Handler{
		Messenger:   botInstance,
		Tutors:      tutorService,
		Assignments: assignmentService,
		Notifier:    notificationService,
		Sessions:    sessions,
		Posting:     session.NewPostingStore(),
		IsAdmin:     isAdmin,
		Logger:      logger,
	}

	msgHandlers := handlers.NewHandlers(cb, assignmentService, notificationService, logger)

	// The admin conversational flows live with the message handlers; the
	// callback router reaches them through these hooks.
	cb.StartPosting = msgHandlers.StartPosting
	cb.StartBroadcast = msgHandlers.StartBroadcast

	return &BotController{
		bot:      botInstance,
		handlers: msgHandlers,
		callback: cb,
		logger:   logger,
	}
}

// RegisterHandlers wires all command, message and callback handlers.
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Prefix match: /start may carry a deep-link payload.
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Admin commands.
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypeExact, c.handlers.HandleStats)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/post", bot.MatchTypeExact, c.handlers.HandlePost)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/broadcast", bot.MatchTypeExact, c.handlers.HandleBroadcast)

	// Free-form text drives the capture states and admin flows.
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleMessage)

	// Inline button presses.
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, callbacks.RouteCallback(c.callback))

	return c.setCommands(ctx)
}

// HandleDefault catches updates the text handlers miss, in particular
// contact shares. Wired in as the bot's default handler.
func (c *BotController) HandleDefault(ctx context.Context, b *bot.Bot, update *models.Update) {
	c.handlers.HandleMessage(ctx, b, update)
}

func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Verify and open the main menu"},
		{Command: "help", Description: "❓ How the bot works"},
		{Command: "cancel", Description: "🚫 Abort the current input"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start runs the long-polling loop. Not used in webhook mode.
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}
