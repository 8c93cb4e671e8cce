package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pinpager/pkg/config"
	"pinpager/pkg/logger"
	"pinpager/pkg/scraper"
	"pinpager/pkg/session"
)

// Bot wires the Telegram update loop to the session controller
type Bot struct {
	api         *tgbotapi.BotAPI
	controller  *Controller
	pollTimeout int
	logger      logger.Logger
}

// New creates a fully wired bot from configuration
func New(cfg *config.Config, log logger.Logger) (*Bot, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram: %w", err)
	}
	api.Debug = cfg.Telegram.Debug

	client := scraper.New(cfg, log)
	controller := NewController(
		session.NewStore(),
		client,
		client,
		NewTelegramTransport(api),
		cfg.Download.ConcurrentFetches,
		log,
	)

	return &Bot{
		api:         api,
		controller:  controller,
		pollTimeout: cfg.Telegram.PollTimeout,
		logger:      log,
	}, nil
}

// Run starts the long-poll update loop and blocks until the context is
// cancelled or the update channel closes. Each update is handled in its own
// goroutine; updates for different chats run fully in parallel.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(u)

	b.logger.InfoWithFields("bot started", map[string]interface{}{
		"username": b.api.Self.UserName,
	})

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate dispatches one inbound update to the controller
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	// One chat's failure must never take down the process or another
	// chat's in-flight task.
	defer func() {
		if r := recover(); r != nil {
			b.logger.ErrorWithFields("panic while handling update", map[string]interface{}{
				"panic": fmt.Sprintf("%v", r),
			})
		}
	}()

	switch {
	case update.Message != nil && update.Message.Text != "":
		b.controller.HandleText(ctx, update.Message.Chat.ID, update.Message.Text)
	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		if cq.Message == nil {
			// A press on a message past Telegram's callback window
			// carries no chat; acknowledge it so the client spinner
			// clears, there is no session to serve.
			b.controller.answerCallback(cq.ID, "")
			return
		}
		b.controller.HandleCallback(ctx, cq.Message.Chat.ID, cq.ID, cq.Data)
	}
}
