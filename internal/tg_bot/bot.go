package tgbot

import (
	"context"
	"fmt"

	"team_polls/configs"
	"team_polls/internal/tg_bot/handlers"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender is the part of *tgbotapi.BotAPI used to deliver replies.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type bot struct {
	api     *tgbotapi.BotAPI
	config  configs.Bot
	handler handlers.CommandHandler
	logger  *zap.SugaredLogger
}

type Bot interface {
	Start(ctx context.Context)
}

func NewBotAPI(config configs.Bot) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(config.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	api.Debug = config.Debug
	return api, nil
}

func NewBot(api *tgbotapi.BotAPI, config configs.Bot, handler handlers.CommandHandler, logger *zap.SugaredLogger) Bot {
	return &bot{
		api:     api,
		config:  config,
		handler: handler,
		logger:  logger,
	}
}

// Start polls for updates until ctx is cancelled.
func (b *bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.config.UpdateTimeout

	updates := b.api.GetUpdatesChan(u)
	b.logger.Infow("bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			Deliver(b.api, b.handler.Handle(ctx, update), b.logger)
		}
	}
}

// Deliver sends replies in order. Callback answers and message edits return no message
// and go through Request.
func Deliver(sender Sender, replies []tgbotapi.Chattable, logger *zap.SugaredLogger) {
	for _, reply := range replies {
		var err error

		switch reply.(type) {
		case tgbotapi.CallbackConfig, tgbotapi.EditMessageTextConfig:
			_, err = sender.Request(reply)
		default:
			_, err = sender.Send(reply)
		}

		if err != nil {
			logger.Errorw("failed to send message", "error", err)
		}
	}
}
