package tgbot

import (
	"context"
	"fmt"
	"strconv"

	"team_polls/internal/db/models"
	"team_polls/internal/polls"
	"team_polls/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type notifier struct {
	sender Sender
	logger *zap.SugaredLogger
}

// NewNotifier posts announcements to the chat a poll was created in.
func NewNotifier(sender Sender, logger *zap.SugaredLogger) polls.Notifier {
	return &notifier{
		sender: sender,
		logger: logger,
	}
}

func (n *notifier) PollOpened(_ context.Context, poll *models.Poll) error {
	chatID, err := strconv.ParseInt(poll.ChannelID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", poll.ChannelID, err)
	}

	if _, err = n.sender.Send(extension.PollMessage(chatID, poll)); err != nil {
		return fmt.Errorf("failed to announce opened poll: %w", err)
	}

	n.logger.Infow("opened poll announced", "poll_id", poll.ID, "chat_id", chatID)
	return nil
}

func (n *notifier) PollClosed(_ context.Context, poll *models.Poll, results *polls.Results) error {
	chatID, err := strconv.ParseInt(poll.ChannelID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", poll.ChannelID, err)
	}

	if _, err = n.sender.Send(tgbotapi.NewMessage(chatID, extension.ResultsText(results))); err != nil {
		return fmt.Errorf("failed to announce closed poll: %w", err)
	}

	n.logger.Infow("closed poll announced", "poll_id", poll.ID, "chat_id", chatID)
	return nil
}
