package commands

import (
	"context"
	"fmt"
	"strings"

	"team_polls/internal/db/models"
	"team_polls/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	openCommandName  = "open"
	closeCommandName = "close"
	cloneCommandName = "clone"
)

type pollActionsCommand struct {
	service PollService
	logger  *zap.SugaredLogger
}

// NewPollActionsCommand handles the manual lifecycle commands that take a single poll id.
func NewPollActionsCommand(service PollService, logger *zap.SugaredLogger) Command {
	return &pollActionsCommand{
		service: service,
		logger:  logger,
	}
}

func (c *pollActionsCommand) CanHandle(command string) bool {
	switch command {
	case openCommandName, closeCommandName, cloneCommandName:
		return true
	}
	return false
}

func (c *pollActionsCommand) Handle(ctx context.Context, request Request) []tgbotapi.Chattable {
	pollID, rest := nextField(request.Arguments)

	poll, err := teamPoll(ctx, c.service, request, pollID)
	if err == nil {
		switch request.Command {
		case openCommandName:
			poll, err = c.service.OpenPoll(ctx, poll.ID, request.UserID)
		case closeCommandName:
			poll, err = c.service.ClosePoll(ctx, poll.ID, request.UserID)
		case cloneCommandName:
			keepDraft := strings.TrimSpace(rest) == draftCommandName
			poll, err = c.service.DuplicatePoll(ctx, poll.ID, request.UserID, request.TeamID(), request.ChannelID(), keepDraft)
		}
	}
	if err != nil {
		return []tgbotapi.Chattable{errorReply(request.ChatID, err, c.logger, request.Command+" poll")}
	}

	switch poll.Status {
	case models.PollStatusOpen:
		return []tgbotapi.Chattable{extension.PollMessage(request.ChatID, poll)}
	case models.PollStatusClosed:
		results, err := c.service.GetResults(ctx, poll.ID)
		if err != nil {
			return []tgbotapi.Chattable{errorReply(request.ChatID, err, c.logger, "get results")}
		}
		return []tgbotapi.Chattable{tgbotapi.NewMessage(request.ChatID, extension.ResultsText(results))}
	}

	text := fmt.Sprintf("Poll saved as %s. Poll ID: %s", poll.Status, poll.ID)
	return []tgbotapi.Chattable{tgbotapi.NewMessage(request.ChatID, text)}
}
