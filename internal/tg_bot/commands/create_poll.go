package commands

import (
	"context"
	"fmt"

	"team_polls/internal/db/models"
	"team_polls/internal/polls"
	"team_polls/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	pollCommandName         = "poll"
	multiplePollCommandName = "mpoll"
	draftCommandName        = "draft"
)

type createPollCommand struct {
	service PollService
	logger  *zap.SugaredLogger
}

func NewCreatePollCommand(service PollService, logger *zap.SugaredLogger) Command {
	return &createPollCommand{
		service: service,
		logger:  logger,
	}
}

func (c *createPollCommand) CanHandle(command string) bool {
	return command == pollCommandName || command == multiplePollCommandName || command == draftCommandName
}

func (c *createPollCommand) Handle(ctx context.Context, request Request) []tgbotapi.Chattable {
	question, options := splitQuestionAndOptions(request.Arguments)

	kind := models.BallotKindSingle
	if request.Command == multiplePollCommandName {
		kind = models.BallotKindMultiple
	}

	poll, err := c.service.CreatePoll(ctx, polls.CreatePollRequest{
		Question:   question,
		Options:    options,
		BallotKind: kind,
		TeamID:     request.TeamID(),
		ChannelID:  request.ChannelID(),
		CreatorID:  request.UserID,
		KeepDraft:  request.Command == draftCommandName,
	})
	if err != nil {
		return []tgbotapi.Chattable{errorReply(request.ChatID, err, c.logger, "create poll")}
	}

	if poll.Status == models.PollStatusDraft {
		text := fmt.Sprintf("Draft saved. Poll ID: %s\nUse /edit, /open or /schedule with this ID.", poll.ID)
		return []tgbotapi.Chattable{tgbotapi.NewMessage(request.ChatID, text)}
	}

	return []tgbotapi.Chattable{extension.PollMessage(request.ChatID, poll)}
}
