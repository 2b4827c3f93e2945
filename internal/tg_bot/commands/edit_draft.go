package commands

import (
	"context"
	"fmt"

	"team_polls/internal/polls"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const editCommandName = "edit"

type editDraftCommand struct {
	service PollService
	logger  *zap.SugaredLogger
}

func NewEditDraftCommand(service PollService, logger *zap.SugaredLogger) Command {
	return &editDraftCommand{
		service: service,
		logger:  logger,
	}
}

func (c *editDraftCommand) CanHandle(command string) bool {
	return command == editCommandName
}

func (c *editDraftCommand) Handle(ctx context.Context, request Request) []tgbotapi.Chattable {
	pollID, rest := nextField(request.Arguments)
	kind, rest := parseBallotKind(rest)
	question, options := splitQuestionAndOptions(rest)

	current, err := teamPoll(ctx, c.service, request, pollID)
	if err != nil {
		return []tgbotapi.Chattable{errorReply(request.ChatID, err, c.logger, "edit draft")}
	}

	poll, err := c.service.EditDraft(ctx, polls.EditDraftRequest{
		PollID:           current.ID,
		RequesterID:      request.UserID,
		Question:         question,
		Options:          options,
		BallotKind:       kind,
		ScheduledOpenAt:  current.ScheduledOpenAt,
		ScheduledCloseAt: current.ScheduledCloseAt,
	})
	if err != nil {
		return []tgbotapi.Chattable{errorReply(request.ChatID, err, c.logger, "edit draft")}
	}

	text := fmt.Sprintf("Draft updated. Poll ID: %s\n%s", poll.ID, poll.Question)
	return []tgbotapi.Chattable{tgbotapi.NewMessage(request.ChatID, text)}
}
