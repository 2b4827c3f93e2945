package commands

import (
	"context"
	"fmt"
	"strings"

	"team_polls/internal"
	"team_polls/internal/db/models"
	"team_polls/internal/polls"
	"team_polls/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	scheduleCommandName = "schedule"
	multiFlag           = "multi"
)

type schedulePollCommand struct {
	service PollService
	logger  *zap.SugaredLogger
}

func NewSchedulePollCommand(service PollService, logger *zap.SugaredLogger) Command {
	return &schedulePollCommand{
		service: service,
		logger:  logger,
	}
}

func (c *schedulePollCommand) CanHandle(command string) bool {
	return command == scheduleCommandName
}

func (c *schedulePollCommand) Handle(ctx context.Context, request Request) []tgbotapi.Chattable {
	arguments := strings.TrimSpace(request.Arguments)
	if _, err := uuid.Parse(arguments); err == nil {
		return c.scheduleDraft(ctx, request, arguments)
	}

	pollRequest, err := parseScheduleArguments(arguments)
	if err != nil {
		return []tgbotapi.Chattable{errorReply(request.ChatID, err, c.logger, "schedule poll")}
	}

	pollRequest.TeamID = request.TeamID()
	pollRequest.ChannelID = request.ChannelID()
	pollRequest.CreatorID = request.UserID

	poll, err := c.service.CreatePoll(ctx, pollRequest)
	if err != nil {
		return []tgbotapi.Chattable{errorReply(request.ChatID, err, c.logger, "schedule poll")}
	}

	return []tgbotapi.Chattable{tgbotapi.NewMessage(request.ChatID, scheduledText(poll))}
}

func (c *schedulePollCommand) scheduleDraft(ctx context.Context, request Request, pollID string) []tgbotapi.Chattable {
	poll, err := teamPoll(ctx, c.service, request, pollID)
	if err == nil {
		poll, err = c.service.SchedulePoll(ctx, poll.ID, request.UserID)
	}
	if err != nil {
		return []tgbotapi.Chattable{errorReply(request.ChatID, err, c.logger, "schedule draft")}
	}

	return []tgbotapi.Chattable{tgbotapi.NewMessage(request.ChatID, scheduledText(poll))}
}

// parseScheduleArguments reads "<open> <close> [multi] Question | A | B".
func parseScheduleArguments(arguments string) (polls.CreatePollRequest, error) {
	openValue, rest := nextField(arguments)
	closeValue, rest := nextField(rest)

	openAt, err := internal.ParseScheduleTime(openValue)
	if err != nil {
		return polls.CreatePollRequest{}, &polls.ValidationError{Problems: []string{
			fmt.Sprintf("open time %q must look like 2026-03-02T15:04", openValue),
		}}
	}

	closeAt, err := internal.ParseScheduleTime(closeValue)
	if err != nil {
		return polls.CreatePollRequest{}, &polls.ValidationError{Problems: []string{
			fmt.Sprintf("close time %q must look like 2026-03-02T15:04", closeValue),
		}}
	}

	kind, rest := parseBallotKind(rest)
	question, options := splitQuestionAndOptions(rest)

	return polls.CreatePollRequest{
		Question:         question,
		Options:          options,
		BallotKind:       kind,
		ScheduledOpenAt:  &openAt,
		ScheduledCloseAt: &closeAt,
	}, nil
}

func parseBallotKind(arguments string) (models.BallotKind, string) {
	if flag, rest := nextField(arguments); flag == multiFlag {
		return models.BallotKindMultiple, rest
	}
	return models.BallotKindSingle, arguments
}

func scheduledText(poll *models.Poll) string {
	return fmt.Sprintf("Poll scheduled. Poll ID: %s\n%s", poll.ID, extension.PollText(poll))
}
