package commands

import (
	"context"
	"strings"

	"team_polls/internal/polls"
	"team_polls/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	resultsCommandName = "results"
	recountCommandName = "recount"
)

type resultsCommand struct {
	service PollService
	logger  *zap.SugaredLogger
}

// NewResultsCommand shows results, and for admins rebuilds them from stored ballots first.
func NewResultsCommand(service PollService, logger *zap.SugaredLogger) Command {
	return &resultsCommand{
		service: service,
		logger:  logger,
	}
}

func (c *resultsCommand) CanHandle(command string) bool {
	return command == resultsCommandName || command == recountCommandName
}

func (c *resultsCommand) Handle(ctx context.Context, request Request) []tgbotapi.Chattable {
	pollID := strings.TrimSpace(request.Arguments)

	getResults := c.service.GetResults
	if request.Command == recountCommandName {
		getResults = func(ctx context.Context, pollID string) (*polls.Results, error) {
			return c.service.Recount(ctx, pollID, request.UserID)
		}
	}

	var results *polls.Results

	poll, err := teamPoll(ctx, c.service, request, pollID)
	if err == nil {
		results, err = getResults(ctx, poll.ID)
	}
	if err != nil {
		return []tgbotapi.Chattable{errorReply(request.ChatID, err, c.logger, request.Command)}
	}

	return []tgbotapi.Chattable{tgbotapi.NewMessage(request.ChatID, extension.ResultsText(results))}
}
