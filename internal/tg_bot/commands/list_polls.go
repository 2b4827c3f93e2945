package commands

import (
	"context"
	"fmt"
	"strings"

	"team_polls/internal"
	"team_polls/internal/db/models"
	"team_polls/internal/polls"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	listCommandName = "polls"
	allFlag         = "all"
)

type listPollsCommand struct {
	service PollService
	logger  *zap.SugaredLogger
}

// NewListPollsCommand lists the chat's newest open polls, or all polls with "all".
func NewListPollsCommand(service PollService, logger *zap.SugaredLogger) Command {
	return &listPollsCommand{
		service: service,
		logger:  logger,
	}
}

func (c *listPollsCommand) CanHandle(command string) bool {
	return command == listCommandName
}

func (c *listPollsCommand) Handle(ctx context.Context, request Request) []tgbotapi.Chattable {
	includeAll := strings.TrimSpace(request.Arguments) == allFlag

	found, err := c.service.ListPolls(ctx, request.TeamID(), includeAll)
	if err != nil {
		return []tgbotapi.Chattable{errorReply(request.ChatID, err, c.logger, "list polls")}
	}

	if len(found) == 0 {
		text := "No open polls in this chat."
		if includeAll {
			text = "No polls in this chat."
		}
		return []tgbotapi.Chattable{tgbotapi.NewMessage(request.ChatID, text)}
	}

	return []tgbotapi.Chattable{tgbotapi.NewMessage(request.ChatID, pollListText(found, includeAll))}
}

func pollListText(found []*models.Poll, includeAll bool) string {
	var b strings.Builder
	if includeAll {
		b.WriteString("All polls:\n")
	} else {
		b.WriteString("Open polls:\n")
	}

	for _, poll := range found {
		results := polls.NewResults(poll)

		marker := "🔴"
		if poll.Status == models.PollStatusOpen {
			marker = "🟢"
		}

		fmt.Fprintf(&b, "\n%s %s\n", marker, poll.Question)
		fmt.Fprintf(&b, "   %s · %d votes · %s\n", poll.Status.CapitalizedString(), results.TotalVotes, internal.FormatDateTime(poll.CreatedAt))
		if len(results.Leaders) > 0 {
			fmt.Fprintf(&b, "   Leading: %s (%d votes)\n", results.Leaders[0].Text, results.Leaders[0].Count)
		}
		fmt.Fprintf(&b, "   ID: %s\n", poll.ID)
	}

	return b.String()
}
