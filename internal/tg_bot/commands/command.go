package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"team_polls/internal/db/models"
	"team_polls/internal/polls"
	"team_polls/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Request is an incoming chat command or button press. The chat is the team
// workspace and the channel at the same time.
type Request struct {
	Command       string
	Arguments     string
	ChatID        int64
	MessageID     int
	CallbackID    string
	UserID        string
	ReplyToUserID string
}

func (r Request) TeamID() string {
	return strconv.FormatInt(r.ChatID, 10)
}

func (r Request) ChannelID() string {
	return strconv.FormatInt(r.ChatID, 10)
}

type Command interface {
	CanHandle(command string) bool
	Handle(ctx context.Context, request Request) []tgbotapi.Chattable
}

type PollService interface {
	CreatePoll(ctx context.Context, request polls.CreatePollRequest) (*models.Poll, error)
	EditDraft(ctx context.Context, request polls.EditDraftRequest) (*models.Poll, error)
	DuplicatePoll(ctx context.Context, pollID, requesterID, teamID, channelID string, keepDraft bool) (*models.Poll, error)
	SubmitVote(ctx context.Context, pollID, voterID, optionID string) ([]polls.OptionCount, error)
	WithdrawVote(ctx context.Context, pollID, voterID, optionID string) ([]polls.OptionCount, error)
	OpenPoll(ctx context.Context, pollID, requesterID string) (*models.Poll, error)
	SchedulePoll(ctx context.Context, pollID, requesterID string) (*models.Poll, error)
	ClosePoll(ctx context.Context, pollID, requesterID string) (*models.Poll, error)
	GetPoll(ctx context.Context, pollID string) (*models.Poll, error)
	GetResults(ctx context.Context, pollID string) (*polls.Results, error)
	ListPolls(ctx context.Context, teamID string, includeAll bool) ([]*models.Poll, error)
	Recount(ctx context.Context, pollID, requesterID string) (*polls.Results, error)
}

type RoleService interface {
	SetRole(ctx context.Context, teamID, assignerID, userID string, role models.UserRoleName) (*models.UserRole, error)
}

// teamPoll loads a poll of the chat's team. Polls of other teams are reported as not found.
func teamPoll(ctx context.Context, service PollService, request Request, pollID string) (*models.Poll, error) {
	poll, err := service.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}

	if poll.TeamID != request.TeamID() {
		return nil, fmt.Errorf("%w: poll belongs to another team", polls.ErrNotFound)
	}

	return poll, nil
}

// splitQuestionAndOptions reads "Question | Option 1 | Option 2". Options may also be
// given one per line after the question.
func splitQuestionAndOptions(arguments string) (string, []string) {
	separator := "|"
	if !strings.Contains(arguments, separator) {
		separator = "\n"
	}

	parts := strings.Split(arguments, separator)
	question := strings.TrimSpace(parts[0])

	options := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		if part = strings.TrimSpace(part); part != "" {
			options = append(options, part)
		}
	}

	return question, options
}

// nextField cuts the first whitespace separated word off s.
func nextField(s string) (field, rest string) {
	s = strings.TrimLeft(s, " \t\n")
	if i := strings.IndexAny(s, " \t\n"); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

func errorReply(chatID int64, err error, logger *zap.SugaredLogger, action string) tgbotapi.Chattable {
	text, expected := extension.ErrorText(err)
	if expected {
		logger.Infow(action+" rejected", "reason", err)
	} else {
		logger.Errorw("failed to "+action, "error", err)
	}
	return extension.ErrorMessage(chatID, text)
}
