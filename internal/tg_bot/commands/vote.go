package commands

import (
	"context"
	"errors"

	"team_polls/internal/db/models"
	"team_polls/internal/polls"
	"team_polls/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type voteCommand struct {
	service PollService
	logger  *zap.SugaredLogger
}

// NewVoteCommand handles vote button presses. Pressing an already chosen option of a
// multiple choice poll takes the vote back.
func NewVoteCommand(service PollService, logger *zap.SugaredLogger) Command {
	return &voteCommand{
		service: service,
		logger:  logger,
	}
}

func (c *voteCommand) CanHandle(command string) bool {
	return command == extension.VoteCallbackPrefix
}

func (c *voteCommand) Handle(ctx context.Context, request Request) []tgbotapi.Chattable {
	pollID, position, err := extension.ParseVoteCallback(request.Arguments)
	if err != nil {
		c.logger.Warnw("failed to parse vote callback", "error", err)
		return []tgbotapi.Chattable{tgbotapi.NewCallback(request.CallbackID, extension.DefaultErrorText)}
	}

	poll, err := teamPoll(ctx, c.service, request, pollID)
	if err != nil {
		return c.answerError(request, err)
	}

	option := optionAt(poll, position)
	if option == nil {
		return c.answerError(request, polls.ErrNotFound)
	}

	answer := "Your vote is counted."
	counts, err := c.service.SubmitVote(ctx, poll.ID, request.UserID, option.ID)
	if errors.Is(err, polls.ErrAlreadyVoted) && poll.BallotKind == models.BallotKindMultiple {
		answer = "Your vote is withdrawn."
		counts, err = c.service.WithdrawVote(ctx, poll.ID, request.UserID, option.ID)
	}
	if err != nil {
		return c.answerError(request, err)
	}

	extension.ApplyCounts(poll, counts)

	edit := tgbotapi.NewEditMessageText(request.ChatID, request.MessageID, extension.PollText(poll))
	edit.ReplyMarkup = extension.PollKeyboard(poll)

	return []tgbotapi.Chattable{
		tgbotapi.NewCallback(request.CallbackID, answer),
		edit,
	}
}

func (c *voteCommand) answerError(request Request, err error) []tgbotapi.Chattable {
	text, expected := extension.ErrorText(err)
	if !expected {
		c.logger.Errorw("failed to vote", "error", err)
	}
	return []tgbotapi.Chattable{tgbotapi.NewCallback(request.CallbackID, text)}
}

func optionAt(poll *models.Poll, position int) *models.Option {
	for _, option := range poll.Options {
		if option.Position == position {
			return option
		}
	}
	return nil
}
