package extension

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"team_polls/internal"
	"team_polls/internal/db/models"
	"team_polls/internal/polls"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	VoteCallbackPrefix = "v"
	DefaultErrorText   = "Something went wrong, please try again."
)

func DefaultErrorMessage(chatID int64) tgbotapi.Chattable {
	return ErrorMessage(chatID, DefaultErrorText)
}

func ErrorMessage(chatID int64, text string) tgbotapi.Chattable {
	return tgbotapi.NewMessage(chatID, text)
}

// ErrorText turns a poll service error into guidance for the user. The second value is
// false when the error is not one of the expected outcomes.
func ErrorText(err error) (string, bool) {
	var validationErr *polls.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return "Please fix the following:\n• " + strings.Join(validationErr.Problems, "\n• "), true
	case errors.Is(err, polls.ErrAlreadyVoted):
		return "You have already voted for this.", true
	case errors.Is(err, polls.ErrNotVoted):
		return "You have not voted for this option.", true
	case errors.Is(err, polls.ErrPollNotOpen):
		return "This poll is not open for voting.", true
	case errors.Is(err, polls.ErrInvalidTransition):
		return "This poll cannot be changed that way right now.", true
	case errors.Is(err, polls.ErrNotFound):
		return "Poll not found.", true
	case errors.Is(err, polls.ErrForbidden):
		return "You are not allowed to do that.", true
	case errors.Is(err, polls.ErrRateLimited):
		return "You have reached the daily poll limit, try again tomorrow.", true
	}
	return DefaultErrorText, false
}

func VoteCallbackData(pollID string, position int) string {
	return fmt.Sprintf("%s:%s:%d", VoteCallbackPrefix, pollID, position)
}

func ParseVoteCallback(data string) (pollID string, position int, err error) {
	parts := strings.Split(data, ":")
	if len(parts) != 3 || parts[0] != VoteCallbackPrefix {
		return "", 0, fmt.Errorf("malformed vote callback %q", data)
	}

	position, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, fmt.Errorf("malformed vote callback %q: %w", data, err)
	}

	return parts[1], position, nil
}

// ApplyCounts copies freshly returned counts onto the poll's options.
func ApplyCounts(poll *models.Poll, counts []polls.OptionCount) {
	for _, count := range counts {
		if option := poll.Option(count.OptionID); option != nil {
			option.VoteCount = count.Count
		}
	}
}

func PollText(poll *models.Poll) string {
	results := polls.NewResults(poll)

	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s\n", poll.Question)
	fmt.Fprintf(&b, "%s choice · %s\n", poll.BallotKind.CapitalizedString(), poll.Status.CapitalizedString())

	switch {
	case poll.Status == models.PollStatusScheduled && poll.ScheduledOpenAt != nil:
		fmt.Fprintf(&b, "Opens %s\n", internal.FormatDateTime(*poll.ScheduledOpenAt))
	case poll.Status == models.PollStatusOpen && poll.ScheduledCloseAt != nil:
		fmt.Fprintf(&b, "Closes %s\n", internal.FormatDateTime(*poll.ScheduledCloseAt))
	case poll.Status == models.PollStatusClosed && poll.ClosedAt != nil:
		fmt.Fprintf(&b, "Closed on %s\n", internal.Format(*poll.ClosedAt))
	}

	b.WriteString("\n")
	for i, option := range results.Options {
		fmt.Fprintf(&b, "%d. %s: %d (%.1f%%)\n", i+1, option.Text, option.Count, option.Percentage)
	}
	fmt.Fprintf(&b, "\nTotal votes: %d\nPoll ID: %s", results.TotalVotes, poll.ID)

	return b.String()
}

// PollKeyboard has one vote button per option, or nothing once voting is over.
func PollKeyboard(poll *models.Poll) *tgbotapi.InlineKeyboardMarkup {
	if poll.Status != models.PollStatusOpen {
		return nil
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(poll.Options))
	for _, option := range poll.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(option.Text, VoteCallbackData(poll.ID, option.Position)),
		))
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &keyboard
}

func PollMessage(chatID int64, poll *models.Poll) tgbotapi.MessageConfig {
	message := tgbotapi.NewMessage(chatID, PollText(poll))
	if keyboard := PollKeyboard(poll); keyboard != nil {
		message.ReplyMarkup = *keyboard
	}
	return message
}

func ResultsText(results *polls.Results) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🗳 Results: %s\n", results.Question)
	fmt.Fprintf(&b, "Status: %s\n\n", results.Status.CapitalizedString())

	for i, option := range results.Options {
		fmt.Fprintf(&b, "%d. %s: %d (%.1f%%)\n", i+1, option.Text, option.Count, option.Percentage)
	}
	fmt.Fprintf(&b, "\nTotal votes: %d", results.TotalVotes)

	if len(results.Leaders) > 0 {
		leaders := make([]string, 0, len(results.Leaders))
		for _, leader := range results.Leaders {
			leaders = append(leaders, leader.Text)
		}
		fmt.Fprintf(&b, "\n🏆 Leading: %s", strings.Join(leaders, ", "))
	}
	if results.CloseRace {
		b.WriteString("\n🏁 Close race: the top two options are within one vote.")
	}

	return b.String()
}
