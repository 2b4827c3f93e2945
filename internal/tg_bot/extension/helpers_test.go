package extension

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"team_polls/internal/db/models"
	"team_polls/internal/polls"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pollID = "6f1c2e9a-6c1e-4b7a-9d7e-2f4b8d1a0c11"

func TestVoteCallbackData_FitsTelegramLimit(t *testing.T) {
	data := VoteCallbackData(pollID, 19)
	assert.LessOrEqual(t, len(data), 64)

	id, position, err := ParseVoteCallback(data)
	require.NoError(t, err)
	assert.Equal(t, pollID, id)
	assert.Equal(t, 19, position)
}

func TestParseVoteCallback_Malformed(t *testing.T) {
	for _, data := range []string{"", "v", "v:id", "x:id:1", "v:id:first", "v:id:1:2"} {
		_, _, err := ParseVoteCallback(data)
		assert.Error(t, err, data)
	}
}

func TestErrorText(t *testing.T) {
	text, expected := ErrorText(fmt.Errorf("wrapped: %w", polls.ErrForbidden))
	assert.True(t, expected)
	assert.Equal(t, "You are not allowed to do that.", text)

	text, expected = ErrorText(&polls.ValidationError{Problems: []string{"a", "b"}})
	assert.True(t, expected)
	assert.Equal(t, "Please fix the following:\n• a\n• b", text)

	text, expected = ErrorText(errors.New("connection reset"))
	assert.False(t, expected)
	assert.Equal(t, DefaultErrorText, text)
}

func testPoll(status models.PollStatus) *models.Poll {
	return &models.Poll{
		ID:         pollID,
		Question:   "Lunch?",
		BallotKind: models.BallotKindMultiple,
		Status:     status,
		Options: []*models.Option{
			{ID: "a", Text: "Pizza", Position: 0},
			{ID: "b", Text: "Sushi", Position: 1},
		},
	}
}

func TestPollKeyboard(t *testing.T) {
	keyboard := PollKeyboard(testPoll(models.PollStatusOpen))
	require.NotNil(t, keyboard)
	require.Len(t, keyboard.InlineKeyboard, 2)
	assert.Equal(t, "Sushi", keyboard.InlineKeyboard[1][0].Text)
	assert.Equal(t, VoteCallbackData(pollID, 1), *keyboard.InlineKeyboard[1][0].CallbackData)

	assert.Nil(t, PollKeyboard(testPoll(models.PollStatusClosed)))
	assert.Nil(t, PollKeyboard(testPoll(models.PollStatusDraft)))
}

func TestPollText(t *testing.T) {
	poll := testPoll(models.PollStatusOpen)
	ApplyCounts(poll, []polls.OptionCount{{OptionID: "a", Count: 1}, {OptionID: "b", Count: 3}, {OptionID: "zzz", Count: 9}})

	text := PollText(poll)
	assert.Contains(t, text, "Multiple choice · Open")
	assert.Contains(t, text, "2. Sushi: 3 (75.0%)")
	assert.Contains(t, text, "Total votes: 4")

	closedAt := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	poll.Status = models.PollStatusClosed
	poll.ClosedAt = &closedAt
	assert.Contains(t, PollText(poll), "Closed on 04.03.2026")
}

func TestResultsText_CloseRace(t *testing.T) {
	poll := testPoll(models.PollStatusClosed)
	poll.Options[0].VoteCount = 2
	poll.Options[1].VoteCount = 2

	text := ResultsText(polls.NewResults(poll))
	assert.Contains(t, text, "Leading: Pizza, Sushi")
	assert.Contains(t, text, "Close race")
}
