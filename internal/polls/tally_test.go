package polls

import (
	"testing"

	"team_polls/internal/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pollWithCounts(counts ...int) *models.Poll {
	poll := &models.Poll{ID: "poll", Question: "Q", Status: models.PollStatusOpen}
	for i, count := range counts {
		poll.Options = append(poll.Options, &models.Option{
			ID:        string(rune('a' + i)),
			Text:      string(rune('A' + i)),
			Position:  i,
			VoteCount: count,
		})
	}
	return poll
}

func TestNewResults_ZeroVotes(t *testing.T) {
	results := NewResults(pollWithCounts(0, 0, 0))

	assert.Equal(t, 0, results.TotalVotes)
	for _, option := range results.Options {
		assert.Zero(t, option.Percentage)
	}
	assert.Empty(t, results.Leaders)
	assert.False(t, results.CloseRace)
}

func TestNewResults_PercentagesSumTo100(t *testing.T) {
	for _, counts := range [][]int{{1, 1, 1}, {2, 5}, {7, 0, 3, 1}, {1}} {
		results := NewResults(pollWithCounts(counts...))

		sum := 0.0
		for _, option := range results.Options {
			sum += option.Percentage
		}
		assert.InDelta(t, 100, sum, 0.0001, "counts %v", counts)
	}
}

func TestNewResults_Leaders(t *testing.T) {
	results := NewResults(pollWithCounts(3, 5, 5))

	require.Len(t, results.Leaders, 2)
	assert.Equal(t, "B", results.Leaders[0].Text)
	assert.Equal(t, "C", results.Leaders[1].Text)
	assert.Equal(t, 13, results.TotalVotes)
}

func TestNewResults_CloseRace(t *testing.T) {
	assert.True(t, NewResults(pollWithCounts(3, 2)).CloseRace)
	assert.False(t, NewResults(pollWithCounts(1, 1)).CloseRace)
	assert.False(t, NewResults(pollWithCounts(5, 2)).CloseRace)
}

func TestNewResults_KeepsOptionOrder(t *testing.T) {
	results := NewResults(pollWithCounts(1, 9))

	assert.Equal(t, "A", results.Options[0].Text)
	assert.InDelta(t, 10, results.Options[0].Percentage, 0.0001)
	assert.InDelta(t, 90, results.Options[1].Percentage, 0.0001)
}
