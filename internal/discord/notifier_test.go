package discord

import (
	"context"
	"errors"
	"testing"

	"team_polls/configs"
	"team_polls/internal/db/models"
	"team_polls/internal/polls"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSession struct {
	channelIDs []string
	embeds     []*discordgo.MessageEmbed
	err        error
}

func (s *fakeSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	s.channelIDs = append(s.channelIDs, channelID)
	s.embeds = append(s.embeds, embed)
	return &discordgo.Message{}, s.err
}

func TestNotifier_PollOpened(t *testing.T) {
	session := &fakeSession{}
	notifier := NewNotifier(session, configs.Discord{ChannelID: "announcements"}, zap.NewNop().Sugar())

	poll := &models.Poll{
		ID:         "p1",
		Question:   "Lunch?",
		BallotKind: models.BallotKindMultiple,
		Options:    []*models.Option{{Text: "Pizza"}, {Text: "Sushi"}},
	}

	require.NoError(t, notifier.PollOpened(context.Background(), poll))
	require.Len(t, session.embeds, 1)
	assert.Equal(t, "announcements", session.channelIDs[0])
	assert.Equal(t, "Lunch?", session.embeds[0].Title)
	assert.Equal(t, "• Pizza\n• Sushi", session.embeds[0].Description)
	assert.Contains(t, session.embeds[0].Footer.Text, "Multiple")
}

func TestNotifier_PollClosed(t *testing.T) {
	session := &fakeSession{}
	notifier := NewNotifier(session, configs.Discord{ChannelID: "announcements"}, zap.NewNop().Sugar())

	results := &polls.Results{
		TotalVotes: 4,
		Options: []polls.OptionResult{
			{Text: "Pizza", Count: 3, Percentage: 75},
			{Text: "Sushi", Count: 1, Percentage: 25},
		},
		Leaders: []polls.OptionResult{{Text: "Pizza", Count: 3, Percentage: 75}},
	}

	require.NoError(t, notifier.PollClosed(context.Background(), &models.Poll{ID: "p1", Question: "Lunch?"}, results))
	embed := session.embeds[0]
	assert.Equal(t, "Results: Lunch?", embed.Title)
	assert.Equal(t, "Total votes: 4\nLeading: Pizza", embed.Description)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "3 (75.0%)", embed.Fields[0].Value)
}

func TestNotifier_SendError(t *testing.T) {
	session := &fakeSession{err: errors.New("missing access")}
	notifier := NewNotifier(session, configs.Discord{ChannelID: "announcements"}, zap.NewNop().Sugar())

	err := notifier.PollOpened(context.Background(), &models.Poll{ID: "p1"})
	assert.ErrorContains(t, err, "missing access")
}
