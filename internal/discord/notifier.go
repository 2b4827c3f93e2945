package discord

import (
	"context"
	"fmt"
	"strings"

	"team_polls/configs"
	"team_polls/internal/db/models"
	"team_polls/internal/polls"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const (
	colorOpened = 0x2ecc71
	colorClosed = 0x95a5a6
)

// MessageSender is the part of *discordgo.Session the notifier needs.
type MessageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type notifier struct {
	session   MessageSender
	channelID string
	logger    *zap.SugaredLogger
}

// NewNotifier mirrors poll announcements into one Discord channel.
func NewNotifier(session MessageSender, config configs.Discord, logger *zap.SugaredLogger) polls.Notifier {
	return &notifier{
		session:   session,
		channelID: config.ChannelID,
		logger:    logger,
	}
}

// NewSession opens a bot session for sending announcements.
func NewSession(config configs.Discord) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages

	if err = session.Open(); err != nil {
		return nil, fmt.Errorf("failed to open discord session: %w", err)
	}

	return session, nil
}

func (n *notifier) PollOpened(_ context.Context, poll *models.Poll) error {
	options := make([]string, 0, len(poll.Options))
	for _, option := range poll.Options {
		options = append(options, "• "+option.Text)
	}

	embed := &discordgo.MessageEmbed{
		Title:       poll.Question,
		Description: strings.Join(options, "\n"),
		Color:       colorOpened,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s choice poll is open, vote in the team chat", poll.BallotKind.CapitalizedString()),
		},
	}

	return n.send(embed, poll.ID)
}

func (n *notifier) PollClosed(_ context.Context, poll *models.Poll, results *polls.Results) error {
	fields := make([]*discordgo.MessageEmbedField, 0, len(results.Options))
	for _, option := range results.Options {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   option.Text,
			Value:  fmt.Sprintf("%d (%.1f%%)", option.Count, option.Percentage),
			Inline: true,
		})
	}

	description := fmt.Sprintf("Total votes: %d", results.TotalVotes)
	if len(results.Leaders) > 0 {
		leaders := make([]string, 0, len(results.Leaders))
		for _, leader := range results.Leaders {
			leaders = append(leaders, leader.Text)
		}
		description += "\nLeading: " + strings.Join(leaders, ", ")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Results: " + poll.Question,
		Description: description,
		Color:       colorClosed,
		Fields:      fields,
	}

	return n.send(embed, poll.ID)
}

func (n *notifier) send(embed *discordgo.MessageEmbed, pollID string) error {
	if _, err := n.session.ChannelMessageSendEmbed(n.channelID, embed); err != nil {
		return fmt.Errorf("failed to send discord message: %w", err)
	}

	n.logger.Infow("discord announcement sent", "poll_id", pollID, "channel_id", n.channelID)
	return nil
}
