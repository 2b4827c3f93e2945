package configs

// Discord mirrors poll announcements into a single channel. Empty token disables it.
type Discord struct {
	Token     string `env:"DISCORD_POLL_BOT_TOKEN"`
	ChannelID string `env:"DISCORD_ANNOUNCEMENTS_CHANNEL_ID"`
}

func (c Discord) Enabled() bool {
	return c.Token != "" && c.ChannelID != ""
}
