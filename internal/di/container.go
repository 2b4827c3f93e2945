package di

import (
	"context"
	"time"

	"team_polls/configs"
	"team_polls/internal/discord"
	"team_polls/internal/polls"
	"team_polls/internal/services"

	zaploki "github.com/paul-milne/zap-loki"
	"go.uber.org/zap"
)

func NewLogger(config configs.Logger) *zap.SugaredLogger {
	if config.URL == "" {
		return zap.Must(zap.NewProduction()).Sugar()
	}

	ctx := context.Background()
	lokiConfig := zaploki.Config{
		Url:          config.URL,
		BatchMaxSize: 1000,
		BatchMaxWait: 10 * time.Second,
		Labels:       map[string]string{"app": config.AppName},
	}
	return zap.Must(zaploki.New(ctx, lokiConfig).WithCreateLogger(zap.NewProductionConfig())).Sugar()
}

// NewOutboundNotifiers builds the optional Discord and webhook notifiers. The returned
// func closes whatever was opened.
func NewOutboundNotifiers(discordConfig configs.Discord, webhookConfig configs.Webhook, logger *zap.SugaredLogger) ([]polls.Notifier, func(), error) {
	var notifiers []polls.Notifier
	closer := func() {}

	if discordConfig.Enabled() {
		session, err := discord.NewSession(discordConfig)
		if err != nil {
			return nil, closer, err
		}
		closer = func() { _ = session.Close() }

		notifiers = append(notifiers, discord.NewNotifier(session, discordConfig, logger))
		logger.Info("discord announcements enabled")
	}

	if webhookConfig.Enabled() {
		notifiers = append(notifiers, services.NewResultsWebhook(webhookConfig, logger))
		logger.Info("results webhook enabled")
	}

	return notifiers, closer, nil
}
