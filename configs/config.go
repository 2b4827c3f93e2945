package configs

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

type PollBotConfig struct {
	App         App
	Bot         Bot
	DB          DB
	Logger      Logger
	Polls       Polls
	Discord     Discord
	Webhook     Webhook
	HealthCheck HealthCheck
}

type PollSchedulerServiceConfig struct {
	App         App
	Bot         Bot
	DB          DB
	Logger      Logger
	Polls       Polls
	Scheduler   Scheduler
	Discord     Discord
	Webhook     Webhook
	HealthCheck HealthCheck
}

func LoadPollBotConfig() (PollBotConfig, error) {
	var config PollBotConfig

	if err := env.Parse(&config); err != nil {
		return PollBotConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

func LoadPollSchedulerServiceConfig() (PollSchedulerServiceConfig, error) {
	var config PollSchedulerServiceConfig

	if err := env.Parse(&config); err != nil {
		return PollSchedulerServiceConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}
