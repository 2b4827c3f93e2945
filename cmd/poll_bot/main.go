package main

import (
	"context"
	"os/signal"
	"syscall"

	"team_polls/configs"
	"team_polls/internal/authz"
	"team_polls/internal/db"
	"team_polls/internal/db/repositories"
	"team_polls/internal/di"
	"team_polls/internal/metrics"
	"team_polls/internal/polls"
	tgbot "team_polls/internal/tg_bot"
	"team_polls/internal/tg_bot/commands"
	"team_polls/internal/tg_bot/handlers"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	config, err := configs.LoadPollBotConfig()
	logger := di.NewLogger(config.Logger)

	if err != nil {
		logger.Fatalw("failed to load config", "error", err)
	}
	logger.Info("config loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting db")
	database, err := db.StartDB(ctx, config.DB, logger)
	if err != nil {
		logger.Fatalw("failed to start db", "error", err)
	}
	defer database.Close()
	logger.Info("db started")

	go func() {
		logger.Info("setting up health check server")
		di.ServeHealthCheck(ctx, config.HealthCheck, "poll-bot", database, logger)
	}()

	pollRepository := repositories.NewPollRepository(database)
	voteRepository := repositories.NewVoteRepository(database)
	userRoleRepository := repositories.NewUserRoleRepository(database)

	metricService := metrics.NewMetricService(prometheus.DefaultRegisterer)
	machine := polls.NewStateMachine(pollRepository, metricService, logger)
	policy := authz.NewRolePolicy(userRoleRepository, config.App, logger)
	service := polls.NewService(config.Polls, pollRepository, voteRepository, machine, policy, metricService, logger)

	// Chat replies cover the chat itself, so manual transitions only go to the outbound channels.
	notifiers, closeNotifiers, err := di.NewOutboundNotifiers(config.Discord, config.Webhook, logger)
	if err != nil {
		logger.Fatalw("failed to set up notifiers", "error", err)
	}
	defer closeNotifiers()
	if len(notifiers) > 0 {
		machine.Subscribe(polls.NewAnnouncer(polls.NewTallyAggregator(voteRepository), logger, notifiers...))
	}

	logger.Info("starting bot")
	api, err := tgbot.NewBotAPI(config.Bot)
	if err != nil {
		logger.Fatalw("failed to create bot", "error", err)
	}

	handler := handlers.NewCommandHandler(
		logger,
		commands.NewStartCommand(),
		commands.NewCreatePollCommand(service, logger),
		commands.NewSchedulePollCommand(service, logger),
		commands.NewEditDraftCommand(service, logger),
		commands.NewPollActionsCommand(service, logger),
		commands.NewResultsCommand(service, logger),
		commands.NewListPollsCommand(service, logger),
		commands.NewRoleCommand(policy, logger),
		commands.NewVoteCommand(service, logger),
	)

	tgbot.NewBot(api, config.Bot, handler, logger).Start(ctx)
	logger.Info("shutting down")
}
