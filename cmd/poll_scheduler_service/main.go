package main

import (
	"context"
	"os/signal"
	"syscall"

	"team_polls/configs"
	"team_polls/internal/db"
	"team_polls/internal/db/repositories"
	"team_polls/internal/di"
	"team_polls/internal/metrics"
	"team_polls/internal/polls"
	"team_polls/internal/scheduler"
	tgbot "team_polls/internal/tg_bot"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	config, err := configs.LoadPollSchedulerServiceConfig()
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
		di.ServeHealthCheck(ctx, config.HealthCheck, "poll-scheduler-service", database, logger)
	}()

	pollRepository := repositories.NewPollRepository(database)
	voteRepository := repositories.NewVoteRepository(database)

	metricService := metrics.NewMetricService(prometheus.DefaultRegisterer)
	machine := polls.NewStateMachine(pollRepository, metricService, logger)

	api, err := tgbot.NewBotAPI(config.Bot)
	if err != nil {
		logger.Fatalw("failed to create bot", "error", err)
	}

	notifiers, closeNotifiers, err := di.NewOutboundNotifiers(config.Discord, config.Webhook, logger)
	if err != nil {
		logger.Fatalw("failed to set up notifiers", "error", err)
	}
	defer closeNotifiers()

	notifiers = append(notifiers, tgbot.NewNotifier(api, logger))
	machine.Subscribe(polls.NewAnnouncer(polls.NewTallyAggregator(voteRepository), logger, notifiers...))

	s := scheduler.New(config.Scheduler, pollRepository, machine, metricService, logger)
	if err = s.Start(ctx); err != nil {
		logger.Fatalw("failed to start scheduler", "error", err)
	}

	<-ctx.Done()

	s.Stop()
	logger.Info("shutting down")
}
