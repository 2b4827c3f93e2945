package scheduler

import (
	"context"
	"errors"
	"time"

	"team_polls/configs"
	"team_polls/internal/db/models"
	"team_polls/internal/db/repositories"
	"team_polls/internal/metrics"
	"team_polls/internal/polls"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

type TickReport struct {
	Opened int
	Closed int
	Failed int
}

// Scheduler opens and closes polls when their scheduled time arrives.
type Scheduler struct {
	config  configs.Scheduler
	polls   repositories.PollRepository
	machine *polls.StateMachine
	metrics *metrics.MetricService
	logger  *zap.SugaredLogger
	cron    *gocron.Scheduler
	now     func() time.Time
}

func New(
	config configs.Scheduler,
	pollRepository repositories.PollRepository,
	machine *polls.StateMachine,
	metrics *metrics.MetricService,
	logger *zap.SugaredLogger,
) *Scheduler {
	return &Scheduler{
		config:  config,
		polls:   pollRepository,
		machine: machine,
		metrics: metrics,
		logger:  logger,
		cron:    gocron.NewScheduler(time.UTC),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Start runs Tick every interval. A tick still running when the next one is due is
// not overlapped.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.Every(s.config.Interval).SingletonMode().Do(func() {
		s.Tick(ctx, s.now())
	})
	if err != nil {
		return err
	}

	s.cron.StartAsync()
	s.logger.Infow("scheduler started", "interval", s.config.Interval)

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("scheduler stopped")
}

// Tick applies every transition due at now. Opening runs first so a poll whose whole
// window passed while the scheduler was down is opened and closed in the same tick.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) TickReport {
	start := time.Now()
	report := TickReport{}

	report.Opened, report.Failed = s.advance(ctx, models.PollStatusScheduled, models.PollStatusOpen, now)

	closed, failed := s.advance(ctx, models.PollStatusOpen, models.PollStatusClosed, now)
	report.Closed = closed
	report.Failed += failed

	s.metrics.SchedulerTicks.Inc()
	s.metrics.SchedulerTickSeconds.Observe(time.Since(start).Seconds())

	if report.Opened > 0 || report.Closed > 0 || report.Failed > 0 {
		s.logger.Infow("scheduler tick finished", "opened", report.Opened, "closed", report.Closed, "failed", report.Failed)
	}

	return report
}

func (s *Scheduler) advance(ctx context.Context, from, to models.PollStatus, now time.Time) (applied, failed int) {
	due, err := s.polls.GetManyDue(ctx, from, now, s.config.BatchSize)
	if err != nil {
		s.logger.Errorw("failed to get due polls", "error", err, "status", from)
		s.metrics.TransitionErrors.WithLabelValues(to.String()).Inc()
		return 0, 1
	}

	for _, poll := range due {
		_, err := s.machine.Transition(ctx, poll.ID, to, polls.TriggerTime, now)
		switch {
		case err == nil:
			applied++
		case errors.Is(err, polls.ErrInvalidTransition), errors.Is(err, polls.ErrNotFound):
			s.logger.Infow("poll skipped", "poll_id", poll.ID, "to", to, "reason", err)
		default:
			s.logger.Errorw("failed to transition poll", "error", err, "poll_id", poll.ID, "to", to)
			s.metrics.TransitionErrors.WithLabelValues(to.String()).Inc()
			failed++
		}
	}

	return applied, failed
}
