package polls

import (
	"context"

	"team_polls/internal/db/models"

	"go.uber.org/zap"
)

// Notifier delivers lifecycle announcements to some outside channel.
type Notifier interface {
	PollOpened(ctx context.Context, poll *models.Poll) error
	PollClosed(ctx context.Context, poll *models.Poll, results *Results) error
}

// Announcer is a state machine observer that fans announcements out to notifiers.
// A failing notifier never blocks the others.
type Announcer struct {
	tally     *TallyAggregator
	notifiers []Notifier
	logger    *zap.SugaredLogger
}

func NewAnnouncer(tally *TallyAggregator, logger *zap.SugaredLogger, notifiers ...Notifier) *Announcer {
	return &Announcer{
		tally:     tally,
		notifiers: notifiers,
		logger:    logger,
	}
}

func (a *Announcer) OnTransition(ctx context.Context, transition Transition) error {
	switch transition.To {
	case models.PollStatusOpen:
		for _, notifier := range a.notifiers {
			if err := notifier.PollOpened(ctx, transition.Poll); err != nil {
				a.logger.Errorw("failed to announce opened poll", "error", err, "poll_id", transition.Poll.ID)
			}
		}

	case models.PollStatusClosed:
		results, err := a.tally.GetResults(ctx, transition.Poll.ID)
		if err != nil {
			return err
		}

		for _, notifier := range a.notifiers {
			if err := notifier.PollClosed(ctx, transition.Poll, results); err != nil {
				a.logger.Errorw("failed to announce closed poll", "error", err, "poll_id", transition.Poll.ID)
			}
		}
	}

	return nil
}
