package polls

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"team_polls/internal/db/models"
	"team_polls/internal/db/repositories"
	"team_polls/internal/metrics"

	"go.uber.org/zap"
)

type Trigger string

const (
	TriggerManual Trigger = "manual"
	TriggerTime   Trigger = "time"
)

// Transition describes an applied lifecycle change. Poll reflects the state after it.
type Transition struct {
	Poll    *models.Poll
	From    models.PollStatus
	To      models.PollStatus
	Trigger Trigger
	At      time.Time
}

type Observer interface {
	OnTransition(ctx context.Context, transition Transition) error
}

type ObserverFunc func(ctx context.Context, transition Transition) error

func (f ObserverFunc) OnTransition(ctx context.Context, transition Transition) error {
	return f(ctx, transition)
}

type StateMachine struct {
	polls   repositories.PollRepository
	metrics *metrics.MetricService
	logger  *zap.SugaredLogger

	mu        sync.RWMutex
	observers []Observer
}

func NewStateMachine(polls repositories.PollRepository, metrics *metrics.MetricService, logger *zap.SugaredLogger) *StateMachine {
	return &StateMachine{
		polls:   polls,
		metrics: metrics,
		logger:  logger,
	}
}

func (m *StateMachine) Subscribe(observer Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.observers = append(m.observers, observer)
}

// CanTransition applies the lifecycle guards without touching storage.
func CanTransition(poll *models.Poll, to models.PollStatus, trigger Trigger, now time.Time) error {
	switch {
	case poll.Status == models.PollStatusDraft && to == models.PollStatusScheduled:
		if poll.ScheduledOpenAt == nil || poll.ScheduledCloseAt == nil {
			return fmt.Errorf("%w: draft has no schedule", ErrInvalidTransition)
		}
		if !poll.ScheduledOpenAt.After(now) {
			return fmt.Errorf("%w: scheduled open time has passed", ErrInvalidTransition)
		}
		if poll.ScheduledCloseAt.Before(*poll.ScheduledOpenAt) {
			return fmt.Errorf("%w: close time is before open time", ErrInvalidTransition)
		}
		return nil

	case (poll.Status == models.PollStatusDraft || poll.Status == models.PollStatusScheduled) && to == models.PollStatusOpen:
		if trigger == TriggerManual {
			return nil
		}
		if poll.ScheduledOpenAt == nil || now.Before(*poll.ScheduledOpenAt) {
			return fmt.Errorf("%w: poll is not due to open", ErrInvalidTransition)
		}
		return nil

	case poll.Status == models.PollStatusOpen && to == models.PollStatusClosed:
		if trigger == TriggerManual {
			return nil
		}
		if poll.ScheduledCloseAt == nil || now.Before(*poll.ScheduledCloseAt) {
			return fmt.Errorf("%w: poll is not due to close", ErrInvalidTransition)
		}
		return nil
	}

	return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, poll.Status, to)
}

// EnsureVotable reports whether the poll accepts votes right now.
func EnsureVotable(poll *models.Poll) error {
	if poll.Status != models.PollStatusOpen {
		return fmt.Errorf("%w: poll is %s", ErrPollNotOpen, poll.Status)
	}
	return nil
}

// Transition moves the poll to the target status with a compare-and-swap on its current
// status, so a scheduler tick and a user action can never both apply.
func (m *StateMachine) Transition(ctx context.Context, pollID string, to models.PollStatus, trigger Trigger, at time.Time) (*models.Poll, error) {
	poll, err := m.polls.GetOne(ctx, pollID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}

	if err = CanTransition(poll, to, trigger, at); err != nil {
		return nil, err
	}

	from := poll.Status

	err = m.polls.UpdateStatus(ctx, poll.ID, from, to, at)
	if errors.Is(err, repositories.ErrStatusConflict) {
		return nil, fmt.Errorf("%w: poll is no longer %s", ErrInvalidTransition, from)
	} else if err != nil {
		return nil, fmt.Errorf("failed to update poll status: %w", err)
	}

	poll.Status = to
	switch to {
	case models.PollStatusOpen:
		poll.OpenedAt = &at
	case models.PollStatusClosed:
		poll.ClosedAt = &at
	}

	m.metrics.PollTransitions.WithLabelValues(from.String(), to.String(), string(trigger)).Inc()
	m.logger.Infow("poll transitioned", "poll_id", poll.ID, "from", from, "to", to, "trigger", trigger)

	m.notify(ctx, Transition{Poll: poll, From: from, To: to, Trigger: trigger, At: at})

	return poll, nil
}

func (m *StateMachine) notify(ctx context.Context, transition Transition) {
	m.mu.RLock()
	observers := make([]Observer, len(m.observers))
	copy(observers, m.observers)
	m.mu.RUnlock()

	for _, observer := range observers {
		if err := observer.OnTransition(ctx, transition); err != nil {
			m.logger.Errorw("failed to notify observer", "error", err, "poll_id", transition.Poll.ID, "to", transition.To)
		}
	}
}
