package polls

import (
	"context"
	"errors"
	"fmt"
	"time"

	"team_polls/internal/db/models"
	"team_polls/internal/db/repositories"
	"team_polls/internal/metrics"

	"go.uber.org/zap"
)

type OptionCount struct {
	OptionID string
	Text     string
	Count    int
}

// Ledger records ballots. It only ever sees voter tokens, never identities.
type Ledger struct {
	votes   repositories.VoteRepository
	metrics *metrics.MetricService
	logger  *zap.SugaredLogger
}

func NewLedger(votes repositories.VoteRepository, metrics *metrics.MetricService, logger *zap.SugaredLogger) *Ledger {
	return &Ledger{
		votes:   votes,
		metrics: metrics,
		logger:  logger,
	}
}

func (l *Ledger) SubmitVote(ctx context.Context, poll *models.Poll, voterToken, optionID string, at time.Time) ([]OptionCount, error) {
	options, err := l.votes.Submit(ctx, repositories.Vote{
		PollID:   poll.ID,
		OptionID: optionID,
		Marker:   MarkerKey(voterToken, poll.BallotKind, optionID),
		CastAt:   at,
	})
	if err != nil {
		err = translateLedgerError(err)
		l.metrics.VotesRejected.WithLabelValues(rejectionReason(err)).Inc()
		return nil, err
	}

	l.metrics.VotesAccepted.Inc()

	return toOptionCounts(options), nil
}

// WithdrawVote takes back one option of a multiple-choice ballot.
func (l *Ledger) WithdrawVote(ctx context.Context, poll *models.Poll, voterToken, optionID string) ([]OptionCount, error) {
	if poll.BallotKind != models.BallotKindMultiple {
		return nil, newValidationError("votes can only be withdrawn on multiple-choice polls")
	}

	options, err := l.votes.Withdraw(ctx, repositories.Vote{
		PollID:   poll.ID,
		OptionID: optionID,
		Marker:   MarkerKey(voterToken, poll.BallotKind, optionID),
	})
	if err != nil {
		return nil, translateLedgerError(err)
	}

	l.metrics.VotesWithdrawn.Inc()

	return toOptionCounts(options), nil
}

func translateLedgerError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrMarkerExists):
		return ErrAlreadyVoted
	case errors.Is(err, repositories.ErrMarkerMissing):
		return ErrNotVoted
	case errors.Is(err, repositories.ErrPollNotOpen):
		return ErrPollNotOpen
	case errors.Is(err, repositories.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repositories.ErrOptionNotFound):
		return fmt.Errorf("%w: option", ErrNotFound)
	}
	return fmt.Errorf("failed to record vote: %w", err)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyVoted):
		return "already_voted"
	case errors.Is(err, ErrPollNotOpen):
		return "poll_not_open"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	}
	return "storage"
}

func toOptionCounts(options []*models.Option) []OptionCount {
	counts := make([]OptionCount, 0, len(options))
	for _, option := range options {
		counts = append(counts, OptionCount{
			OptionID: option.ID,
			Text:     option.Text,
			Count:    option.VoteCount,
		})
	}
	return counts
}
