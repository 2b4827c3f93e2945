package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"team_polls/internal/db/models"

	"github.com/go-pg/pg/v10"
	"github.com/google/uuid"
)

// Vote is a ledger write request. Marker is already scoped to the poll's ballot kind.
type Vote struct {
	PollID   string
	OptionID string
	Marker   string
	CastAt   time.Time
}

type voteRepository struct {
	repository
}

type VoteRepository interface {
	Submit(ctx context.Context, vote Vote) ([]*models.Option, error)
	Withdraw(ctx context.Context, vote Vote) ([]*models.Option, error)
	GetTally(ctx context.Context, pollID string) (*models.Poll, error)
	Recount(ctx context.Context, pollID string) ([]*models.Option, error)
}

func NewVoteRepository(db *pg.DB) VoteRepository {
	return &voteRepository{
		repository: repository{
			db: db,
		},
	}
}

// Submit inserts the voter marker and the ballot in one transaction and returns the
// poll's option counts as seen by that transaction.
func (r *voteRepository) Submit(ctx context.Context, vote Vote) ([]*models.Option, error) {
	var options []*models.Option

	err := r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		if err := lockOpenPoll(ctx, tx, vote); err != nil {
			return err
		}

		result, err := tx.ModelContext(ctx, &models.VoterMarker{PollID: vote.PollID, Marker: vote.Marker}).
			OnConflict("DO NOTHING").
			Insert()
		if err != nil {
			return fmt.Errorf("failed to insert voter marker: %w", err)
		}

		if result.RowsAffected() == 0 {
			return ErrMarkerExists
		}

		ballot := &models.Ballot{
			ID:       uuid.NewString(),
			PollID:   vote.PollID,
			OptionID: vote.OptionID,
			CastAt:   vote.CastAt,
		}
		if _, err = tx.ModelContext(ctx, ballot).Insert(); err != nil {
			return fmt.Errorf("failed to insert ballot: %w", err)
		}

		_, err = tx.ModelContext(ctx, (*models.Option)(nil)).
			Set("vote_count = vote_count + 1").
			Where("id = ?", vote.OptionID).
			Update()
		if err != nil {
			return fmt.Errorf("failed to increment vote count: %w", err)
		}

		options, err = selectOptions(ctx, tx, vote.PollID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return options, nil
}

// Withdraw removes the marker and one ballot of the option. Ballots carry no voter
// data, so any ballot of the option is as good as another.
func (r *voteRepository) Withdraw(ctx context.Context, vote Vote) ([]*models.Option, error) {
	var options []*models.Option

	err := r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		if err := lockOpenPoll(ctx, tx, vote); err != nil {
			return err
		}

		result, err := tx.ModelContext(ctx, &models.VoterMarker{PollID: vote.PollID, Marker: vote.Marker}).
			WherePK().
			Delete()
		if err != nil {
			return fmt.Errorf("failed to delete voter marker: %w", err)
		}

		if result.RowsAffected() == 0 {
			return ErrMarkerMissing
		}

		result, err = tx.ExecContext(ctx, `
			DELETE FROM ballots
			WHERE id IN (
				SELECT id FROM ballots
				WHERE poll_id = ? AND option_id = ?
				LIMIT 1
				FOR UPDATE SKIP LOCKED
			)
		`, vote.PollID, vote.OptionID)
		if err != nil {
			return fmt.Errorf("failed to delete ballot: %w", err)
		}

		if result.RowsAffected() == 0 {
			return fmt.Errorf("no ballot left for option %s of poll %s", vote.OptionID, vote.PollID)
		}

		_, err = tx.ModelContext(ctx, (*models.Option)(nil)).
			Set("vote_count = vote_count - 1").
			Where("id = ?", vote.OptionID).
			Where("vote_count > 0").
			Update()
		if err != nil {
			return fmt.Errorf("failed to decrement vote count: %w", err)
		}

		options, err = selectOptions(ctx, tx, vote.PollID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return options, nil
}

// GetTally reads the poll and its cached option counts from a single snapshot.
func (r *voteRepository) GetTally(ctx context.Context, pollID string) (*models.Poll, error) {
	poll := &models.Poll{}

	err := r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		if _, err := tx.ExecContext(ctx, "SET TRANSACTION ISOLATION LEVEL REPEATABLE READ, READ ONLY"); err != nil {
			return err
		}

		err := tx.ModelContext(ctx, poll).
			Relation("Options", orderedOptions).
			Where("poll.id = ?", pollID).
			Select()
		if errors.Is(err, pg.ErrNoRows) {
			return ErrNotFound
		}

		return err
	})
	if err != nil {
		return nil, err
	}

	return poll, nil
}

// Recount rebuilds cached counts from ballot rows.
func (r *voteRepository) Recount(ctx context.Context, pollID string) ([]*models.Option, error) {
	var options []*models.Option

	err := r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		exists, err := tx.ModelContext(ctx, (*models.Poll)(nil)).
			Where("id = ?", pollID).
			Exists()
		if err != nil {
			return err
		} else if !exists {
			return ErrNotFound
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE options
			SET vote_count = (SELECT count(*) FROM ballots WHERE ballots.option_id = options.id)
			WHERE poll_id = ?
		`, pollID)
		if err != nil {
			return fmt.Errorf("failed to recount votes: %w", err)
		}

		options, err = selectOptions(ctx, tx, pollID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return options, nil
}

// lockOpenPoll takes a shared lock on the poll row so a concurrent close waits for
// this vote to commit, and checks the vote's option belongs to the poll.
func lockOpenPoll(ctx context.Context, tx *pg.Tx, vote Vote) error {
	poll := &models.Poll{}

	err := tx.ModelContext(ctx, poll).
		Column("id", "status").
		Where("id = ?", vote.PollID).
		For("SHARE").
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return ErrNotFound
	} else if err != nil {
		return err
	}

	if poll.Status != models.PollStatusOpen {
		return ErrPollNotOpen
	}

	exists, err := tx.ModelContext(ctx, (*models.Option)(nil)).
		Where("id = ?", vote.OptionID).
		Where("poll_id = ?", vote.PollID).
		Exists()
	if err != nil {
		return err
	} else if !exists {
		return ErrOptionNotFound
	}

	return nil
}
