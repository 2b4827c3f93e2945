package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"team_polls/internal/db/models"

	"github.com/go-pg/pg/v10"
)

type pollRepository struct {
	repository
}

// CreationLimit caps how many polls one creator makes in a team since Since. Max <= 0 disables it.
type CreationLimit struct {
	Max   int
	Since time.Time
}

type PollRepository interface {
	Create(ctx context.Context, request *models.Poll, limit CreationLimit) (*models.Poll, error)
	UpdateDraft(ctx context.Context, request *models.Poll) (*models.Poll, error)
	UpdateStatus(ctx context.Context, pollID string, from, to models.PollStatus, at time.Time) error
	GetOne(ctx context.Context, pollID string) (*models.Poll, error)
	GetManyDue(ctx context.Context, status models.PollStatus, before time.Time, limit int) ([]*models.Poll, error)
	GetManyByTeam(ctx context.Context, teamID string, statuses []models.PollStatus, limit int) ([]*models.Poll, error)
}

func NewPollRepository(db *pg.DB) PollRepository {
	return &pollRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *pollRepository) Create(ctx context.Context, request *models.Poll, limit CreationLimit) (*models.Poll, error) {
	err := r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		if err := checkCreationLimit(ctx, tx, request, limit); err != nil {
			return err
		}

		if _, err := tx.ModelContext(ctx, request).Insert(); err != nil {
			return err
		}

		for _, option := range request.Options {
			option.PollID = request.ID
		}

		if _, err := tx.ModelContext(ctx, &request.Options).Insert(); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateOption
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetOne(ctx, request.ID)
}

// checkCreationLimit counts under a transaction-scoped advisory lock on (team, creator), so
// concurrent creations by the same person are serialized until commit.
func checkCreationLimit(ctx context.Context, tx *pg.Tx, request *models.Poll, limit CreationLimit) error {
	if limit.Max <= 0 {
		return nil
	}

	_, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext(?))", request.TeamID+"/"+request.CreatorID)
	if err != nil {
		return fmt.Errorf("failed to lock creator: %w", err)
	}

	count, err := tx.ModelContext(ctx, (*models.Poll)(nil)).
		Where("team_id = ?", request.TeamID).
		Where("creator_id = ?", request.CreatorID).
		Where("created_at >= ?", limit.Since).
		Count()
	if err != nil {
		return fmt.Errorf("failed to count created polls: %w", err)
	}

	if count >= limit.Max {
		return ErrCreationLimit
	}

	return nil
}

func (r *pollRepository) UpdateDraft(ctx context.Context, request *models.Poll) (*models.Poll, error) {
	err := r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		current := &models.Poll{}

		err := tx.ModelContext(ctx, current).
			Column("id", "status").
			Where("id = ?", request.ID).
			For("UPDATE").
			Select()
		if errors.Is(err, pg.ErrNoRows) {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		if current.Status != models.PollStatusDraft {
			return ErrStatusConflict
		}

		_, err = tx.ModelContext(ctx, request).
			Column("question", "ballot_kind", "scheduled_open_at", "scheduled_close_at").
			WherePK().
			Update()
		if err != nil {
			return err
		}

		_, err = tx.ModelContext(ctx, (*models.Option)(nil)).
			Where("poll_id = ?", request.ID).
			Delete()
		if err != nil {
			return err
		}

		for _, option := range request.Options {
			option.PollID = request.ID
		}

		if _, err = tx.ModelContext(ctx, &request.Options).Insert(); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateOption
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetOne(ctx, request.ID)
}

// UpdateStatus moves a poll from one status to another only if it is still in "from".
func (r *pollRepository) UpdateStatus(ctx context.Context, pollID string, from, to models.PollStatus, at time.Time) error {
	query := r.db.ModelContext(ctx, (*models.Poll)(nil)).
		Set("status = ?", to).
		Where("id = ?", pollID).
		Where("status = ?", from)

	switch to {
	case models.PollStatusOpen:
		query = query.Set("opened_at = ?", at)
	case models.PollStatusClosed:
		query = query.Set("closed_at = ?", at)
	}

	result, err := query.Update()
	if err != nil {
		return fmt.Errorf("failed to update poll status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrStatusConflict
	}

	return nil
}

func (r *pollRepository) GetOne(ctx context.Context, pollID string) (*models.Poll, error) {
	poll := &models.Poll{}

	err := r.db.ModelContext(ctx, poll).
		Relation("Options", orderedOptions).
		Where("poll.id = ?", pollID).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, ErrNotFound
	}

	return poll, err
}

func (r *pollRepository) GetManyDue(ctx context.Context, status models.PollStatus, before time.Time, limit int) ([]*models.Poll, error) {
	polls := make([]*models.Poll, 0)

	query := r.db.ModelContext(ctx, &polls).
		Where("status = ?", status)

	switch status {
	case models.PollStatusScheduled:
		query = query.Where("scheduled_open_at <= ?", before).OrderExpr("scheduled_open_at ASC")
	case models.PollStatusOpen:
		query = query.Where("scheduled_close_at <= ?", before).OrderExpr("scheduled_close_at ASC")
	default:
		return nil, fmt.Errorf("polls in status %s are never due", status)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Select()

	return polls, err
}

// GetManyByTeam returns the newest polls of a team, optionally only in the given statuses.
func (r *pollRepository) GetManyByTeam(ctx context.Context, teamID string, statuses []models.PollStatus, limit int) ([]*models.Poll, error) {
	polls := make([]*models.Poll, 0)

	query := r.db.ModelContext(ctx, &polls).
		Relation("Options", orderedOptions).
		Where("poll.team_id = ?", teamID).
		OrderExpr("poll.created_at DESC")

	if len(statuses) > 0 {
		query = query.Where("poll.status IN (?)", pg.In(statuses))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Select()

	return polls, err
}
