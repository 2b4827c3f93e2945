package repositories

import (
	"context"
	"errors"

	"team_polls/internal/db/models"

	"github.com/go-pg/pg/v10"
)

const uniqueViolation = "23505"

type repository struct {
	db *pg.DB
}

func isUniqueViolation(err error) bool {
	var pgErr pg.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation
}

func orderedOptions(q *pg.Query) (*pg.Query, error) {
	return q.Order("position ASC"), nil
}

func selectOptions(ctx context.Context, tx *pg.Tx, pollID string) ([]*models.Option, error) {
	options := make([]*models.Option, 0)

	err := tx.ModelContext(ctx, &options).
		Where("poll_id = ?", pollID).
		Order("position ASC").
		Select()

	return options, err
}
