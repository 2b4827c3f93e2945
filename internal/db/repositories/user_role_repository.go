package repositories

import (
	"context"
	"errors"

	"team_polls/internal/db/models"

	"github.com/go-pg/pg/v10"
)

type userRoleRepository struct {
	repository
}

type UserRoleRepository interface {
	Upsert(ctx context.Context, request *models.UserRole) (*models.UserRole, error)
	GetOne(ctx context.Context, teamID, userID string) (*models.UserRole, error)
	GetManyByTeam(ctx context.Context, teamID string) ([]*models.UserRole, error)
}

func NewUserRoleRepository(db *pg.DB) UserRoleRepository {
	return &userRoleRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *userRoleRepository) Upsert(ctx context.Context, request *models.UserRole) (*models.UserRole, error) {
	_, err := r.db.ModelContext(ctx, request).
		OnConflict("(team_id, user_id) DO UPDATE").
		Set("role = EXCLUDED.role").
		Set("assigned_by = EXCLUDED.assigned_by").
		Set("assigned_at = EXCLUDED.assigned_at").
		Returning("*").
		Insert()
	if err != nil {
		return nil, err
	}

	return request, nil
}

func (r *userRoleRepository) GetOne(ctx context.Context, teamID, userID string) (*models.UserRole, error) {
	role := &models.UserRole{}

	err := r.db.ModelContext(ctx, role).
		Where("team_id = ?", teamID).
		Where("user_id = ?", userID).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, ErrNotFound
	}

	return role, err
}

func (r *userRoleRepository) GetManyByTeam(ctx context.Context, teamID string) ([]*models.UserRole, error) {
	roles := make([]*models.UserRole, 0)

	err := r.db.ModelContext(ctx, &roles).
		Where("team_id = ?", teamID).
		OrderExpr("user_id ASC").
		Select()

	return roles, err
}
