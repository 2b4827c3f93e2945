package authz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"team_polls/configs"
	"team_polls/internal/db/models"
	"team_polls/internal/db/repositories"
	"team_polls/internal/polls"

	"go.uber.org/zap"
)

// RolePolicy authorizes poll operations by the requester's role in the team.
// Users without a stored role are regular users; configured initial admins are
// always admins.
type RolePolicy struct {
	roles  repositories.UserRoleRepository
	config configs.App
	logger *zap.SugaredLogger
}

func NewRolePolicy(roles repositories.UserRoleRepository, config configs.App, logger *zap.SugaredLogger) *RolePolicy {
	return &RolePolicy{
		roles:  roles,
		config: config,
		logger: logger,
	}
}

func (p *RolePolicy) RoleOf(ctx context.Context, teamID, userID string) (models.UserRoleName, error) {
	if p.config.IsInitialAdmin(userID) {
		return models.UserRoleAdmin, nil
	}

	role, err := p.roles.GetOne(ctx, teamID, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.UserRoleUser, nil
	} else if err != nil {
		return "", fmt.Errorf("failed to get user role: %w", err)
	}

	return role.Role, nil
}

func (p *RolePolicy) CanCreate(ctx context.Context, teamID, userID string) error {
	role, err := p.RoleOf(ctx, teamID, userID)
	if err != nil {
		return err
	}

	if role == models.UserRoleViewer {
		return fmt.Errorf("%w: viewers cannot create polls", polls.ErrForbidden)
	}

	return nil
}

func (p *RolePolicy) CanManage(ctx context.Context, poll *models.Poll, userID string) error {
	role, err := p.RoleOf(ctx, poll.TeamID, userID)
	if err != nil {
		return err
	}

	switch {
	case role == models.UserRoleAdmin:
		return nil
	case role == models.UserRoleUser && poll.CreatorID == userID:
		return nil
	}

	return fmt.Errorf("%w: only the creator or an admin can manage this poll", polls.ErrForbidden)
}

func (p *RolePolicy) CanAdminister(ctx context.Context, teamID, userID string) error {
	role, err := p.RoleOf(ctx, teamID, userID)
	if err != nil {
		return err
	}

	if role != models.UserRoleAdmin {
		return fmt.Errorf("%w: admin role required", polls.ErrForbidden)
	}

	return nil
}

func (p *RolePolicy) SetRole(ctx context.Context, teamID, assignerID, userID string, role models.UserRoleName) (*models.UserRole, error) {
	if !role.IsValid() {
		return nil, &polls.ValidationError{Problems: []string{fmt.Sprintf("unknown role %q", role)}}
	}

	if err := p.CanAdminister(ctx, teamID, assignerID); err != nil {
		return nil, err
	}

	assigned, err := p.roles.Upsert(ctx, &models.UserRole{
		TeamID:     teamID,
		UserID:     userID,
		Role:       role,
		AssignedBy: assignerID,
		AssignedAt: time.Now().UTC(),
	})
	if err != nil {
		p.logger.Errorw("failed to assign role", "error", err, "team_id", teamID, "user_id", userID)
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}

	p.logger.Infow("role assigned", "team_id", teamID, "user_id", userID, "role", role, "assigned_by", assignerID)

	return assigned, nil
}
