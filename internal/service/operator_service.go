package service

import (
	"context"
	"fmt"

	"centros-turnos-api/internal/models"
	"centros-turnos-api/internal/repository"
)

// OperatorService manages which centers an operator may manage blocks for.
type OperatorService struct {
	repos *repository.Repositories
}

func NewOperatorService(repos *repository.Repositories) *OperatorService {
	return &OperatorService{repos: repos}
}

func (s *OperatorService) operatorAndCenter(ctx context.Context, userID, centerID uint) (*models.User, *models.Center, error) {
	user, err := s.repos.Users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, nil, lift(err, "user")
	}
	if user.Role != models.RoleOperator {
		return nil, nil, fieldError("user_id", "only operators can be assigned to centers")
	}
	center, err := s.repos.Centers.GetCenterByID(ctx, centerID)
	if err != nil {
		return nil, nil, lift(err, "center")
	}
	return user, center, nil
}

// Assign grants an operator access to a center. Assigning twice is a no-op.
func (s *OperatorService) Assign(ctx context.Context, userID, centerID, adminID uint) error {
	user, center, err := s.operatorAndCenter(ctx, userID, centerID)
	if err != nil {
		return err
	}
	if err := s.repos.UserCenters.AssignUserToCenter(ctx, userID, centerID); err != nil {
		return fmt.Errorf("failed to assign operator: %w", err)
	}

	_ = s.repos.Audit.CreateAuditLog(ctx, &adminID, "operator_assign",
		fmt.Sprintf("Assigned %s to center %s (ID: %d)", user.Username, center.Nombre, center.ID))
	return nil
}

// Remove revokes an operator's access to a center.
func (s *OperatorService) Remove(ctx context.Context, userID, centerID, adminID uint) error {
	user, center, err := s.operatorAndCenter(ctx, userID, centerID)
	if err != nil {
		return err
	}
	if err := s.repos.UserCenters.RemoveUserFromCenter(ctx, userID, centerID); err != nil {
		return fmt.Errorf("failed to remove operator: %w", err)
	}

	_ = s.repos.Audit.CreateAuditLog(ctx, &adminID, "operator_remove",
		fmt.Sprintf("Removed %s from center %s (ID: %d)", user.Username, center.Nombre, center.ID))
	return nil
}

// Centers lists the ids of the centers assigned to an operator.
func (s *OperatorService) Centers(ctx context.Context, userID uint) ([]uint, error) {
	if _, err := s.repos.Users.FindUserByID(ctx, userID); err != nil {
		return nil, lift(err, "user")
	}
	ids, err := s.repos.UserCenters.GetUserCenters(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list operator centers: %w", err)
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}
