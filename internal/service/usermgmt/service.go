// Package usermgmt is the privileged user administration used by the
// dashboard's users page.
package usermgmt

import (
	"context"
	"errors"
	"fmt"

	"animateme/internal/domain"
	"animateme/internal/logging"
	userrepo "animateme/internal/repository/user"
	"animateme/internal/service/auth"
	"go.uber.org/zap"
)

var (
	ErrForbidden     = errors.New("only admins can manage users")
	ErrSelfDelete    = errors.New("you cannot delete your own account")
	ErrSelfDemote    = errors.New("you cannot change your own role")
	ErrInvalidRole   = errors.New("role must be admin, editor or user")
	ErrUnknownAction = errors.New("unknown action")
	ErrUserRequired  = errors.New("user id required")
)

// Actions accepted by Dispatch.
const (
	ActionList           = "listUsers"
	ActionUpdateRole     = "updateUserRole"
	ActionUpdatePassword = "updateUserPassword"
	ActionDelete         = "deleteUser"
)

type Service struct {
	users  userrepo.Repository
	logger *zap.Logger
}

func New(users userrepo.Repository, logger *zap.Logger) *Service {
	return &Service{users: users, logger: logging.OrNop(logger)}
}

func (s *Service) List(ctx context.Context, caller *domain.User) ([]domain.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

func (s *Service) UpdateRole(ctx context.Context, caller *domain.User, id, role string) (*domain.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrUserRequired
	}
	if !domain.IsRole(role) {
		return nil, ErrInvalidRole
	}
	if id == caller.ID && role != domain.RoleAdmin {
		return nil, ErrSelfDemote
	}
	u, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user role changed", zap.String("by", caller.ID), zap.String("user_id", id), zap.String("role", role))
	return u, nil
}

func (s *Service) UpdatePassword(ctx context.Context, caller *domain.User, id, password string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if id == "" {
		return ErrUserRequired
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}
	s.logger.Info("user password reset by admin", zap.String("by", caller.ID), zap.String("user_id", id))
	return nil
}

func (s *Service) Delete(ctx context.Context, caller *domain.User, id string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if id == "" {
		return ErrUserRequired
	}
	if id == caller.ID {
		return ErrSelfDelete
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.String("by", caller.ID), zap.String("user_id", id))
	return nil
}

// Request is the action envelope the dashboard posts.
type Request struct {
	Action   string `json:"action"`
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// Dispatch runs one action and returns its JSON-ready result.
func (s *Service) Dispatch(ctx context.Context, caller *domain.User, req Request) (interface{}, error) {
	switch req.Action {
	case ActionList:
		users, err := s.List(ctx, caller)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"users": users}, nil
	case ActionUpdateRole:
		u, err := s.UpdateRole(ctx, caller, req.UserID, req.Role)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"user": u}, nil
	case ActionUpdatePassword:
		if err := s.UpdatePassword(ctx, caller, req.UserID, req.Password); err != nil {
			return nil, err
		}
		return map[string]interface{}{"message": "Password updated successfully"}, nil
	case ActionDelete:
		if err := s.Delete(ctx, caller, req.UserID); err != nil {
			return nil, err
		}
		return map[string]interface{}{"message": "User deleted successfully"}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
}

func requireAdmin(caller *domain.User) error {
	if caller == nil || caller.Role != domain.RoleAdmin {
		return ErrForbidden
	}
	return nil
}
