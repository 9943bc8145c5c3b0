package user

import (
	"context"

	"animateme/internal/domain"
)

// Repository persists and fetches dashboard accounts.
type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	TouchSignIn(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	CountAdmins(ctx context.Context) (int, error)
}
