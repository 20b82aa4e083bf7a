package user

import (
	"context"

	domain "user-service/internal/domain/user"
)

// Usecase defines the interface for user business logic operations.
type Usecase interface {
	Create(ctx context.Context, in domain.CreateInput) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindOne(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, patch domain.Patch) (*domain.User, error)
	Remove(ctx context.Context, id int64) (*domain.User, error)
}
