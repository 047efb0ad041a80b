package repository

import (
	"context"

	"sample-registry/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	List(ctx context.Context) ([]domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByRol(ctx context.Context, rol string) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
}
