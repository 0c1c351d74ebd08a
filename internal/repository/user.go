package repository

import (
	"context"

	"project-manager/internal/domain"
)

// UserRepository defines persistence operations for User entities.
// Lookups of a missing row return an error wrapping domain.ErrNotFound.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Search returns one window of users matching q and the total number of matches.
	Search(ctx context.Context, q domain.ListQuery) ([]domain.User, int, error)
}
