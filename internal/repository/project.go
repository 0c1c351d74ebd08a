package repository

import (
	"context"

	"project-manager/internal/domain"
)

// ProjectRepository manages projects and their membership rows.
// Project values it returns never have Users populated; use ListMembers.
type ProjectRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, project *domain.Project) (int64, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	Search(ctx context.Context, q domain.ListQuery) ([]domain.Project, int, error)

	ListMembers(ctx context.Context, projectID int64) ([]domain.User, error)
	ListByMember(ctx context.Context, userID int64) ([]domain.Project, error)
	AddMember(ctx context.Context, projectID, userID int64) error
	RemoveMember(ctx context.Context, projectID, userID int64) error
}
