package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"project-manager/internal/domain"
	"project-manager/internal/repository"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), Options{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "manager.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupRepositories(t *testing.T) (*DB, repository.UserRepository, repository.ProjectRepository) {
	t.Helper()
	db := openTestDB(t)
	users := NewUserRepository(db)
	projects := NewProjectRepository(db)
	require.NoError(t, users.Init(context.Background()))
	require.NoError(t, projects.Init(context.Background()))
	return db, users, projects
}

func mustCreateUser(t *testing.T, repo repository.UserRepository, name, email string) *domain.User {
	t.Helper()
	user := &domain.User{Name: name, Email: email}
	_, err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func mustCreateProject(t *testing.T, repo repository.ProjectRepository, name, description string) *domain.Project {
	t.Helper()
	project := &domain.Project{Name: name, Description: description}
	_, err := repo.Create(context.Background(), project)
	require.NoError(t, err)
	return project
}
