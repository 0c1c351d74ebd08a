package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"project-manager/internal/repository/sqlstore"
)

type fixture struct {
	users    UserService
	projects ProjectService
	hook     *test.Hook
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	db, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "manager.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	userRepo := sqlstore.NewUserRepository(db)
	projectRepo := sqlstore.NewProjectRepository(db)
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, projectRepo.Init(ctx))

	logger, hook := test.NewNullLogger()
	users := NewUserService(userRepo, db, 100, logger)
	projects := NewProjectService(projectRepo, users, db, 100, logger)
	return fixture{users: users, projects: projects, hook: hook}
}

func strPtr(s string) *string {
	return &s
}
