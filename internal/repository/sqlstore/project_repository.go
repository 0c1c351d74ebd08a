package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"project-manager/internal/domain"
	"project-manager/internal/repository"
)

type ProjectRepository struct {
	db *DB
}

func NewProjectRepository(db *DB) repository.ProjectRepository {
	return &ProjectRepository{db: db}
}

// Init creates projects and the membership table. The users table must exist.
func (r *ProjectRepository) Init(ctx context.Context) error {
	for _, stmt := range r.db.dialect.projectsSchema() {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create projects schema: %w", err)
		}
	}
	return nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (int64, error) {
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	var id int64
	err := r.db.queryRow(ctx, `
INSERT INTO projects (name, description, created_at, updated_at)
VALUES (?, ?, ?, ?)
RETURNING id`,
		project.Name,
		project.Description,
		project.CreatedAt,
		project.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	project.ID = id
	return id, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	project.UpdatedAt = time.Now().UTC()
	res, err := r.db.exec(ctx, `
UPDATE projects
SET name=?, description=?, updated_at=?
WHERE id=?`,
		project.Name,
		project.Description,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return expectAffected(res, "project", project.ID)
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.exec(ctx, `DELETE FROM projects WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return expectAffected(res, "project", id)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	row := r.db.queryRow(ctx, `
SELECT id, name, description, created_at, updated_at
FROM projects
WHERE id=?`,
		id,
	)
	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: project id=%d was not found", domain.ErrNotFound, id)
	}
	return project, err
}

func (r *ProjectRepository) Search(ctx context.Context, q domain.ListQuery) ([]domain.Project, int, error) {
	countSQL, countArgs, pageSQL, pageArgs, err := projectListing.build(r.db.dialect, q)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.queryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	rows, err := r.db.query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	projects, err := collectProjects(rows)
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *ProjectRepository) ListMembers(ctx context.Context, projectID int64) ([]domain.User, error) {
	rows, err := r.db.query(ctx, `
SELECT u.id, u.name, u.email, u.created_at, u.updated_at
FROM users u
JOIN projects_users pu ON pu.user_id = u.id
WHERE pu.project_id=?
ORDER BY u.id ASC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query project members: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *ProjectRepository) ListByMember(ctx context.Context, userID int64) ([]domain.Project, error) {
	rows, err := r.db.query(ctx, `
SELECT p.id, p.name, p.description, p.created_at, p.updated_at
FROM projects p
JOIN projects_users pu ON pu.project_id = p.id
WHERE pu.user_id=?
ORDER BY p.id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query member projects: %w", err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

func (r *ProjectRepository) AddMember(ctx context.Context, projectID, userID int64) error {
	_, err := r.db.exec(ctx, `
INSERT INTO projects_users (project_id, user_id)
VALUES (?, ?)`,
		projectID,
		userID,
	)
	if err != nil {
		if r.db.dialect.isUniqueViolation(err) || r.db.dialect.isSerializationFailure(err) {
			return fmt.Errorf("%w: user id=%d is already assigned to project id=%d", domain.ErrConflict, userID, projectID)
		}
		return fmt.Errorf("insert project member: %w", err)
	}
	return nil
}

func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID int64) error {
	res, err := r.db.exec(ctx, `DELETE FROM projects_users WHERE project_id=? AND user_id=?`, projectID, userID)
	if err != nil {
		if r.db.dialect.isSerializationFailure(err) {
			return fmt.Errorf("%w: concurrent modification of project id=%d", domain.ErrConflict, projectID)
		}
		return fmt.Errorf("delete project member: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("project member rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("%w: user id=%d is not assigned to project id=%d", domain.ErrConflict, userID, projectID)
	}
	return nil
}

func collectProjects(rows *sql.Rows) ([]domain.Project, error) {
	projects := []domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

func scanProject(row interface {
	Scan(dest ...any) error
}) (*domain.Project, error) {
	var project domain.Project
	if err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}
	project.CreatedAt = project.CreatedAt.UTC()
	project.UpdatedAt = project.UpdatedAt.UTC()
	return &project, nil
}
