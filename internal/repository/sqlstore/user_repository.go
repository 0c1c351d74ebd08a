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

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	for _, stmt := range r.db.dialect.usersSchema() {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create users table: %w", err)
		}
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	var id int64
	err := r.db.queryRow(ctx, `
INSERT INTO users (name, email, created_at, updated_at)
VALUES (?, ?, ?, ?)
RETURNING id`,
		user.Name,
		user.Email,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if r.db.dialect.isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: the email %s is already registered", domain.ErrConflict, user.Email)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	res, err := r.db.exec(ctx, `
UPDATE users
SET name=?, email=?, updated_at=?
WHERE id=?`,
		user.Name,
		user.Email,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		if r.db.dialect.isUniqueViolation(err) {
			return fmt.Errorf("%w: the email %s is already registered", domain.ErrConflict, user.Email)
		}
		return fmt.Errorf("update user: %w", err)
	}
	return expectAffected(res, "user", user.ID)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.exec(ctx, `DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return expectAffected(res, "user", id)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.queryRow(ctx, `
SELECT id, name, email, created_at, updated_at
FROM users
WHERE id=?`,
		id,
	)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user id=%d was not found", domain.ErrNotFound, id)
	}
	return user, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.queryRow(ctx, `
SELECT id, name, email, created_at, updated_at
FROM users
WHERE email=?`,
		email,
	)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user email=%s was not found", domain.ErrNotFound, email)
	}
	return user, err
}

func (r *UserRepository) Search(ctx context.Context, q domain.ListQuery) ([]domain.User, int, error) {
	countSQL, countArgs, pageSQL, pageArgs, err := userListing.build(r.db.dialect, q)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.queryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	rows, err := r.db.query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func collectUsers(rows *sql.Rows) ([]domain.User, error) {
	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// scanUser leaves sql.ErrNoRows unwrapped so callers can name the missing key.
func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return &user, nil
}

func expectAffected(res sql.Result, entity string, id int64) error {
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", entity, err)
	}
	if aff == 0 {
		return fmt.Errorf("%w: %s id=%d was not found", domain.ErrNotFound, entity, id)
	}
	return nil
}
