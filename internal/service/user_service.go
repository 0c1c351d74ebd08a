package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"project-manager/internal/domain"
	"project-manager/internal/repository"
)

// UserService describes user lifecycle operations.
type UserService interface {
	Create(ctx context.Context, in domain.NewUser) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, params ListParams) (domain.Page[domain.User], error)
	Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users    repository.UserRepository
	tx       repository.Transactor
	maxLimit int
	log      logrus.FieldLogger
}

func NewUserService(users repository.UserRepository, tx repository.Transactor, maxLimit int, log logrus.FieldLogger) UserService {
	return &userService{
		users:    users,
		tx:       tx,
		maxLimit: maxLimit,
		log:      log,
	}
}

func (s *userService) Create(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is a required field", domain.ErrInvalid)
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, fmt.Errorf("%w: email is a required field", domain.ErrInvalid)
	}

	user := &domain.User{Name: in.Name, Email: in.Email}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureEmailFree(ctx, in.Email, 0); err != nil {
			return err
		}
		_, err := s.users.Create(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Info("user created")
	return user, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, params ListParams) (domain.Page[domain.User], error) {
	q, err := buildListQuery(params, s.maxLimit)
	if err != nil {
		return domain.Page[domain.User]{}, err
	}
	users, total, err := s.users.Search(ctx, q)
	if err != nil {
		return domain.Page[domain.User]{}, err
	}
	return newPage(users, q, total), nil
}

func (s *userService) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	var user *domain.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.users.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if present(patch.Name) {
			user.Name = *patch.Name
		}
		if present(patch.Email) && *patch.Email != user.Email {
			if err := s.ensureEmailFree(ctx, *patch.Email, user.ID); err != nil {
				return err
			}
			user.Email = *patch.Email
		}
		return s.users.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) (*domain.User, error) {
	var user *domain.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return s.users.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("user_id", id).Info("user deleted")
	return user, nil
}

// ensureEmailFree fails with ErrConflict when email belongs to a user other than ownerID.
func (s *userService) ensureEmailFree(ctx context.Context, email string, ownerID int64) error {
	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != ownerID:
		return fmt.Errorf("%w: the email %s is already registered", domain.ErrConflict, email)
	}
	return nil
}
