package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"project-manager/internal/domain"
	"project-manager/internal/repository"
)

// ProjectService coordinates projects and their membership.
type ProjectService interface {
	Create(ctx context.Context, in domain.NewProject) (*domain.Project, error)
	Get(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context, params ListParams) (domain.Page[domain.Project], error)
	Update(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id int64) (*domain.Project, error)
	AddUser(ctx context.Context, projectID, userID int64) (*domain.Project, error)
	RemoveUser(ctx context.Context, projectID, userID int64) (*domain.Project, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Project, error)
}

type projectService struct {
	projects repository.ProjectRepository
	users    UserService
	tx       repository.Transactor
	maxLimit int
	log      logrus.FieldLogger
}

func NewProjectService(projects repository.ProjectRepository, users UserService, tx repository.Transactor, maxLimit int, log logrus.FieldLogger) ProjectService {
	return &projectService{
		projects: projects,
		users:    users,
		tx:       tx,
		maxLimit: maxLimit,
		log:      log,
	}
}

func (s *projectService) Create(ctx context.Context, in domain.NewProject) (*domain.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is a required field", domain.ErrInvalid)
	}

	project := &domain.Project{Name: in.Name, Description: in.Description}
	if _, err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.log.WithField("project_id", project.ID).Info("project created")
	return project, nil
}

func (s *projectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.loadMembers(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context, params ListParams) (domain.Page[domain.Project], error) {
	q, err := buildListQuery(params, s.maxLimit)
	if err != nil {
		return domain.Page[domain.Project]{}, err
	}
	projects, total, err := s.projects.Search(ctx, q)
	if err != nil {
		return domain.Page[domain.Project]{}, err
	}
	return newPage(projects, q, total), nil
}

func (s *projectService) Update(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
	var project *domain.Project
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		project, err = s.projects.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if present(patch.Name) {
			project.Name = *patch.Name
		}
		if present(patch.Description) {
			project.Description = *patch.Description
		}
		if err := s.projects.Update(ctx, project); err != nil {
			return err
		}
		return s.loadMembers(ctx, project)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id int64) (*domain.Project, error) {
	var project *domain.Project
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		project, err = s.projects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return s.projects.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("project_id", id).Info("project deleted")
	return project, nil
}

func (s *projectService) AddUser(ctx context.Context, projectID, userID int64) (*domain.Project, error) {
	project, err := s.mutateMembership(ctx, projectID, userID, func(ctx context.Context, project *domain.Project) error {
		if project.HasMember(userID) {
			return fmt.Errorf("%w: user id=%d is already assigned to project id=%d", domain.ErrConflict, userID, projectID)
		}
		return s.projects.AddMember(ctx, projectID, userID)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"project_id": projectID, "user_id": userID}).Info("user added to project")
	return project, nil
}

func (s *projectService) RemoveUser(ctx context.Context, projectID, userID int64) (*domain.Project, error) {
	project, err := s.mutateMembership(ctx, projectID, userID, func(ctx context.Context, project *domain.Project) error {
		if !project.HasMember(userID) {
			return fmt.Errorf("%w: user id=%d is not assigned to project id=%d", domain.ErrConflict, userID, projectID)
		}
		return s.projects.RemoveMember(ctx, projectID, userID)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"project_id": projectID, "user_id": userID}).Info("user removed from project")
	return project, nil
}

// mutateMembership loads both sides inside one transaction, runs change and
// returns the project with its refreshed member list.
func (s *projectService) mutateMembership(ctx context.Context, projectID, userID int64, change func(ctx context.Context, project *domain.Project) error) (*domain.Project, error) {
	var project *domain.Project
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		project, err = s.projects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if _, err := s.users.Get(ctx, userID); err != nil {
			return err
		}
		if err := s.loadMembers(ctx, project); err != nil {
			return err
		}
		if err := change(ctx, project); err != nil {
			return err
		}
		return s.loadMembers(ctx, project)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) ListForUser(ctx context.Context, userID int64) ([]domain.Project, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, err
	}
	return s.projects.ListByMember(ctx, userID)
}

func (s *projectService) loadMembers(ctx context.Context, project *domain.Project) error {
	members, err := s.projects.ListMembers(ctx, project.ID)
	if err != nil {
		return err
	}
	project.Users = members
	return nil
}
