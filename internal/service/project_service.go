package service

import (
	"context"
	"strings"

	"github.com/spec-kit/project-service/internal/domain"
	"github.com/spec-kit/project-service/internal/events"
	"github.com/spec-kit/project-service/internal/repository"
)

// ProjectService coordinates project workflows.
type ProjectService struct {
	projects   repository.ProjectRepository
	users      repository.UserRepository
	tasks      repository.TaskRepository
	dispatcher events.Dispatcher
}

// ProjectDependencies bundles repositories for the project service.
type ProjectDependencies struct {
	ProjectRepo repository.ProjectRepository
	UserRepo    repository.UserRepository
	TaskRepo    repository.TaskRepository
	Dispatcher  events.Dispatcher
}

// ProjectCreateInput describes project creation payload.
type ProjectCreateInput struct {
	Name        string
	Description *string
	OwnerID     int64
}

// ProjectUpdateInput carries optional field changes.
type ProjectUpdateInput struct {
	Name        *string
	Description *string
	// ClearDescription sets the description to null.
	ClearDescription bool
}

// NewProjectService constructs the service.
func NewProjectService(deps ProjectDependencies) *ProjectService {
	return &ProjectService{
		projects:   deps.ProjectRepo,
		users:      deps.UserRepo,
		tasks:      deps.TaskRepo,
		dispatcher: deps.Dispatcher,
	}
}

// List returns projects matching the filter.
func (s *ProjectService) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	return s.projects.List(ctx, filter)
}

// Get returns a single project.
func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrProjectNotFound)
	}
	return project, nil
}

// TasksOf lists every task of a project.
func (s *ProjectService) TasksOf(ctx context.Context, projectID int64) ([]domain.Task, error) {
	return s.tasks.List(ctx, repository.TaskFilter{ProjectID: projectID})
}

// Create adds a project for an existing owner.
func (s *ProjectService) Create(ctx context.Context, actor *domain.User, input ProjectCreateInput) (*domain.Project, error) {
	if _, err := s.users.GetByID(ctx, input.OwnerID); err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}

	project := &domain.Project{
		Name:        strings.TrimSpace(input.Name),
		Description: trimmedPtr(input.Description),
		UserID:      input.OwnerID,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		// The owner can disappear between the check and the insert.
		return nil, notFoundAs(err, ErrUserNotFound)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventProjectCreated,
		ResourceID: project.ID,
		Actor:      actorOf(actor),
		Payload:    events.ProjectPayload{Name: project.Name, OwnerID: project.UserID},
	})
	return project, nil
}

// Update applies the provided changes atomically.
func (s *ProjectService) Update(ctx context.Context, actor *domain.User, id int64, input ProjectUpdateInput) (*domain.Project, error) {
	project, err := s.projects.Update(ctx, id, func(p *domain.Project) error {
		if input.Name != nil {
			p.Name = strings.TrimSpace(*input.Name)
		}
		if input.ClearDescription {
			p.Description = nil
		} else if input.Description != nil {
			p.Description = trimmedPtr(input.Description)
		}
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, ErrProjectNotFound)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventProjectUpdated,
		ResourceID: project.ID,
		Actor:      actorOf(actor),
		Payload:    events.ProjectPayload{Name: project.Name, OwnerID: project.UserID},
	})
	return project, nil
}

// Delete removes the project and its tasks.
func (s *ProjectService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return notFoundAs(err, ErrProjectNotFound)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventProjectDeleted,
		ResourceID: id,
		Actor:      actorOf(actor),
	})
	return nil
}
