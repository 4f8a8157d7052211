package service

import (
	"context"
	"strings"

	"github.com/spec-kit/project-service/internal/domain"
	"github.com/spec-kit/project-service/internal/events"
	"github.com/spec-kit/project-service/internal/repository"
)

// TaskService coordinates task workflows.
type TaskService struct {
	tasks      repository.TaskRepository
	projects   repository.ProjectRepository
	dispatcher events.Dispatcher
}

// TaskDependencies bundles repositories for the task service.
type TaskDependencies struct {
	TaskRepo    repository.TaskRepository
	ProjectRepo repository.ProjectRepository
	Dispatcher  events.Dispatcher
}

// TaskCreateInput describes task creation payload. Empty Status means pending.
type TaskCreateInput struct {
	Title       string
	Description *string
	Status      domain.TaskStatus
}

// TaskUpdateInput carries optional field changes.
type TaskUpdateInput struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Status           *domain.TaskStatus
}

// TaskListFilter narrows a project's task listing.
type TaskListFilter struct {
	Status *domain.TaskStatus
	repository.Page
}

// NewTaskService constructs the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	return &TaskService{
		tasks:      deps.TaskRepo,
		projects:   deps.ProjectRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ListForProject returns the tasks of an existing project.
func (s *TaskService) ListForProject(ctx context.Context, projectID int64, filter TaskListFilter) ([]domain.Task, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, notFoundAs(err, ErrProjectNotFound)
	}
	return s.tasks.List(ctx, repository.TaskFilter{
		ProjectID: projectID,
		Status:    filter.Status,
		Page:      filter.Page,
	})
}

// Get returns a single task.
func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrTaskNotFound)
	}
	return task, nil
}

// Create adds a task to an existing project.
func (s *TaskService) Create(ctx context.Context, actor *domain.User, projectID int64, input TaskCreateInput) (*domain.Task, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, notFoundAs(err, ErrProjectNotFound)
	}

	task := &domain.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: trimmedPtr(input.Description),
		Status:      input.Status,
		ProjectID:   projectID,
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, notFoundAs(err, ErrProjectNotFound)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventTaskCreated,
		ResourceID: task.ID,
		Actor:      actorOf(actor),
		Payload:    events.TaskPayload{ProjectID: task.ProjectID, Title: task.Title, Status: task.Status},
	})
	return task, nil
}

// Update applies the provided changes atomically.
func (s *TaskService) Update(ctx context.Context, actor *domain.User, id int64, input TaskUpdateInput) (*domain.Task, error) {
	task, err := s.tasks.Update(ctx, id, func(t *domain.Task) error {
		if input.Title != nil {
			t.Title = strings.TrimSpace(*input.Title)
		}
		if input.ClearDescription {
			t.Description = nil
		} else if input.Description != nil {
			t.Description = trimmedPtr(input.Description)
		}
		if input.Status != nil {
			t.Status = *input.Status
		}
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, ErrTaskNotFound)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventTaskUpdated,
		ResourceID: task.ID,
		Actor:      actorOf(actor),
		Payload:    events.TaskPayload{ProjectID: task.ProjectID, Title: task.Title, Status: task.Status},
	})
	return task, nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return notFoundAs(err, ErrTaskNotFound)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventTaskDeleted,
		ResourceID: id,
		Actor:      actorOf(actor),
	})
	return nil
}
