package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spec-kit/project-service/internal/domain"
)

func statusRule() validation.Rule {
	return validation.In("pending", "in_progress", "completed").
		Error("status must be one of: pending, in_progress, completed")
}

// TaskCreateRequest is the POST /projects/:id/tasks payload.
type TaskCreateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
}

// Validate checks the payload. Status defaults to pending when omitted.
func (r TaskCreateRequest) Validate() error {
	return firstViolation(validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			notBlank("title must be a non-empty string"),
			validation.RuneLength(0, MaxTaskTitle).Error("title must be at most 200 characters")),
		validation.Field(&r.Status, statusRule()),
	), "title", "status")
}

// TaskUpdateRequest is the PUT /tasks/:id payload.
type TaskUpdateRequest struct {
	Title       *string        `json:"title"`
	Description OptionalString `json:"description"`
	Status      *string        `json:"status"`
}

// Validate checks the fields that are present.
func (r TaskUpdateRequest) Validate() error {
	return firstViolation(validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			notBlank("title must be a non-empty string"),
			validation.RuneLength(0, MaxTaskTitle).Error("title must be at most 200 characters")),
		validation.Field(&r.Status, notBlank("status cannot be empty"), statusRule()),
	), "title", "status")
}

// TaskResponse is the public view of a task.
type TaskResponse struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	ProjectID   int64             `json:"project_id"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// TaskListResponse wraps the tasks of one project.
type TaskListResponse struct {
	Tasks     []TaskResponse `json:"tasks"`
	Count     int            `json:"count"`
	ProjectID int64          `json:"project_id"`
}

// NewTaskResponse maps a domain task.
func NewTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		ProjectID:   t.ProjectID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewTaskResponses maps a slice of tasks.
func NewTaskResponses(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskResponse(&tasks[i]))
	}
	return out
}
