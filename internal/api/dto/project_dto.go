package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spec-kit/project-service/internal/domain"
)

// ProjectCreateRequest is the POST /projects payload.
type ProjectCreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	UserID      int64   `json:"user_id"`
}

// Validate checks the payload.
func (r ProjectCreateRequest) Validate() error {
	return firstViolation(validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			notBlank("name must be a non-empty string"),
			validation.RuneLength(0, MaxProjectName).Error("name must be at most 200 characters")),
		validation.Field(&r.UserID,
			validation.Required.Error("user_id is required"),
			validation.Min(1).Error("user_id must be a positive integer")),
	), "name", "user_id")
}

// ProjectUpdateRequest is the PUT /projects/:id payload.
type ProjectUpdateRequest struct {
	Name        *string        `json:"name"`
	Description OptionalString `json:"description"`
}

// Validate checks the fields that are present.
func (r ProjectUpdateRequest) Validate() error {
	return firstViolation(validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			notBlank("name must be a non-empty string"),
			validation.RuneLength(0, MaxProjectName).Error("name must be at most 200 characters")),
	), "name")
}

// ProjectResponse is the public view of a project.
type ProjectResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	UserID      int64          `json:"user_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Tasks       []TaskResponse `json:"tasks,omitempty"`
}

// ProjectListResponse wraps a project listing.
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Count    int               `json:"count"`
}

// NewProjectResponse maps a domain project.
func NewProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewProjectResponses maps a slice of projects.
func NewProjectResponses(projects []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, NewProjectResponse(&projects[i]))
	}
	return out
}
