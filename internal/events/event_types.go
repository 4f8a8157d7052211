package events

import (
	"time"

	"github.com/spec-kit/project-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserCreated    EventType = "user_created"
	EventUserUpdated    EventType = "user_updated"
	EventUserDeleted    EventType = "user_deleted"
	EventProjectCreated EventType = "project_created"
	EventProjectUpdated EventType = "project_updated"
	EventProjectDeleted EventType = "project_deleted"
	EventTaskCreated    EventType = "task_created"
	EventTaskUpdated    EventType = "task_updated"
	EventTaskDeleted    EventType = "task_deleted"
)

// Actor identifies who triggered an event. Self-registration has no actor.
type Actor struct {
	UserID *int64       `json:"user_id,omitempty"`
	Role   *domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ResourceID int64       `json:"resource_id"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// UserPayload describes a user lifecycle event.
type UserPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// ProjectPayload describes a project lifecycle event.
type ProjectPayload struct {
	Name    string `json:"name"`
	OwnerID int64  `json:"owner_id"`
}

// TaskPayload describes a task lifecycle event.
type TaskPayload struct {
	ProjectID int64             `json:"project_id"`
	Title     string            `json:"title"`
	Status    domain.TaskStatus `json:"status"`
}
