package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/project-service/internal/domain"
	"github.com/spec-kit/project-service/internal/events"
	"github.com/spec-kit/project-service/internal/repository"
)

func strPtr(s string) *string { return &s }

func TestUserServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	manager := registerUser(t, f, "m@x.com", domain.RoleManager)

	created, err := f.users.Create(ctx, manager, UserCreateInput{
		Name:     "  Worker  ",
		Email:    "w@x.com",
		Role:     domain.RoleEmployee,
		Password: strPtr("secret1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Worker", created.Name)

	_, err = f.auth.Authenticate(ctx, "w@x.com", "secret1")
	require.NoError(t, err)

	_, err = f.users.Create(ctx, manager, UserCreateInput{Name: "Dup", Email: "w@x.com", Role: domain.RoleEmployee})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	updated, err := f.users.Update(ctx, manager, created.ID, UserUpdateInput{Password: strPtr("changed1")})
	require.NoError(t, err)
	assert.Equal(t, created.Email, updated.Email)
	_, err = f.auth.Authenticate(ctx, "w@x.com", "changed1")
	assert.NoError(t, err)

	_, err = f.users.Update(ctx, manager, 999, UserUpdateInput{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, f.users.Delete(ctx, manager, 999), ErrUserNotFound)

	_, err = f.users.Create(ctx, manager, UserCreateInput{Name: "Bad", Email: "bad@x.com", Role: domain.Role("admin")})
	assert.ErrorIs(t, err, ErrInvalidRole)
	admin := domain.Role("admin")
	_, err = f.users.Update(ctx, manager, created.ID, UserUpdateInput{Role: &admin})
	assert.ErrorIs(t, err, ErrInvalidRole)

	employee := domain.RoleEmployee
	list, err := f.users.List(ctx, repository.UserFilter{Role: &employee})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	last := f.dispatcher.events[len(f.dispatcher.events)-1]
	assert.Equal(t, events.EventUserUpdated, last.Type)
	require.NotNil(t, last.Actor.UserID)
	assert.Equal(t, manager.ID, *last.Actor.UserID)
}

func TestProjectAndTaskServices(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	manager := registerUser(t, f, "pm@x.com", domain.RoleManager)

	_, err := f.projects.Create(ctx, manager, ProjectCreateInput{Name: "Ghost", OwnerID: 404})
	assert.ErrorIs(t, err, ErrUserNotFound)

	project, err := f.projects.Create(ctx, manager, ProjectCreateInput{
		Name:        "Apollo",
		Description: strPtr(" launch "),
		OwnerID:     manager.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, project.Description)
	assert.Equal(t, "launch", *project.Description)

	task, err := f.tasks.Create(ctx, manager, project.ID, TaskCreateInput{Title: "Fuel"})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusPending, task.Status)

	_, err = f.tasks.Create(ctx, manager, 404, TaskCreateInput{Title: "Orphan"})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	done := domain.TaskStatusCompleted
	task, err = f.tasks.Update(ctx, manager, task.ID, TaskUpdateInput{Status: &done, Description: strPtr("ready")})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, task.Status)

	task, err = f.tasks.Update(ctx, manager, task.ID, TaskUpdateInput{ClearDescription: true})
	require.NoError(t, err)
	assert.Nil(t, task.Description)

	pending := domain.TaskStatusPending
	tasks, err := f.tasks.ListForProject(ctx, project.ID, TaskListFilter{Status: &pending})
	require.NoError(t, err)
	assert.Empty(t, tasks)

	_, err = f.tasks.ListForProject(ctx, 404, TaskListFilter{})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	project, err = f.projects.Update(ctx, manager, project.ID, ProjectUpdateInput{ClearDescription: true})
	require.NoError(t, err)
	assert.Nil(t, project.Description)

	require.NoError(t, f.projects.Delete(ctx, manager, project.ID))
	_, err = f.tasks.Get(ctx, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound, "deleting a project removes its tasks")
	_, err = f.projects.Get(ctx, project.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	assert.Contains(t, f.dispatcher.types(), events.EventTaskCreated)
	assert.Contains(t, f.dispatcher.types(), events.EventProjectDeleted)
}
