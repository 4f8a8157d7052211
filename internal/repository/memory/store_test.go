package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/project-service/internal/domain"
	"github.com/spec-kit/project-service/internal/repository"
)

func TestStoreUserUniqueness(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	a := &domain.User{Name: "A", Email: "a@x.com", Role: domain.RoleEmployee}
	require.NoError(t, users.Create(ctx, a))
	assert.Equal(t, int64(1), a.ID)

	err := users.Create(ctx, &domain.User{Name: "B", Email: "a@x.com", Role: domain.RoleEmployee})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	// Emails compare case-sensitively, as stored.
	require.NoError(t, users.Create(ctx, &domain.User{Name: "C", Email: "A@x.com", Role: domain.RoleEmployee}))

	_, err = users.Update(ctx, a.ID, func(u *domain.User) error {
		u.Email = "A@x.com"
		return nil
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	stored, err := users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", stored.Email)
}

func TestStoreCascadeDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	owner := &domain.User{Name: "Owner", Email: "o@x.com", Role: domain.RoleManager}
	require.NoError(t, store.Users().Create(ctx, owner))
	project := &domain.Project{Name: "P", UserID: owner.ID}
	require.NoError(t, store.Projects().Create(ctx, project))
	task := &domain.Task{Title: "T", Status: domain.TaskStatusPending, ProjectID: project.ID}
	require.NoError(t, store.Tasks().Create(ctx, task))

	require.NoError(t, store.Users().Delete(ctx, owner.ID))

	_, err := store.Projects().GetByID(ctx, project.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.Tasks().GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, store.Users().Delete(ctx, owner.ID), repository.ErrNotFound)
}

func TestStoreForeignKeys(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	assert.ErrorIs(t, store.Projects().Create(ctx, &domain.Project{Name: "P", UserID: 99}), repository.ErrNotFound)
	assert.ErrorIs(t, store.Tasks().Create(ctx, &domain.Task{Title: "T", ProjectID: 99}), repository.ErrNotFound)
}

func TestStoreListFiltersAndPaging(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()
	for i, role := range []domain.Role{domain.RoleManager, domain.RoleEmployee, domain.RoleEmployee, domain.RoleEmployee} {
		require.NoError(t, users.Create(ctx, &domain.User{
			Name:  "U",
			Email: string(rune('a'+i)) + "@x.com",
			Role:  role,
		}))
	}

	employee := domain.RoleEmployee
	list, err := users.List(ctx, repository.UserFilter{Role: &employee})
	require.NoError(t, err)
	assert.Len(t, list, 3)

	list, err = users.List(ctx, repository.UserFilter{Page: repository.Page{Limit: 2, Offset: 1}})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	assert.Equal(t, int64(3), list[1].ID)

	list, err = users.List(ctx, repository.UserFilter{Page: repository.Page{Offset: 10}})
	require.NoError(t, err)
	assert.Empty(t, list)
}
