// Package memory provides in-process implementations of the repository
// interfaces. They back local development without Postgres and the HTTP and
// service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/project-service/internal/domain"
	"github.com/spec-kit/project-service/internal/repository"
)

// Store holds users, projects and tasks under one lock so cascades and
// foreign keys behave like the SQL schema.
type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	nextID   map[string]int64
	users    map[int64]domain.User
	projects map[int64]domain.Project
	tasks    map[int64]domain.Task
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		now:      func() time.Time { return time.Now().UTC() },
		nextID:   map[string]int64{},
		users:    map[int64]domain.User{},
		projects: map[int64]domain.Project{},
		tasks:    map[int64]domain.Task{},
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// Projects returns the project repository view of the store.
func (s *Store) Projects() repository.ProjectRepository { return &projectRepo{s} }

// Tasks returns the task repository view of the store.
func (s *Store) Tasks() repository.TaskRepository { return &taskRepo{s} }

func (s *Store) id(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// deleteUserLocked cascades to owned projects and their tasks.
func (s *Store) deleteUserLocked(id int64) {
	delete(s.users, id)
	for pid, p := range s.projects {
		if p.UserID == id {
			s.deleteProjectLocked(pid)
		}
	}
}

func (s *Store) deleteProjectLocked(id int64) {
	delete(s.projects, id)
	for tid, t := range s.tasks {
		if t.ProjectID == id {
			delete(s.tasks, tid)
		}
	}
}

func page[T any](items []T, p repository.Page) []T {
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if p.Limit > 0 && p.Limit < len(items) {
		items = items[:p.Limit]
	}
	return items
}

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	now := r.s.now()
	user.ID = r.s.id("users")
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) Update(_ context.Context, id int64, mutate func(*domain.User) error) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if err := mutate(&current); err != nil {
		return nil, err
	}
	for uid, u := range r.s.users {
		if uid != id && u.Email == current.Email {
			return nil, repository.ErrDuplicateEmail
		}
	}
	current.UpdatedAt = r.s.now()
	r.s.users[id] = current
	return &current, nil
}

func (r *userRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	r.s.deleteUserLocked(id)
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.User{}
	for _, id := range sortedIDs(r.s.users) {
		u := r.s.users[id]
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		out = append(out, u)
	}
	return page(out, filter.Page), nil
}

type projectRepo struct{ s *Store }

func (r *projectRepo) Create(_ context.Context, project *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[project.UserID]; !ok {
		return repository.ErrNotFound
	}
	now := r.s.now()
	project.ID = r.s.id("projects")
	project.CreatedAt, project.UpdatedAt = now, now
	r.s.projects[project.ID] = *project
	return nil
}

func (r *projectRepo) Update(_ context.Context, id int64, mutate func(*domain.Project) error) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if err := mutate(&current); err != nil {
		return nil, err
	}
	current.UpdatedAt = r.s.now()
	r.s.projects[id] = current
	return &current, nil
}

func (r *projectRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[id]; !ok {
		return repository.ErrNotFound
	}
	r.s.deleteProjectLocked(id)
	return nil
}

func (r *projectRepo) GetByID(_ context.Context, id int64) (*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *projectRepo) List(_ context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Project{}
	for _, id := range sortedIDs(r.s.projects) {
		p := r.s.projects[id]
		if filter.UserID != nil && p.UserID != *filter.UserID {
			continue
		}
		out = append(out, p)
	}
	return page(out, filter.Page), nil
}

type taskRepo struct{ s *Store }

func (r *taskRepo) Create(_ context.Context, task *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[task.ProjectID]; !ok {
		return repository.ErrNotFound
	}
	now := r.s.now()
	task.ID = r.s.id("tasks")
	task.CreatedAt, task.UpdatedAt = now, now
	r.s.tasks[task.ID] = *task
	return nil
}

func (r *taskRepo) Update(_ context.Context, id int64, mutate func(*domain.Task) error) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if err := mutate(&current); err != nil {
		return nil, err
	}
	current.UpdatedAt = r.s.now()
	r.s.tasks[id] = current
	return &current, nil
}

func (r *taskRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.tasks, id)
	return nil
}

func (r *taskRepo) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *taskRepo) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Task{}
	for _, id := range sortedIDs(r.s.tasks) {
		t := r.s.tasks[id]
		if t.ProjectID != filter.ProjectID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, t)
	}
	return page(out, filter.Page), nil
}
