package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/project-service/internal/config"
	"github.com/spec-kit/project-service/internal/events"
	"github.com/spec-kit/project-service/internal/repository/memory"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store      *memory.Store
	dispatcher *recordingDispatcher
	auth       *AuthService
	users      *UserService
	projects   *ProjectService
	tasks      *TaskService
}

func testConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{JWTSecret: "service-test-secret", BcryptCost: bcrypt.MinCost}}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	dispatcher := &recordingDispatcher{}
	cfg := testConfig()

	f := &fixture{
		store:      store,
		dispatcher: dispatcher,
		auth: NewAuthService(cfg, AuthDependencies{
			UserRepo:   store.Users(),
			Dispatcher: dispatcher,
		}),
		users: NewUserService(UserDependencies{
			UserRepo:    store.Users(),
			ProjectRepo: store.Projects(),
			Dispatcher:  dispatcher,
			BcryptCost:  cfg.Auth.BcryptCost,
		}),
		projects: NewProjectService(ProjectDependencies{
			ProjectRepo: store.Projects(),
			UserRepo:    store.Users(),
			TaskRepo:    store.Tasks(),
			Dispatcher:  dispatcher,
		}),
		tasks: NewTaskService(TaskDependencies{
			TaskRepo:    store.Tasks(),
			ProjectRepo: store.Projects(),
			Dispatcher:  dispatcher,
		}),
	}
	require.NotNil(t, f.auth)
	return f
}
