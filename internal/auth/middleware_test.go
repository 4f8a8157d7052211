package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/project-service/internal/domain"
	apperrors "github.com/spec-kit/project-service/pkg/util"
)

type stubResolver struct {
	users map[string]*domain.User
	err   error
	calls int
}

func (s *stubResolver) ResolveIdentity(_ context.Context, token string) (*domain.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func newMiddlewareApp(resolver IdentityResolver, handlerCalls *int) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			body := fiber.Map{"error": domainErr.Message}
			for k, v := range domainErr.Details {
				body[k] = v
			}
			return c.Status(domainErr.HTTPStatus).JSON(body)
		},
	})
	mw := NewAuthMiddleware(resolver)
	handler := func(c *fiber.Ctx) error {
		*handlerCalls++
		user, ok := IdentityFromContext(c)
		if !ok {
			return errors.New("identity missing")
		}
		return c.JSON(fiber.Map{"id": user.ID})
	}
	app.Get("/me", mw.Handle, handler)
	app.Post("/admin", mw.Handle, mw.RequireManager, handler)
	app.Post("/admin-only", mw.RequireManager, handler)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, header string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp.StatusCode, body
}

func TestAuthMiddlewareHandle(t *testing.T) {
	resolver := &stubResolver{users: map[string]*domain.User{
		"employee-token": {ID: 2, Role: domain.RoleEmployee},
	}}
	calls := 0
	app := newMiddlewareApp(resolver, &calls)

	cases := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"missing header", "", 401, MsgAuthorizationRequired},
		{"missing bearer prefix", "employee-token", 401, MsgMalformedHeader},
		{"basic scheme", "Basic abc", 401, MsgMalformedHeader},
		{"bearer without token", "Bearer ", 401, MsgMalformedHeader},
		{"bearer keyword only", "Bearer", 401, MsgMalformedHeader},
		{"extra segments", "Bearer a b", 401, MsgMalformedHeader},
		{"unknown token", "Bearer nope", 401, MsgInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doRequest(t, app, "GET", "/me", tc.header)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, body["error"])
		})
	}
	assert.Zero(t, calls, "handler must not run on rejected requests")

	status, body := doRequest(t, app, "GET", "/me", "Bearer employee-token")
	assert.Equal(t, 200, status)
	assert.EqualValues(t, 2, body["id"])
	assert.Equal(t, 1, calls)
}

func TestAuthMiddlewareResolverFailure(t *testing.T) {
	calls := 0
	app := newMiddlewareApp(&stubResolver{err: errors.New("db down")}, &calls)

	status, body := doRequest(t, app, "GET", "/me", "Bearer anything")
	assert.Equal(t, 500, status)
	assert.Equal(t, "internal server error", body["error"])
	assert.Zero(t, calls)
}

func TestRequireManager(t *testing.T) {
	resolver := &stubResolver{users: map[string]*domain.User{
		"employee-token": {ID: 2, Role: domain.RoleEmployee},
		"manager-token":  {ID: 1, Role: domain.RoleManager},
	}}
	calls := 0
	app := newMiddlewareApp(resolver, &calls)

	for _, path := range []string{"/admin", "/admin-only"} {
		t.Run(path, func(t *testing.T) {
			before := calls

			status, body := doRequest(t, app, "POST", path, "Bearer employee-token")
			assert.Equal(t, 403, status)
			assert.Equal(t, MsgManagerRequired, body["error"])
			assert.Equal(t, "employee", body["user_type"])

			status, body = doRequest(t, app, "POST", path, "")
			assert.Equal(t, 401, status)
			assert.Equal(t, MsgAuthorizationRequired, body["error"])
			assert.Equal(t, before, calls)

			status, _ = doRequest(t, app, "POST", path, "Bearer manager-token")
			assert.Equal(t, 200, status)
			assert.Equal(t, before+1, calls)
		})
	}
}

func TestRequireManagerResolvesOnce(t *testing.T) {
	resolver := &stubResolver{users: map[string]*domain.User{
		"manager-token": {ID: 1, Role: domain.RoleManager},
	}}
	calls := 0
	app := newMiddlewareApp(resolver, &calls)

	status, _ := doRequest(t, app, "POST", "/admin", "Bearer manager-token")
	assert.Equal(t, 200, status)
	assert.Equal(t, 1, resolver.calls)
}

func TestIsManager(t *testing.T) {
	assert.True(t, IsManager(&domain.User{Role: domain.RoleManager}))
	assert.False(t, IsManager(&domain.User{Role: domain.RoleEmployee}))
	assert.False(t, IsManager(&domain.User{Role: domain.Role("admin")}))
	assert.False(t, IsManager(nil))
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = BearerToken("bearer abc")
	assert.Error(t, err)
}
