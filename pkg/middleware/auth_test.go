package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bistro/pkg/auth"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
)

type fakeRoles struct {
	roles map[string]string
}

func (f *fakeRoles) RoleByEmail(_ context.Context, email string) (string, error) {
	role, ok := f.roles[email]
	if !ok {
		return "", errors.New("not found")
	}
	return role, nil
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestTokenGuardMissingHeader(t *testing.T) {
	next, called := okHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)

	middleware.TokenGuard(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestTokenGuardMalformedHeader(t *testing.T) {
	for _, header := range []string{"Bearer", "Bearer ", "token-without-scheme"} {
		next, called := okHandler()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set(middleware.TokenHeader, header)

		middleware.TokenGuard(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.False(t, *called)
	}
}

func TestTokenGuardInvalidToken(t *testing.T) {
	next, called := okHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(middleware.TokenHeader, "Bearer not-a-token")

	middleware.TokenGuard(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestTokenGuardAttachesEmail(t *testing.T) {
	token, err := auth.GenerateToken("a@x.com")
	require.NoError(t, err)

	var gotEmail string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmail, _ = middleware.EmailFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(middleware.TokenHeader, "Bearer "+token)

	middleware.TokenGuard(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@x.com", gotEmail)
}

func TestRequireRoleAdminAllowed(t *testing.T) {
	store := &fakeRoles{roles: map[string]string{"admin@x.com": "admin"}}
	next, called := okHandler()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req = req.WithContext(middleware.WithEmail(req.Context(), "admin@x.com"))

	middleware.RequireRole(store, "admin")(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func TestRequireRoleNonAdminForbidden(t *testing.T) {
	store := &fakeRoles{roles: map[string]string{"user@x.com": "customer"}}
	next, called := okHandler()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req = req.WithContext(middleware.WithEmail(req.Context(), "user@x.com"))

	middleware.RequireRole(store, "admin")(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *called)
}

func TestRequireRoleMissingUserForbidden(t *testing.T) {
	store := &fakeRoles{roles: map[string]string{}}
	next, called := okHandler()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req = req.WithContext(middleware.WithEmail(req.Context(), "ghost@x.com"))

	middleware.RequireRole(store, "admin")(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *called)
}

func TestRequireRoleUnauthenticated(t *testing.T) {
	store := &fakeRoles{roles: map[string]string{}}
	next, called := okHandler()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)

	middleware.RequireRole(store, "admin")(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}
