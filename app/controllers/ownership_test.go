package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/bistro/pkg/middleware"
)

// requestFor builds a request with {email} as a chi URL param and,
// optionally, an authenticated caller attached to the context.
func requestFor(t *testing.T, paramEmail, callerEmail string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("email", paramEmail)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)

	if callerEmail != "" {
		ctx = middleware.WithEmail(ctx, callerEmail)
	}
	return req.WithContext(ctx)
}

func TestPaymentHistoryForbiddenForOtherEmail(t *testing.T) {
	// The guard rejects before the ledger is touched, so no repository
	// is needed.
	c := NewPaymentController(nil, nil)

	rec := httptest.NewRecorder()
	c.History(rec, requestFor(t, "victim@x.com", "attacker@x.com"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "forbidden access")
}

func TestPaymentHistoryForbiddenWithoutCaller(t *testing.T) {
	c := NewPaymentController(nil, nil)

	rec := httptest.NewRecorder()
	c.History(rec, requestFor(t, "victim@x.com", ""))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCheckAdminForbiddenForOtherEmail(t *testing.T) {
	c := NewUserController(nil)

	rec := httptest.NewRecorder()
	c.CheckAdmin(rec, requestFor(t, "someone-else@x.com", "caller@x.com"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "forbidden access")
}
