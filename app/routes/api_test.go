package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bistro/app/controllers"
	"github.com/shashiranjanraj/bistro/pkg/router"
)

func testRouter(t *testing.T) *router.Router {
	t.Helper()

	r := router.New()
	RegisterAPI(r, Controllers{
		Health:  controllers.NewHealthController(),
		Auth:    controllers.NewAuthController(),
		User:    controllers.NewUserController(nil),
		Menu:    controllers.NewMenuController(nil),
		Review:  controllers.NewReviewController(nil),
		Cart:    controllers.NewCartController(nil),
		Payment: controllers.NewPaymentController(nil, nil),
		Stats:   controllers.NewStatsController(nil),
	}, nil)
	return r
}

// The paths are the contract with the frontend; renaming any of them
// breaks it.
func TestRouteTable(t *testing.T) {
	r := testRouter(t)

	mounted := map[string]bool{}
	for _, info := range r.Routes() {
		mounted[info.Method+" "+info.Path] = true
	}

	for _, route := range []string{
		"GET /",
		"GET /metrics",
		"POST /jwt",
		"GET /menus",
		"GET /menus/{id}",
		"POST /add-menus",
		"PATCH /menus/{id}",
		"DELETE /menus/{id}",
		"GET /reviews",
		"GET /carts",
		"POST /carts",
		"DELETE /carts/{id}",
		"GET /users",
		"POST /users",
		"GET /users/{email}",
		"PATCH /users/{id}",
		"DELETE /users/{id}",
		"POST /create-payment-intent",
		"GET /payments/{email}",
		"POST /payments",
		"GET /admin-stats",
		"GET /order-stats",
	} {
		assert.True(t, mounted[route], "missing route %s", route)
	}
	assert.Len(t, mounted, 22)
}

// Guarded routes reject a tokenless request before any handler runs.
func TestGuardedRoutesRequireToken(t *testing.T) {
	r := testRouter(t)

	for _, route := range []string{
		"GET /users",
		"GET /users/someone@x.com",
		"POST /add-menus",
		"PATCH /menus/0123456789abcdef01234567",
		"DELETE /menus/0123456789abcdef01234567",
		"GET /payments/someone@x.com",
	} {
		method, path, _ := strings.Cut(route, " ")
		req := httptest.NewRequest(method, path, nil)
		rec := httptest.NewRecorder()

		r.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "route %s", route)
	}
}

// Open routes must never bounce a tokenless request with a 401; these all
// fail validation inside the handler instead, proving no guard ran.
func TestOpenRoutesSkipTokenGuard(t *testing.T) {
	r := testRouter(t)

	for _, tc := range []struct {
		method, path, body string
	}{
		{http.MethodPost, "/create-payment-intent", `{}`},
		{http.MethodPost, "/payments", `{}`},
		{http.MethodPatch, "/users/not-an-id", ``},
		{http.MethodDelete, "/users/not-an-id", ``},
	} {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		rec := httptest.NewRecorder()

		r.Handler().ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code, "%s %s", tc.method, tc.path)
	}
}
