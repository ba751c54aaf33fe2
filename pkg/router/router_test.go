package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(http.ResponseWriter, *http.Request) {}

func TestNamedRouteURL(t *testing.T) {
	r := New()
	r.Get("/payments/{email}", "payment.history", noop)

	url, err := r.URL("payment.history", map[string]string{"email": "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "/payments/a@x.com", url)

	_, err = r.URL("payment.history", nil)
	assert.Error(t, err, "unsubstituted params are an error")

	_, err = r.URL("does.not.exist", nil)
	assert.Error(t, err)
}

func TestRoutesSortedListing(t *testing.T) {
	r := New()
	r.Post("/users", "user.create", noop)
	r.Get("/menu", "menu.list", noop)
	r.Get("/users", "user.list", noop)

	infos := r.Routes()
	require.Len(t, infos, 3)
	assert.Equal(t, "/menu", infos[0].Path)
	// Same path sorts by method: GET before POST.
	assert.Equal(t, http.MethodGet, infos[1].Method)
	assert.Equal(t, http.MethodPost, infos[2].Method)
}

func TestGroupPrefixAndMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(label string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, label)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	g := r.Group("/admin", mw("outer"))
	g.Get("/stats", "admin.stats", noop, mw("inner"))

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	r.Handler().ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []string{"outer", "inner"}, order)
}
