package routes

import (
	"github.com/shashiranjanraj/bistro/app/controllers"
	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/pkg/metrics"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"github.com/shashiranjanraj/bistro/pkg/router"
)

// Controllers bundles every controller the API mounts.
type Controllers struct {
	Health  *controllers.HealthController
	Auth    *controllers.AuthController
	User    *controllers.UserController
	Menu    *controllers.MenuController
	Review  *controllers.ReviewController
	Cart    *controllers.CartController
	Payment *controllers.PaymentController
	Stats   *controllers.StatsController
}

// RegisterAPI mounts every route. Route paths are kept flat, matching the
// frontend the API serves.
func RegisterAPI(r *router.Router, c Controllers, users *repositories.UserRepository) {
	adminOnly := middleware.RequireRole(users, models.RoleAdmin)

	r.Get("/", "health.root", c.Health.Root)
	r.Get("/metrics", "metrics", metrics.Handler())

	// Token issuance and the public storefront.
	r.Post("/jwt", "auth.token", c.Auth.IssueToken)
	r.Get("/menus", "menu.list", c.Menu.List)
	r.Get("/menus/{id}", "menu.get", c.Menu.Get)
	r.Get("/reviews", "review.list", c.Review.List)

	// Cart management.
	r.Get("/carts", "cart.list", c.Cart.List)
	r.Post("/carts", "cart.create", c.Cart.Create)
	r.Delete("/carts/{id}", "cart.delete", c.Cart.Delete)

	// User lifecycle. Listing needs admin, the admin-flag check needs a
	// token (the handler enforces self-only); create/delete/promote are
	// open, matching the frontend's auth-provider-driven flow.
	r.Post("/users", "user.create", c.User.Create)
	r.Get("/users", "user.list", c.User.List, middleware.TokenGuard, adminOnly)
	r.Get("/users/{email}", "user.checkAdmin", c.User.CheckAdmin, middleware.TokenGuard)
	r.Patch("/users/{id}", "user.promote", c.User.Promote)
	r.Delete("/users/{id}", "user.delete", c.User.Delete)

	// Catalog administration.
	r.Post("/add-menus", "menu.create", c.Menu.Create, middleware.TokenGuard, adminOnly)
	r.Patch("/menus/{id}", "menu.update", c.Menu.Update, middleware.TokenGuard, adminOnly)
	r.Delete("/menus/{id}", "menu.delete", c.Menu.Delete, middleware.TokenGuard, adminOnly)

	// Payments. History is token + owner-only; intent creation and
	// settlement are open.
	r.Post("/create-payment-intent", "payment.intent", c.Payment.CreateIntent)
	r.Get("/payments/{email}", "payment.history", c.Payment.History, middleware.TokenGuard)
	r.Post("/payments", "payment.settle", c.Payment.Settle)

	// Dashboard reporting.
	r.Get("/admin-stats", "stats.admin", c.Stats.AdminStats)
	r.Get("/order-stats", "stats.orders", c.Stats.OrderStats)
}
