package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

// CartController manages the customer's pending order lines.
type CartController struct {
	carts *repositories.CartRepository
}

func NewCartController(carts *repositories.CartRepository) *CartController {
	return &CartController{carts: carts}
}

// List returns the cart lines for ?email=. An absent email yields an
// empty list rather than an error.
func (c *CartController) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		response.Success(w, []models.CartItem{})
		return
	}

	items, err := c.carts.FindByEmail(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("carts: list failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not list cart")
		return
	}
	response.Success(w, items)
}

// Create adds one cart line. Each add is its own row; quantity is a
// frontend concern.
func (c *CartController) Create(w http.ResponseWriter, r *http.Request) {
	var item models.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil || item.Email == "" {
		response.Error(w, http.StatusBadRequest, "invalid cart item")
		return
	}

	if err := c.carts.Insert(r.Context(), &item); err != nil {
		logger.WithCtx(r.Context()).Error("carts: create failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not add to cart")
		return
	}
	response.Created(w, item)
}

// Delete removes a single cart line by id.
func (c *CartController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid cart id")
		return
	}

	deleted, err := c.carts.DeleteByID(r.Context(), id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("carts: delete failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not remove cart item")
		return
	}
	response.Success(w, map[string]int64{"deletedCount": deleted})
}
