package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/services"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

// MenuController serves the public catalog and its admin mutations.
type MenuController struct {
	menus *services.MenuService
}

func NewMenuController(menus *services.MenuService) *MenuController {
	return &MenuController{menus: menus}
}

// List returns the full catalog. Public.
func (c *MenuController) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.menus.List(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("menus: list failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not list menu")
		return
	}
	response.Success(w, items)
}

// Get returns a single catalog item. Public.
func (c *MenuController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid menu id")
		return
	}

	item, err := c.menus.Find(r.Context(), id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("menus: get failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not load menu item")
		return
	}

	// Absence is a 200 with a null payload; the storefront treats it as
	// an empty result, not a failure.
	response.Success(w, item)
}

// Create adds a catalog item. Admin only.
func (c *MenuController) Create(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil || item.Name == "" {
		response.Error(w, http.StatusBadRequest, "invalid menu item")
		return
	}

	if err := c.menus.Create(r.Context(), &item); err != nil {
		logger.WithCtx(r.Context()).Error("menus: create failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not create menu item")
		return
	}
	response.Created(w, item)
}

// Update edits a catalog item's editable fields. Admin only.
func (c *MenuController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid menu id")
		return
	}

	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid menu item")
		return
	}

	modified, err := c.menus.Update(r.Context(), id, &item)
	if err != nil {
		logger.WithCtx(r.Context()).Error("menus: update failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not update menu item")
		return
	}
	response.Success(w, map[string]int64{"modifiedCount": modified})
}

// Delete removes a catalog item. Admin only. Existing cart lines and
// ledger records that reference the item keep their now-dangling ids.
func (c *MenuController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid menu id")
		return
	}

	deleted, err := c.menus.Remove(r.Context(), id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("menus: delete failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not delete menu item")
		return
	}
	response.Success(w, map[string]int64{"deletedCount": deleted})
}
