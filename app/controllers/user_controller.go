package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

// UserController manages user records and the admin flag lookup.
type UserController struct {
	users *repositories.UserRepository
}

func NewUserController(users *repositories.UserRepository) *UserController {
	return &UserController{users: users}
}

// List returns every user. Admin only.
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("users: list failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not list users")
		return
	}
	response.Success(w, users)
}

// Create records a user on first sign-in. Repeat sign-ins with a known
// email are acknowledged without inserting a duplicate.
func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil || user.Email == "" {
		response.Error(w, http.StatusBadRequest, "email is required")
		return
	}

	created, err := c.users.Insert(r.Context(), &user)
	if err != nil {
		logger.WithCtx(r.Context()).Error("users: create failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not create user")
		return
	}
	if !created {
		response.Success(w, map[string]string{"message": "user already exists"})
		return
	}
	response.Created(w, user)
}

// CheckAdmin reports whether {email} carries the admin role. A caller may
// only ask about their own email; anything else is a 403.
func (c *UserController) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	caller, ok := middleware.EmailFromCtx(r.Context())
	if !ok || caller != email {
		response.Forbidden(w)
		return
	}

	user, err := c.users.FindByEmail(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("users: admin check failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not check role")
		return
	}

	// Unknown user simply reads as non-admin.
	response.Success(w, map[string]bool{"admin": user.IsAdmin()})
}

// Promote grants the admin role to the user with {id}. Admin only.
func (c *UserController) Promote(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	modified, err := c.users.PromoteAdmin(r.Context(), id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("users: promote failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not promote user")
		return
	}
	response.Success(w, map[string]int64{"modifiedCount": modified})
}

// Delete removes the user with {id}. Admin only.
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	deleted, err := c.users.Delete(r.Context(), id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("users: delete failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not delete user")
		return
	}
	response.Success(w, map[string]int64{"deletedCount": deleted})
}
