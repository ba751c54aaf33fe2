package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/bistro/pkg/auth"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

// AuthController mints the bearer tokens the guarded routes consume.
type AuthController struct{}

func NewAuthController() *AuthController {
	return &AuthController{}
}

// IssueToken signs a short-lived token for the given email. Identity is
// asserted by the frontend's auth provider; the token only proves the
// email claim, roles are looked up per request.
func (c *AuthController) IssueToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		response.Error(w, http.StatusBadRequest, "email is required")
		return
	}

	token, err := auth.GenerateToken(body.Email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("auth: token generation failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	response.Success(w, map[string]string{"token": token})
}
