package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bistro/pkg/response"
)

// HealthController answers liveness probes.
type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

// Root confirms the API is up.
func (c *HealthController) Root(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{"message": "bistro boss is sitting"})
}
