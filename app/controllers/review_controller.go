package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

// ReviewController serves the public testimonial list.
type ReviewController struct {
	reviews *repositories.ReviewRepository
}

func NewReviewController(reviews *repositories.ReviewRepository) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// List returns every review. Public.
func (c *ReviewController) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := c.reviews.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("reviews: list failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not list reviews")
		return
	}
	response.Success(w, reviews)
}
