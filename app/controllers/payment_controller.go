package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/app/services"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"github.com/shashiranjanraj/bistro/pkg/payment"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

// PaymentController handles intent creation, settlement, and the
// customer's payment history.
type PaymentController struct {
	settlement *services.SettlementService
	ledger     *repositories.PaymentRepository
}

func NewPaymentController(settlement *services.SettlementService, ledger *repositories.PaymentRepository) *PaymentController {
	return &PaymentController{settlement: settlement, ledger: ledger}
}

// CreateIntent asks the gateway for a charge intent over the given decimal
// price and returns the client secret the frontend completes the charge
// with.
func (c *PaymentController) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	secret, err := c.settlement.CreateIntent(r.Context(), body.Price)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidAmount) {
			response.Error(w, http.StatusBadRequest, "invalid price")
			return
		}
		logger.WithCtx(r.Context()).Error("payments: intent creation failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not create payment intent")
		return
	}

	response.Success(w, map[string]string{"clientSecret": secret})
}

// History lists the settled payments for {email}. Callers may only read
// their own history.
func (c *PaymentController) History(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	caller, ok := middleware.EmailFromCtx(r.Context())
	if !ok || caller != email {
		response.Forbidden(w)
		return
	}

	payments, err := c.ledger.FindByEmail(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("payments: history failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not list payments")
		return
	}
	response.Success(w, payments)
}

// Settle records the completed charge in the ledger and clears the paid
// cart lines.
func (c *PaymentController) Settle(w http.ResponseWriter, r *http.Request) {
	var p models.Payment
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Email == "" {
		response.Error(w, http.StatusBadRequest, "invalid payment")
		return
	}

	// When the request carries a token, the settlement is recorded
	// against the authenticated caller rather than the body's email.
	if caller, ok := middleware.EmailFromCtx(r.Context()); ok {
		p.Email = caller
	}

	result, err := c.settlement.Settle(r.Context(), &p)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCartID) {
			response.Error(w, http.StatusBadRequest, "invalid cart id")
			return
		}
		logger.WithCtx(r.Context()).Error("payments: settlement failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not record payment")
		return
	}

	response.Created(w, result)
}
