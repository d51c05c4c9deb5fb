package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"society-backend/internal/middleware"
	"society-backend/internal/models"
	"society-backend/internal/repositories"
	"society-backend/internal/services"
	"society-backend/pkg/utils"
)

type PaymentHandler struct {
	Service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: service}
}

// ListPendingBills returns the pending bills of the caller's flat.
func (h *PaymentHandler) ListPendingBills(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	bills, err := h.Service.ListPendingBills(r.Context(), principal)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, bills)
}

// SubmitPayment files a payment confirmation for one of the caller's
// pending bills.
func (h *PaymentHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	principal := middleware.GetPrincipal(r.Context())
	confirmation, err := h.Service.SubmitPayment(r.Context(), principal, &req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrAlreadySubmitted):
			utils.Error(w, http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrNotAuthorized):
			utils.Error(w, http.StatusForbidden, err.Error())
		default:
			utils.Error(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	utils.JSON(w, http.StatusCreated, confirmation)
}
