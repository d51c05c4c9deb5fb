package handlers

import (
	"net/http"
	"strconv"

	"society-backend/internal/middleware"
	"society-backend/internal/services"
	"society-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ConfirmationHandler struct {
	Service *services.ReviewService
}

func NewConfirmationHandler(service *services.ReviewService) *ConfirmationHandler {
	return &ConfirmationHandler{Service: service}
}

// ListConfirmations returns the caller's visible confirmations, newest
// first.
func (h *ConfirmationHandler) ListConfirmations(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	confirmations, err := h.Service.ListConfirmations(r.Context(), principal)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, confirmations)
}

// ApproveConfirmation marks a confirmation approved. The referenced
// bill is untouched; marking it paid is a separate action.
func (h *ConfirmationHandler) ApproveConfirmation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid confirmation ID")
		return
	}

	principal := middleware.GetPrincipal(r.Context())
	confirmation, err := h.Service.ApproveConfirmation(r.Context(), principal, id)
	if err != nil {
		serviceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, confirmation)
}
