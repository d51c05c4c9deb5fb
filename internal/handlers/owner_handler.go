package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"society-backend/internal/models"
	"society-backend/internal/services"
	"society-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type OwnerHandler struct {
	Service *services.OwnerService
}

func NewOwnerHandler(service *services.OwnerService) *OwnerHandler {
	return &OwnerHandler{Service: service}
}

func (h *OwnerHandler) ListOwners(w http.ResponseWriter, r *http.Request) {
	owners, err := h.Service.ListOwners(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, owners)
}

func (h *OwnerHandler) CreateOwner(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	owner, err := h.Service.RegisterOwner(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, owner)
}

func (h *OwnerHandler) GetOwner(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid owner ID")
		return
	}

	owner, err := h.Service.GetOwner(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Owner not found")
		return
	}
	utils.JSON(w, http.StatusOK, owner)
}

func (h *OwnerHandler) UpdateOwner(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid owner ID")
		return
	}

	var req models.UpdateOwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	owner, err := h.Service.UpdateOwner(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, owner)
}

func (h *OwnerHandler) DeleteOwner(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid owner ID")
		return
	}

	if err := h.Service.DeleteOwner(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Owner deleted"})
}
