package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"society-backend/internal/middleware"
	"society-backend/internal/models"
	"society-backend/internal/services"
	"society-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type BillHandler struct {
	Billing  *services.BillingService
	Receipts *services.ReceiptService
}

func NewBillHandler(billing *services.BillingService, receipts *services.ReceiptService) *BillHandler {
	return &BillHandler{Billing: billing, Receipts: receipts}
}

func serviceError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrNotAuthorized) {
		utils.Error(w, http.StatusForbidden, "Admin access required")
		return
	}
	utils.Error(w, http.StatusBadRequest, err.Error())
}

// ListBills returns the principal's visible bills, filtered by the
// optional query parameters.
func (h *BillHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	q := r.URL.Query()
	filter := models.BillFilter{
		Search: q.Get("search"),
		Month:  q.Get("month"),
		Status: q.Get("status"),
	}
	filter.Year, _ = strconv.Atoi(q.Get("year"))
	filter.MinAmount, _ = strconv.Atoi(q.Get("min_amount"))
	filter.MaxAmount, _ = strconv.Atoi(q.Get("max_amount"))

	bills, err := h.Billing.SearchBills(r.Context(), principal, filter)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, bills)
}

func (h *BillHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	principal := middleware.GetPrincipal(r.Context())
	bill, err := h.Billing.CreateBill(r.Context(), principal, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, bill)
}

func (h *BillHandler) EditBill(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid bill ID")
		return
	}

	var req models.CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	principal := middleware.GetPrincipal(r.Context())
	bill, err := h.Billing.EditBill(r.Context(), principal, id, &req)
	if err != nil {
		serviceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, bill)
}

// DeleteBill permanently removes a bill. The client must send
// X-Confirm-Delete: yes, the API's version of the "are you sure" dialog.
func (h *BillHandler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid bill ID")
		return
	}

	if r.Header.Get("X-Confirm-Delete") != "yes" {
		utils.Error(w, http.StatusPreconditionRequired, "Deletion requires X-Confirm-Delete: yes")
		return
	}

	principal := middleware.GetPrincipal(r.Context())
	if err := h.Billing.DeleteBill(r.Context(), principal, id); err != nil {
		serviceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Bill deleted"})
}

func (h *BillHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid bill ID")
		return
	}

	principal := middleware.GetPrincipal(r.Context())
	bill, err := h.Billing.MarkPaid(r.Context(), principal, id)
	if err != nil {
		serviceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, bill)
}

// Receipt streams the PDF receipt of a paid bill.
func (h *BillHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid bill ID")
		return
	}

	principal := middleware.GetPrincipal(r.Context())
	pdf, err := h.Receipts.ReceiptPDF(r.Context(), principal, id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline; filename=receipt.pdf")
	w.Write(pdf)
}
