package http

import (
	"society-backend/internal/handlers"
	"society-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	ownerHandler *handlers.OwnerHandler,
	tenantHandler *handlers.TenantHandler,
	billHandler *handlers.BillHandler,
	paymentHandler *handlers.PaymentHandler,
	confirmationHandler *handlers.ConfirmationHandler,
	dashboardHandler *handlers.DashboardHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Authenticated routes (admin and member)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)
	api.HandleFunc("/bills", billHandler.ListBills).Methods("GET")
	api.HandleFunc("/bills/pending", paymentHandler.ListPendingBills).Methods("GET")
	api.HandleFunc("/bills/{id}/receipt", billHandler.Receipt).Methods("GET")
	api.HandleFunc("/payments", paymentHandler.SubmitPayment).Methods("POST")
	api.HandleFunc("/confirmations", confirmationHandler.ListConfirmations).Methods("GET")
	api.HandleFunc("/dashboard/stats", dashboardHandler.Stats).Methods("GET")
	api.HandleFunc("/dashboard/activities", dashboardHandler.RecentActivities).Methods("GET")
	api.HandleFunc("/dashboard/live", dashboardHandler.Live).Methods("GET")

	// Admin-only routes
	admin := r.PathPrefix("/api").Subrouter()
	admin.Use(authMiddleware.Authenticate, authMiddleware.RequireAdmin)
	admin.HandleFunc("/bills", billHandler.CreateBill).Methods("POST")
	admin.HandleFunc("/bills/{id}", billHandler.EditBill).Methods("PUT")
	admin.HandleFunc("/bills/{id}", billHandler.DeleteBill).Methods("DELETE")
	admin.HandleFunc("/bills/{id}/paid", billHandler.MarkPaid).Methods("POST")
	admin.HandleFunc("/confirmations/{id}/approve", confirmationHandler.ApproveConfirmation).Methods("POST")

	admin.HandleFunc("/owners", ownerHandler.ListOwners).Methods("GET")
	admin.HandleFunc("/owners", ownerHandler.CreateOwner).Methods("POST")
	admin.HandleFunc("/owners/{id}", ownerHandler.GetOwner).Methods("GET")
	admin.HandleFunc("/owners/{id}", ownerHandler.UpdateOwner).Methods("PUT")
	admin.HandleFunc("/owners/{id}", ownerHandler.DeleteOwner).Methods("DELETE")

	admin.HandleFunc("/tenants", tenantHandler.ListTenants).Methods("GET")
	admin.HandleFunc("/tenants", tenantHandler.CreateTenant).Methods("POST")
	admin.HandleFunc("/tenants/{id}", tenantHandler.DeleteTenant).Methods("DELETE")

	return r
}
