package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"society-backend/internal/auth"
	"society-backend/internal/cache"
	"society-backend/internal/config"
	"society-backend/internal/database"
	"society-backend/internal/db"
	"society-backend/internal/events"
	"society-backend/internal/handlers"
	"society-backend/internal/health"
	h "society-backend/internal/http"
	"society-backend/internal/middleware"
	"society-backend/internal/repositories"
	"society-backend/internal/services"
	"society-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()
	log.Println("[DB] Connected to PostgreSQL")

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (login will use bcrypt only)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations (embedded, standalone binary operation)
	migrator := database.NewMigrator(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	ownerRepo := repositories.NewOwnerRepository(pool)
	tenantRepo := repositories.NewTenantRepository(pool)
	billRepo := repositories.NewBillRepository(pool)
	confirmationRepo := repositories.NewConfirmationRepository(pool)

	// Event hub fans record changes out to the dashboard and websockets
	hub := events.NewHub()

	// Initialize services
	resolver := services.NewFlatResolver(ownerRepo, userRepo)
	userService := services.NewUserService(userRepo, jwtManager)
	ownerService := services.NewOwnerService(ownerRepo, hub)
	tenantService := services.NewTenantService(tenantRepo, ownerRepo)
	billingService := services.NewBillingService(billRepo, ownerRepo, resolver, hub)
	paymentService := services.NewPaymentService(billRepo, confirmationRepo, resolver, hub)
	reviewService := services.NewReviewService(confirmationRepo, resolver, hub)
	receiptService := services.NewReceiptService(billRepo, resolver, cfg.Society.Name)

	dashboardService := services.NewDashboardService(billRepo, ownerRepo, userRepo, hub)
	dashboardService.Start()
	defer dashboardService.Stop()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	ownerHandler := handlers.NewOwnerHandler(ownerService)
	tenantHandler := handlers.NewTenantHandler(tenantService)
	billHandler := handlers.NewBillHandler(billingService, receiptService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	confirmationHandler := handlers.NewConfirmationHandler(reviewService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, hub)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		ownerHandler,
		tenantHandler,
		billHandler,
		paymentHandler,
		confirmationHandler,
		dashboardHandler,
		healthHandler,
		authMiddleware,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
