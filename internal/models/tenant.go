package models

import "time"

type Tenant struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PhoneNumber   string    `json:"phone_number"`
	FlatNumber    string    `json:"flat_number"`
	OwnerID       int       `json:"owner_id"`
	OwnerName     string    `json:"owner_name"` // denormalized at creation time
	LeaseStart    time.Time `json:"lease_start"`
	LeaseEnd      time.Time `json:"lease_end"`
	RentAmount    int       `json:"rent_amount"`
	DepositAmount int       `json:"deposit_amount"`
	IsVerified    bool      `json:"is_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateTenantRequest represents the request body for registering a tenant
type CreateTenantRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	OwnerID       int    `json:"owner_id"`
	LeaseStart    string `json:"lease_start"` // YYYY-MM-DD
	LeaseEnd      string `json:"lease_end"`   // YYYY-MM-DD
	RentAmount    int    `json:"rent_amount"`
	DepositAmount int    `json:"deposit_amount"`
}
