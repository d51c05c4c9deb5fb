package models

import "time"

type Owner struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	FlatNumber  string    `json:"flat_number"`
	UID         string    `json:"uid,omitempty"` // external identity provider id, if linked
	IsActive    bool      `json:"is_active"`
	JoinedAt    time.Time `json:"joined_at"`
}

// CreateOwnerRequest represents the request body for registering an owner
type CreateOwnerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	FlatNumber  string `json:"flat_number"`
	UID         string `json:"uid"`
}

// UpdateOwnerRequest represents the request body for updating an owner
type UpdateOwnerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	FlatNumber  string `json:"flat_number"`
	IsActive    bool   `json:"is_active"`
}
