package models

import "time"

// Confirmation review status. Empty means pending review; the only
// transition is to approved.
const ConfirmationApproved = "approved"

// PaymentConfirmation is a member's claim of having paid a specific bill
// (payment_confirmations table). Immutable after creation except for the
// review status. The bill reference is intentionally not a foreign key:
// deleting a bill may leave a dangling confirmation.
type PaymentConfirmation struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Email       string    `json:"email"`
	BillID      int       `json:"bill_id"`
	Amount      int       `json:"amount"`
	Month       string    `json:"month"`
	Year        int       `json:"year"`
	FlatNumber  string    `json:"flat_number"`
	Remarks     string    `json:"remarks"`
	Status      string    `json:"status,omitempty"` // "" or approved
	SubmittedAt time.Time `json:"submitted_at"`
}

// SubmitPaymentRequest represents the request body for submitting a payment
type SubmitPaymentRequest struct {
	BillID  int    `json:"bill_id"`
	Remarks string `json:"remarks"`
}
