package models

import (
	"strings"
	"time"
)

// Bill lifecycle statuses. A bill only ever moves forward:
// pending -> submitted -> paid, or pending -> paid directly.
const (
	BillStatusPending   = "pending"
	BillStatusSubmitted = "submitted"
	BillStatusPaid      = "paid"

	// BillStatusOverdue is part of the shared vocabulary but is never
	// assigned by any operation. Kept so stored data using it still scans.
	BillStatusOverdue = "overdue"
)

// Bill is a per-flat, per-period maintenance charge (maintenance_records table).
// Amounts are whole rupees.
type Bill struct {
	ID            int        `json:"id"`
	OwnerID       int        `json:"owner_id"`
	OwnerName     string     `json:"owner_name"` // denormalized at creation time
	FlatNumber    string     `json:"flat_number"`
	Amount        int        `json:"amount"`
	Month         string     `json:"month"`
	Year          int        `json:"year"`
	DueDate       time.Time  `json:"due_date"`
	Status        string     `json:"status"`
	Remarks       string     `json:"remarks,omitempty"`
	ReceiptNumber string     `json:"receipt_number,omitempty"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	PaidDate      *time.Time `json:"paid_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CanTransition reports whether a bill may move from its current status
// to the given one. Backward moves are never allowed.
func (b *Bill) CanTransition(to string) bool {
	switch b.Status {
	case BillStatusPending:
		return to == BillStatusSubmitted || to == BillStatusPaid
	case BillStatusSubmitted:
		return to == BillStatusPaid
	default:
		return false
	}
}

// BillAggregates holds the counters derived from the full bill set.
type BillAggregates struct {
	TotalCollected int            `json:"total_collected"` // sum over paid bills
	PendingCount   int            `json:"pending_count"`   // bills with status != paid
	StatusCounts   map[string]int `json:"status_counts"`
}

// CreateBillRequest represents the request body for generating a bill
type CreateBillRequest struct {
	OwnerID int    `json:"owner_id"`
	Amount  int    `json:"amount"`
	Month   string `json:"month"`
	Year    int    `json:"year"`
	DueDate string `json:"due_date"` // YYYY-MM-DD
	Remarks string `json:"remarks"`
}

// BillFilter holds the conjunctive search filters for the admin bill list.
// Zero values mean "no constraint".
type BillFilter struct {
	Search    string `json:"search"` // substring over "flat owner", case-insensitive
	Month     string `json:"month"`  // equality, case-insensitive
	Year      int    `json:"year"`
	Status    string `json:"status"`
	MinAmount int    `json:"min_amount"`
	MaxAmount int    `json:"max_amount"` // 0 means unbounded
}

// Matches reports whether the bill passes every set filter (AND semantics).
func (f BillFilter) Matches(b *Bill) bool {
	if f.Search != "" {
		haystack := strings.ToLower(b.FlatNumber + " " + b.OwnerName)
		if !strings.Contains(haystack, strings.ToLower(f.Search)) {
			return false
		}
	}
	if f.Month != "" && !strings.EqualFold(f.Month, b.Month) {
		return false
	}
	if f.Year != 0 && f.Year != b.Year {
		return false
	}
	if f.Status != "" && f.Status != b.Status {
		return false
	}
	if f.MinAmount != 0 && b.Amount < f.MinAmount {
		return false
	}
	if f.MaxAmount != 0 && b.Amount > f.MaxAmount {
		return false
	}
	return true
}

// Apply filters a bill list in memory, preserving order.
func (f BillFilter) Apply(bills []*Bill) []*Bill {
	out := make([]*Bill, 0, len(bills))
	for _, b := range bills {
		if f.Matches(b) {
			out = append(out, b)
		}
	}
	return out
}
