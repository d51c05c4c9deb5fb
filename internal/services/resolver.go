package services

import (
	"context"

	"society-backend/internal/models"
)

// FlatResolver maps a principal to the flat whose bills and
// confirmations they may see. Every call site goes through this one
// lookup so all views agree on the answer.
type FlatResolver struct {
	Owners OwnerStore
	Users  UserStore
}

func NewFlatResolver(owners OwnerStore, users UserStore) *FlatResolver {
	return &FlatResolver{Owners: owners, Users: users}
}

// Resolve returns the principal's flat number, or "" when it cannot be
// determined. An unresolvable flat is not an error: callers render an
// empty view rather than leak whether records exist.
func (r *FlatResolver) Resolve(ctx context.Context, principal *models.Principal) string {
	if principal == nil || principal.Email == "" {
		return ""
	}

	if owner, err := r.Owners.GetByEmail(ctx, principal.Email); err == nil && owner != nil {
		return owner.FlatNumber
	}

	// Fall back to the flat recorded on the user account (tenants and
	// family members have no owner row of their own).
	if user, err := r.Users.GetByEmail(ctx, principal.Email); err == nil && user != nil {
		return user.FlatNumber
	}

	return ""
}
