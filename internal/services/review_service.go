package services

import (
	"context"
	"fmt"

	"society-backend/internal/events"
	"society-backend/internal/models"
)

// ReviewService lists payment confirmations and lets an admin approve
// them. Approving a confirmation never changes the referenced bill:
// marking the bill paid stays a separate, deliberate admin action.
type ReviewService struct {
	Confirmations ConfirmationStore
	Resolver      *FlatResolver
	Hub           *events.Hub
}

func NewReviewService(confirmations ConfirmationStore, resolver *FlatResolver, hub *events.Hub) *ReviewService {
	return &ReviewService{
		Confirmations: confirmations,
		Resolver:      resolver,
		Hub:           hub,
	}
}

// ListConfirmations returns all confirmations for admins, newest first,
// and only the principal's own flat's confirmations for members.
func (s *ReviewService) ListConfirmations(ctx context.Context, principal *models.Principal) ([]*models.PaymentConfirmation, error) {
	if principal.IsAdmin() {
		return s.Confirmations.List(ctx)
	}

	flat := s.Resolver.Resolve(ctx, principal)
	if flat == "" {
		return []*models.PaymentConfirmation{}, nil
	}
	return s.Confirmations.ListByFlat(ctx, flat)
}

// ApproveConfirmation marks a confirmation approved. The transition is
// monotonic; approving an approved confirmation is a harmless repeat.
func (s *ReviewService) ApproveConfirmation(ctx context.Context, principal *models.Principal, id int) (*models.PaymentConfirmation, error) {
	if !principal.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	confirmation, err := s.Confirmations.Approve(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("confirmation not found: %w", err)
	}

	s.Hub.Publish(events.Event{
		Kind:       events.KindConfirmationApproved,
		EntityID:   confirmation.ID,
		FlatNumber: confirmation.FlatNumber,
		Amount:     confirmation.Amount,
	})
	return confirmation, nil
}
