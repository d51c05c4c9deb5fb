package services

import (
	"context"
	"errors"
	"fmt"

	"society-backend/internal/events"
	"society-backend/internal/metrics"
	"society-backend/internal/models"
)

// PaymentService lets a member turn one of their pending bills into a
// submitted confirmation.
type PaymentService struct {
	Bills         BillStore
	Confirmations ConfirmationStore
	Resolver      *FlatResolver
	Hub           *events.Hub
}

func NewPaymentService(bills BillStore, confirmations ConfirmationStore, resolver *FlatResolver, hub *events.Hub) *PaymentService {
	return &PaymentService{
		Bills:         bills,
		Confirmations: confirmations,
		Resolver:      resolver,
		Hub:           hub,
	}
}

// ListPendingBills returns the pending bills for the principal's
// resolved flat. No flat, no bills.
func (s *PaymentService) ListPendingBills(ctx context.Context, principal *models.Principal) ([]*models.Bill, error) {
	flat := s.Resolver.Resolve(ctx, principal)
	if flat == "" {
		return []*models.Bill{}, nil
	}
	return s.Bills.ListByFlatAndStatus(ctx, flat, models.BillStatusPending)
}

// SubmitPayment records a member's payment claim. The confirmation
// insert and the bill status change commit together, and a retry of the
// same (user, bill) pair is rejected rather than duplicated.
func (s *PaymentService) SubmitPayment(ctx context.Context, principal *models.Principal, req *models.SubmitPaymentRequest) (*models.PaymentConfirmation, error) {
	if principal == nil {
		return nil, errors.New("no authenticated user")
	}
	if principal.IsAdmin() {
		// Admins settle bills through mark-paid, not self-reported confirmations.
		return nil, ErrNotAuthorized
	}

	flat := s.Resolver.Resolve(ctx, principal)
	if flat == "" {
		return nil, errors.New("no flat registered for this account")
	}

	bill, err := s.Bills.Get(ctx, req.BillID)
	if err != nil || bill.FlatNumber != flat {
		// A bill for someone else's flat reads the same as no bill at all.
		metrics.PaymentSubmissionsTotal.WithLabelValues("rejected").Inc()
		return nil, errors.New("bill not found")
	}
	if bill.Status != models.BillStatusPending {
		metrics.PaymentSubmissionsTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("bill is %s, only pending bills can be submitted", bill.Status)
	}

	confirmation := &models.PaymentConfirmation{
		UserID:     principal.ID,
		Email:      principal.Email,
		BillID:     bill.ID,
		Amount:     bill.Amount,
		Month:      bill.Month,
		Year:       bill.Year,
		FlatNumber: bill.FlatNumber,
		Remarks:    req.Remarks,
	}

	if err := s.Confirmations.SubmitPayment(ctx, confirmation); err != nil {
		metrics.PaymentSubmissionsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.PaymentSubmissionsTotal.WithLabelValues("accepted").Inc()

	s.Hub.Publish(events.Event{
		Kind:       events.KindBillSubmitted,
		EntityID:   bill.ID,
		FlatNumber: bill.FlatNumber,
		OwnerName:  bill.OwnerName,
		Amount:     bill.Amount,
	})
	s.Hub.Publish(events.Event{
		Kind:       events.KindConfirmationCreated,
		EntityID:   confirmation.ID,
		FlatNumber: confirmation.FlatNumber,
		Amount:     confirmation.Amount,
	})
	return confirmation, nil
}
