package services

import (
	"context"
	"errors"
	"fmt"

	"society-backend/internal/events"
	"society-backend/internal/models"
	"society-backend/internal/timeutil"
)

// BillingService owns the bill lifecycle: generation, edits, deletion
// and the admin mark-paid transition.
type BillingService struct {
	Bills    BillStore
	Owners   OwnerStore
	Resolver *FlatResolver
	Hub      *events.Hub
}

func NewBillingService(bills BillStore, owners OwnerStore, resolver *FlatResolver, hub *events.Hub) *BillingService {
	return &BillingService{
		Bills:    bills,
		Owners:   owners,
		Resolver: resolver,
		Hub:      hub,
	}
}

// ListBills returns every bill for admins, and the bills of the
// principal's resolved flat for members. An unresolved flat yields an
// empty list, never an error.
func (s *BillingService) ListBills(ctx context.Context, principal *models.Principal) ([]*models.Bill, error) {
	if principal.IsAdmin() {
		return s.Bills.List(ctx)
	}

	flat := s.Resolver.Resolve(ctx, principal)
	if flat == "" {
		return []*models.Bill{}, nil
	}
	return s.Bills.ListByFlat(ctx, flat)
}

// SearchBills applies the conjunctive filter set over the principal's
// visible bills.
func (s *BillingService) SearchBills(ctx context.Context, principal *models.Principal, filter models.BillFilter) ([]*models.Bill, error) {
	bills, err := s.ListBills(ctx, principal)
	if err != nil {
		return nil, err
	}
	return filter.Apply(bills), nil
}

func validateBillRequest(req *models.CreateBillRequest) error {
	if req.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	if req.Year < 1000 || req.Year > 9999 {
		return errors.New("year must be a four-digit number")
	}
	if req.Month == "" {
		return errors.New("month is required")
	}
	if _, err := timeutil.ParseInIST(timeutil.DateLayout, req.DueDate); err != nil {
		return fmt.Errorf("invalid due date: %w", err)
	}
	return nil
}

// CreateBill generates a pending bill for an owner, denormalizing the
// owner's name and flat onto the record.
func (s *BillingService) CreateBill(ctx context.Context, principal *models.Principal, req *models.CreateBillRequest) (*models.Bill, error) {
	if !principal.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	if err := validateBillRequest(req); err != nil {
		return nil, err
	}

	owner, err := s.Owners.Get(ctx, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("owner not found: %w", err)
	}

	dueDate, _ := timeutil.ParseInIST(timeutil.DateLayout, req.DueDate)
	bill := &models.Bill{
		OwnerID:    owner.ID,
		OwnerName:  owner.Name,
		FlatNumber: owner.FlatNumber,
		Amount:     req.Amount,
		Month:      req.Month,
		Year:       req.Year,
		DueDate:    dueDate,
		Status:     models.BillStatusPending,
		Remarks:    req.Remarks,
	}

	if err := s.Bills.Create(ctx, bill); err != nil {
		return nil, err
	}

	s.Hub.Publish(events.Event{
		Kind:       events.KindBillCreated,
		EntityID:   bill.ID,
		FlatNumber: bill.FlatNumber,
		OwnerName:  bill.OwnerName,
		Amount:     bill.Amount,
	})
	return bill, nil
}

// EditBill overwrites the mutable fields of an existing bill. Status and
// creation timestamp are preserved.
func (s *BillingService) EditBill(ctx context.Context, principal *models.Principal, id int, req *models.CreateBillRequest) (*models.Bill, error) {
	if !principal.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	if err := validateBillRequest(req); err != nil {
		return nil, err
	}

	bill, err := s.Bills.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("bill not found: %w", err)
	}

	owner, err := s.Owners.Get(ctx, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("owner not found: %w", err)
	}

	dueDate, _ := timeutil.ParseInIST(timeutil.DateLayout, req.DueDate)
	bill.OwnerID = owner.ID
	bill.OwnerName = owner.Name
	bill.FlatNumber = owner.FlatNumber
	bill.Amount = req.Amount
	bill.Month = req.Month
	bill.Year = req.Year
	bill.DueDate = dueDate
	bill.Remarks = req.Remarks

	if err := s.Bills.Update(ctx, bill); err != nil {
		return nil, err
	}

	s.Hub.Publish(events.Event{
		Kind:       events.KindBillUpdated,
		EntityID:   bill.ID,
		FlatNumber: bill.FlatNumber,
		OwnerName:  bill.OwnerName,
		Amount:     bill.Amount,
	})
	return bill, nil
}

// DeleteBill permanently removes a bill. A confirmation referencing the
// deleted bill remains and dangles, matching the store's non-referential
// model.
func (s *BillingService) DeleteBill(ctx context.Context, principal *models.Principal, id int) error {
	if !principal.IsAdmin() {
		return ErrNotAuthorized
	}

	bill, err := s.Bills.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("bill not found: %w", err)
	}

	if err := s.Bills.Delete(ctx, id); err != nil {
		return err
	}

	s.Hub.Publish(events.Event{
		Kind:       events.KindBillDeleted,
		EntityID:   bill.ID,
		FlatNumber: bill.FlatNumber,
		OwnerName:  bill.OwnerName,
	})
	return nil
}

// MarkPaid transitions a bill to paid from either pending or submitted
// and assigns the receipt number. Marking an already paid bill is a
// no-op returning the bill unchanged.
func (s *BillingService) MarkPaid(ctx context.Context, principal *models.Principal, id int) (*models.Bill, error) {
	if !principal.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	bill, err := s.Bills.MarkPaid(ctx, id)
	if err != nil {
		existing, getErr := s.Bills.Get(ctx, id)
		if getErr != nil {
			return nil, fmt.Errorf("bill not found: %w", getErr)
		}
		if existing.Status == models.BillStatusPaid {
			return existing, nil
		}
		return nil, err
	}

	s.Hub.Publish(events.Event{
		Kind:       events.KindBillPaid,
		EntityID:   bill.ID,
		FlatNumber: bill.FlatNumber,
		OwnerName:  bill.OwnerName,
		Amount:     bill.Amount,
	})
	return bill, nil
}
