package services

import (
	"bytes"
	"context"
	"testing"

	"society-backend/internal/models"
)

func TestReceiptPDF(t *testing.T) {
	ctx := context.Background()
	f := newBillingFixture()
	owner := f.addOwner(t, "Rakesh Sharma", "rakesh@example.com", "A-101")
	f.addOwner(t, "Priya Nair", "priya@example.com", "B-204")
	bill := f.addBill(t, owner, 2500, "January", 2026)

	resolver := NewFlatResolver(f.owners, f.users)
	svc := NewReceiptService(f.bills, resolver, "Green Meadows Residency")

	t.Run("unpaid bill has no receipt", func(t *testing.T) {
		if _, err := svc.ReceiptPDF(ctx, adminPrincipal(), bill.ID); err == nil {
			t.Error("receipt issued for an unpaid bill")
		}
	})

	if _, err := f.bills.MarkPaid(ctx, bill.ID); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}

	t.Run("admin gets a PDF for any paid bill", func(t *testing.T) {
		pdf, err := svc.ReceiptPDF(ctx, adminPrincipal(), bill.ID)
		if err != nil {
			t.Fatalf("ReceiptPDF: %v", err)
		}
		if !bytes.HasPrefix(pdf, []byte("%PDF")) {
			t.Error("output is not a PDF document")
		}
	})

	t.Run("member gets their own receipt", func(t *testing.T) {
		if _, err := svc.ReceiptPDF(ctx, memberPrincipal("rakesh@example.com"), bill.ID); err != nil {
			t.Fatalf("ReceiptPDF: %v", err)
		}
	})

	t.Run("another flat's receipt reads as not found", func(t *testing.T) {
		if _, err := svc.ReceiptPDF(ctx, memberPrincipal("priya@example.com"), bill.ID); err == nil {
			t.Error("receipt leaked across flats")
		}
	})

	t.Run("missing bill is not found", func(t *testing.T) {
		if _, err := svc.ReceiptPDF(ctx, adminPrincipal(), 999); err == nil {
			t.Error("expected not-found error")
		}
	})
}

func TestRegisterTenant(t *testing.T) {
	ctx := context.Background()
	owners := newMemOwners()
	tenants := newMemTenants()
	svc := NewTenantService(tenants, owners)

	owner := &models.Owner{Name: "Rakesh Sharma", Email: "rakesh@example.com", FlatNumber: "A-101"}
	if err := owners.Create(ctx, owner); err != nil {
		t.Fatalf("create owner: %v", err)
	}

	t.Run("denormalizes the owner's flat and name", func(t *testing.T) {
		tenant, err := svc.RegisterTenant(ctx, &models.CreateTenantRequest{
			Name:       "Anil Kumar",
			Email:      "anil@example.com",
			OwnerID:    owner.ID,
			LeaseStart: "2026-01-01",
			LeaseEnd:   "2026-12-31",
			RentAmount: 15000,
		})
		if err != nil {
			t.Fatalf("RegisterTenant: %v", err)
		}
		if tenant.FlatNumber != "A-101" || tenant.OwnerName != "Rakesh Sharma" {
			t.Errorf("owner data not denormalized: %+v", tenant)
		}
	})

	t.Run("unknown owner is refused", func(t *testing.T) {
		_, err := svc.RegisterTenant(ctx, &models.CreateTenantRequest{
			Name:       "Ghost",
			Email:      "ghost@example.com",
			OwnerID:    999,
			LeaseStart: "2026-01-01",
			LeaseEnd:   "2026-12-31",
		})
		if err == nil {
			t.Error("expected owner-not-found error")
		}
	})

	t.Run("bad lease dates are refused", func(t *testing.T) {
		_, err := svc.RegisterTenant(ctx, &models.CreateTenantRequest{
			Name:       "Anil Kumar",
			Email:      "anil@example.com",
			OwnerID:    owner.ID,
			LeaseStart: "01/01/2026",
			LeaseEnd:   "2026-12-31",
		})
		if err == nil {
			t.Error("expected lease date error")
		}
	})
}
