package services

import (
	"context"
	"errors"
	"testing"

	"society-backend/internal/events"
	"society-backend/internal/models"
)

type billingFixture struct {
	bills   *memBills
	owners  *memOwners
	users   *memUsers
	service *BillingService
}

func newBillingFixture() *billingFixture {
	bills := newMemBills()
	owners := newMemOwners()
	users := newMemUsers()
	resolver := NewFlatResolver(owners, users)
	return &billingFixture{
		bills:   bills,
		owners:  owners,
		users:   users,
		service: NewBillingService(bills, owners, resolver, events.NewHub()),
	}
}

func (f *billingFixture) addOwner(t *testing.T, name, email, flat string) *models.Owner {
	t.Helper()
	o := &models.Owner{Name: name, Email: email, FlatNumber: flat, IsActive: true}
	if err := f.owners.Create(context.Background(), o); err != nil {
		t.Fatalf("create owner: %v", err)
	}
	return o
}

func (f *billingFixture) addBill(t *testing.T, owner *models.Owner, amount int, month string, year int) *models.Bill {
	t.Helper()
	b := &models.Bill{
		OwnerID:    owner.ID,
		OwnerName:  owner.Name,
		FlatNumber: owner.FlatNumber,
		Amount:     amount,
		Month:      month,
		Year:       year,
		Status:     models.BillStatusPending,
	}
	if err := f.bills.Create(context.Background(), b); err != nil {
		t.Fatalf("create bill: %v", err)
	}
	return b
}

func adminPrincipal() *models.Principal {
	return &models.Principal{ID: 1, Email: "admin@society.test", Name: "Admin", Role: models.RoleAdmin}
}

func memberPrincipal(email string) *models.Principal {
	return &models.Principal{ID: 2, Email: email, Name: "Member", Role: models.RoleMember}
}

func TestListBills(t *testing.T) {
	ctx := context.Background()
	f := newBillingFixture()
	rakesh := f.addOwner(t, "Rakesh Sharma", "rakesh@example.com", "A-101")
	priya := f.addOwner(t, "Priya Nair", "priya@example.com", "B-204")
	f.addBill(t, rakesh, 2500, "January", 2026)
	f.addBill(t, priya, 2500, "January", 2026)
	f.addBill(t, rakesh, 2500, "February", 2026)

	t.Run("admin sees every bill", func(t *testing.T) {
		bills, err := f.service.ListBills(ctx, adminPrincipal())
		if err != nil {
			t.Fatalf("ListBills: %v", err)
		}
		if len(bills) != 3 {
			t.Fatalf("got %d bills, want 3", len(bills))
		}
	})

	t.Run("member sees only their flat", func(t *testing.T) {
		bills, err := f.service.ListBills(ctx, memberPrincipal("rakesh@example.com"))
		if err != nil {
			t.Fatalf("ListBills: %v", err)
		}
		if len(bills) != 2 {
			t.Fatalf("got %d bills, want 2", len(bills))
		}
		for _, b := range bills {
			if b.FlatNumber != "A-101" {
				t.Errorf("bill %d belongs to flat %s", b.ID, b.FlatNumber)
			}
		}
	})

	t.Run("unresolvable flat yields empty list", func(t *testing.T) {
		bills, err := f.service.ListBills(ctx, memberPrincipal("stranger@example.com"))
		if err != nil {
			t.Fatalf("ListBills: %v", err)
		}
		if len(bills) != 0 {
			t.Fatalf("got %d bills, want 0", len(bills))
		}
	})

	t.Run("member resolved through user flat number", func(t *testing.T) {
		u := &models.User{Name: "Tenant", Email: "tenant@example.com", Role: models.RoleMember, FlatNumber: "B-204"}
		if err := f.users.Create(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
		bills, err := f.service.ListBills(ctx, memberPrincipal("tenant@example.com"))
		if err != nil {
			t.Fatalf("ListBills: %v", err)
		}
		if len(bills) != 1 || bills[0].FlatNumber != "B-204" {
			t.Fatalf("got %d bills, want the single B-204 bill", len(bills))
		}
	})
}

func TestSearchBills(t *testing.T) {
	ctx := context.Background()
	f := newBillingFixture()
	rakesh := f.addOwner(t, "Rakesh Sharma", "rakesh@example.com", "A-101")
	priya := f.addOwner(t, "Priya Nair", "priya@example.com", "B-204")
	f.addBill(t, rakesh, 2500, "January", 2026)
	f.addBill(t, priya, 3000, "January", 2026)
	f.addBill(t, rakesh, 2500, "February", 2026)

	t.Run("search matches owner name case-insensitively", func(t *testing.T) {
		bills, err := f.service.SearchBills(ctx, adminPrincipal(), models.BillFilter{Search: "priya"})
		if err != nil {
			t.Fatalf("SearchBills: %v", err)
		}
		if len(bills) != 1 || bills[0].OwnerName != "Priya Nair" {
			t.Fatalf("got %d bills, want only Priya's", len(bills))
		}
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		bills, err := f.service.SearchBills(ctx, adminPrincipal(), models.BillFilter{
			Search: "a-101",
			Month:  "january",
		})
		if err != nil {
			t.Fatalf("SearchBills: %v", err)
		}
		if len(bills) != 1 {
			t.Fatalf("got %d bills, want 1", len(bills))
		}
		if bills[0].Month != "January" || bills[0].FlatNumber != "A-101" {
			t.Fatalf("wrong bill matched: %+v", bills[0])
		}
	})

	t.Run("amount range excludes outliers", func(t *testing.T) {
		bills, err := f.service.SearchBills(ctx, adminPrincipal(), models.BillFilter{MinAmount: 2600})
		if err != nil {
			t.Fatalf("SearchBills: %v", err)
		}
		if len(bills) != 1 || bills[0].Amount != 3000 {
			t.Fatalf("got %d bills, want the single 3000 bill", len(bills))
		}
	})

	t.Run("member search stays scoped to their flat", func(t *testing.T) {
		bills, err := f.service.SearchBills(ctx, memberPrincipal("rakesh@example.com"), models.BillFilter{Search: "priya"})
		if err != nil {
			t.Fatalf("SearchBills: %v", err)
		}
		if len(bills) != 0 {
			t.Fatalf("member matched another flat's bills: %d", len(bills))
		}
	})
}

func TestCreateBill(t *testing.T) {
	ctx := context.Background()
	f := newBillingFixture()
	owner := f.addOwner(t, "Rakesh Sharma", "rakesh@example.com", "A-101")

	req := &models.CreateBillRequest{
		OwnerID: owner.ID,
		Amount:  2500,
		Month:   "March",
		Year:    2026,
		DueDate: "2026-03-10",
	}

	t.Run("member is refused", func(t *testing.T) {
		if _, err := f.service.CreateBill(ctx, memberPrincipal("rakesh@example.com"), req); !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("got %v, want ErrNotAuthorized", err)
		}
	})

	t.Run("admin creates a pending bill with denormalized owner data", func(t *testing.T) {
		bill, err := f.service.CreateBill(ctx, adminPrincipal(), req)
		if err != nil {
			t.Fatalf("CreateBill: %v", err)
		}
		if bill.Status != models.BillStatusPending {
			t.Errorf("status = %s, want pending", bill.Status)
		}
		if bill.OwnerName != "Rakesh Sharma" || bill.FlatNumber != "A-101" {
			t.Errorf("owner data not denormalized: %+v", bill)
		}
		if bill.ID == 0 {
			t.Error("bill not assigned an id")
		}
	})

	t.Run("rejects invalid requests", func(t *testing.T) {
		cases := []struct {
			name string
			req  models.CreateBillRequest
		}{
			{"zero amount", models.CreateBillRequest{OwnerID: owner.ID, Month: "March", Year: 2026, DueDate: "2026-03-10"}},
			{"negative amount", models.CreateBillRequest{OwnerID: owner.ID, Amount: -100, Month: "March", Year: 2026, DueDate: "2026-03-10"}},
			{"bad year", models.CreateBillRequest{OwnerID: owner.ID, Amount: 2500, Month: "March", Year: 26, DueDate: "2026-03-10"}},
			{"missing month", models.CreateBillRequest{OwnerID: owner.ID, Amount: 2500, Year: 2026, DueDate: "2026-03-10"}},
			{"bad due date", models.CreateBillRequest{OwnerID: owner.ID, Amount: 2500, Month: "March", Year: 2026, DueDate: "10/03/2026"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if _, err := f.service.CreateBill(ctx, adminPrincipal(), &tc.req); err == nil {
					t.Error("expected validation error")
				}
			})
		}
	})

	t.Run("unknown owner is refused", func(t *testing.T) {
		bad := *req
		bad.OwnerID = 999
		if _, err := f.service.CreateBill(ctx, adminPrincipal(), &bad); err == nil {
			t.Error("expected owner-not-found error")
		}
	})
}

func TestEditBill(t *testing.T) {
	ctx := context.Background()
	f := newBillingFixture()
	owner := f.addOwner(t, "Rakesh Sharma", "rakesh@example.com", "A-101")
	bill := f.addBill(t, owner, 2500, "January", 2026)

	paid, err := f.bills.MarkPaid(ctx, bill.ID)
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}

	req := &models.CreateBillRequest{
		OwnerID: owner.ID,
		Amount:  2800,
		Month:   "January",
		Year:    2026,
		DueDate: "2026-01-15",
		Remarks: "revised rate",
	}
	edited, err := f.service.EditBill(ctx, adminPrincipal(), bill.ID, req)
	if err != nil {
		t.Fatalf("EditBill: %v", err)
	}

	if edited.Amount != 2800 || edited.Remarks != "revised rate" {
		t.Errorf("edit not applied: %+v", edited)
	}
	if edited.Status != models.BillStatusPaid {
		t.Errorf("status changed by edit: %s", edited.Status)
	}
	if edited.ReceiptNumber != paid.ReceiptNumber {
		t.Errorf("receipt number changed by edit: %s", edited.ReceiptNumber)
	}

	if _, err := f.service.EditBill(ctx, memberPrincipal("rakesh@example.com"), bill.ID, req); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("member edit got %v, want ErrNotAuthorized", err)
	}
}

func TestDeleteBill(t *testing.T) {
	ctx := context.Background()
	f := newBillingFixture()
	owner := f.addOwner(t, "Rakesh Sharma", "rakesh@example.com", "A-101")
	bill := f.addBill(t, owner, 2500, "January", 2026)

	if err := f.service.DeleteBill(ctx, memberPrincipal("rakesh@example.com"), bill.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("member delete got %v, want ErrNotAuthorized", err)
	}

	if err := f.service.DeleteBill(ctx, adminPrincipal(), bill.ID); err != nil {
		t.Fatalf("DeleteBill: %v", err)
	}
	if _, err := f.bills.Get(ctx, bill.ID); err == nil {
		t.Error("bill still present after delete")
	}

	if err := f.service.DeleteBill(ctx, adminPrincipal(), bill.ID); err == nil {
		t.Error("deleting a missing bill should fail")
	}
}

func TestMarkPaid(t *testing.T) {
	ctx := context.Background()
	f := newBillingFixture()
	owner := f.addOwner(t, "Rakesh Sharma", "rakesh@example.com", "A-101")

	t.Run("pending bill becomes paid with a receipt", func(t *testing.T) {
		bill := f.addBill(t, owner, 2500, "January", 2026)
		paid, err := f.service.MarkPaid(ctx, adminPrincipal(), bill.ID)
		if err != nil {
			t.Fatalf("MarkPaid: %v", err)
		}
		if paid.Status != models.BillStatusPaid {
			t.Errorf("status = %s, want paid", paid.Status)
		}
		if paid.ReceiptNumber == "" {
			t.Error("no receipt number assigned")
		}
		if paid.PaidDate == nil {
			t.Error("no paid date recorded")
		}
	})

	t.Run("repeat mark-paid is a no-op", func(t *testing.T) {
		bill := f.addBill(t, owner, 2500, "February", 2026)
		first, err := f.service.MarkPaid(ctx, adminPrincipal(), bill.ID)
		if err != nil {
			t.Fatalf("first MarkPaid: %v", err)
		}
		second, err := f.service.MarkPaid(ctx, adminPrincipal(), bill.ID)
		if err != nil {
			t.Fatalf("second MarkPaid: %v", err)
		}
		if second.ReceiptNumber != first.ReceiptNumber {
			t.Errorf("receipt changed on repeat: %s vs %s", second.ReceiptNumber, first.ReceiptNumber)
		}
	})

	t.Run("member is refused", func(t *testing.T) {
		bill := f.addBill(t, owner, 2500, "March", 2026)
		if _, err := f.service.MarkPaid(ctx, memberPrincipal("rakesh@example.com"), bill.ID); !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("got %v, want ErrNotAuthorized", err)
		}
	})

	t.Run("missing bill is an error", func(t *testing.T) {
		if _, err := f.service.MarkPaid(ctx, adminPrincipal(), 999); err == nil {
			t.Error("expected bill-not-found error")
		}
	})
}
