package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"society-backend/internal/models"
	"society-backend/internal/repositories"
)

// In-memory store implementations mirroring the pgx repositories'
// behavior closely enough for the service tests.

type memBills struct {
	mu     sync.Mutex
	nextID int
	bills  map[int]*models.Bill
}

func newMemBills() *memBills {
	return &memBills{nextID: 1, bills: make(map[int]*models.Bill)}
}

func (m *memBills) Create(ctx context.Context, b *models.Bill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = m.nextID
	m.nextID++
	b.CreatedAt = time.Now()
	cp := *b
	m.bills[b.ID] = &cp
	return nil
}

func (m *memBills) Get(ctx context.Context, id int) (*models.Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bills[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	cp := *b
	return &cp, nil
}

func (m *memBills) List(ctx context.Context) ([]*models.Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Bill, 0, len(m.bills))
	for i := 1; i < m.nextID; i++ {
		if b, ok := m.bills[i]; ok {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memBills) ListByFlat(ctx context.Context, flatNumber string) ([]*models.Bill, error) {
	all, _ := m.List(ctx)
	out := []*models.Bill{}
	for _, b := range all {
		if b.FlatNumber == flatNumber {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBills) ListByFlatAndStatus(ctx context.Context, flatNumber, status string) ([]*models.Bill, error) {
	byFlat, _ := m.ListByFlat(ctx, flatNumber)
	out := []*models.Bill{}
	for _, b := range byFlat {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBills) Update(ctx context.Context, b *models.Bill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.bills[b.ID]
	if !ok {
		return errors.New("no rows")
	}
	cp := *b
	cp.Status = stored.Status
	cp.ReceiptNumber = stored.ReceiptNumber
	cp.CreatedAt = stored.CreatedAt
	m.bills[b.ID] = &cp
	*b = cp
	return nil
}

func (m *memBills) MarkPaid(ctx context.Context, id int) (*models.Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bills[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	if b.Status == models.BillStatusPaid {
		return nil, errors.New("no rows")
	}
	now := time.Now()
	b.Status = models.BillStatusPaid
	b.PaidDate = &now
	b.ReceiptNumber = fmt.Sprintf("RCP-%06d", id)
	cp := *b
	return &cp, nil
}

func (m *memBills) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bills[id]; !ok {
		return errors.New("no rows")
	}
	delete(m.bills, id)
	return nil
}

func (m *memBills) Aggregates(ctx context.Context) (*models.BillAggregates, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	agg := &models.BillAggregates{StatusCounts: make(map[string]int)}
	for _, b := range m.bills {
		agg.StatusCounts[b.Status]++
		if b.Status == models.BillStatusPaid {
			agg.TotalCollected += b.Amount
		} else {
			agg.PendingCount++
		}
	}
	return agg, nil
}

type memConfirmations struct {
	mu            sync.Mutex
	nextID        int
	confirmations map[int]*models.PaymentConfirmation
	bills         *memBills
}

func newMemConfirmations(bills *memBills) *memConfirmations {
	return &memConfirmations{
		nextID:        1,
		confirmations: make(map[int]*models.PaymentConfirmation),
		bills:         bills,
	}
}

func (m *memConfirmations) SubmitPayment(ctx context.Context, c *models.PaymentConfirmation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.confirmations {
		if existing.UserID == c.UserID && existing.BillID == c.BillID {
			return repositories.ErrAlreadySubmitted
		}
	}

	m.bills.mu.Lock()
	defer m.bills.mu.Unlock()
	bill, ok := m.bills.bills[c.BillID]
	if !ok || bill.Status != models.BillStatusPending {
		return fmt.Errorf("bill %d is no longer pending", c.BillID)
	}

	c.ID = m.nextID
	m.nextID++
	c.SubmittedAt = time.Now()
	cp := *c
	m.confirmations[c.ID] = &cp

	bill.Status = models.BillStatusSubmitted
	bill.Remarks = c.Remarks
	submittedAt := c.SubmittedAt
	bill.SubmittedAt = &submittedAt
	return nil
}

func (m *memConfirmations) Get(ctx context.Context, id int) (*models.PaymentConfirmation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.confirmations[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	cp := *c
	return &cp, nil
}

func (m *memConfirmations) List(ctx context.Context) ([]*models.PaymentConfirmation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.PaymentConfirmation, 0, len(m.confirmations))
	for i := m.nextID - 1; i >= 1; i-- {
		if c, ok := m.confirmations[i]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memConfirmations) ListByFlat(ctx context.Context, flatNumber string) ([]*models.PaymentConfirmation, error) {
	all, _ := m.List(ctx)
	out := []*models.PaymentConfirmation{}
	for _, c := range all {
		if c.FlatNumber == flatNumber {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memConfirmations) Approve(ctx context.Context, id int) (*models.PaymentConfirmation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.confirmations[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	c.Status = models.ConfirmationApproved
	cp := *c
	return &cp, nil
}

type memOwners struct {
	mu     sync.Mutex
	nextID int
	owners map[int]*models.Owner
}

func newMemOwners() *memOwners {
	return &memOwners{nextID: 1, owners: make(map[int]*models.Owner)}
}

func (m *memOwners) Create(ctx context.Context, o *models.Owner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = m.nextID
	m.nextID++
	o.JoinedAt = time.Now()
	cp := *o
	m.owners[o.ID] = &cp
	return nil
}

func (m *memOwners) Get(ctx context.Context, id int) (*models.Owner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.owners[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	cp := *o
	return &cp, nil
}

func (m *memOwners) GetByEmail(ctx context.Context, email string) (*models.Owner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.owners {
		if o.Email == email {
			cp := *o
			return &cp, nil
		}
	}
	return nil, errors.New("no rows")
}

func (m *memOwners) List(ctx context.Context) ([]*models.Owner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Owner, 0, len(m.owners))
	for i := 1; i < m.nextID; i++ {
		if o, ok := m.owners[i]; ok {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memOwners) Update(ctx context.Context, o *models.Owner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.owners[o.ID]; !ok {
		return errors.New("no rows")
	}
	cp := *o
	m.owners[o.ID] = &cp
	return nil
}

func (m *memOwners) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.owners[id]; !ok {
		return errors.New("no rows")
	}
	delete(m.owners, id)
	return nil
}

func (m *memOwners) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.owners), nil
}

type memUsers struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{nextID: 1, users: make(map[int]*models.User)}
}

func (m *memUsers) Create(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.nextID
	m.nextID++
	u.CreatedAt = time.Now()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) Get(ctx context.Context, id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.New("no rows")
}

func (m *memUsers) CountByRole(ctx context.Context, role string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type memTenants struct {
	mu      sync.Mutex
	nextID  int
	tenants map[int]*models.Tenant
}

func newMemTenants() *memTenants {
	return &memTenants{nextID: 1, tenants: make(map[int]*models.Tenant)}
}

func (m *memTenants) Create(ctx context.Context, t *models.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = m.nextID
	m.nextID++
	t.CreatedAt = time.Now()
	cp := *t
	m.tenants[t.ID] = &cp
	return nil
}

func (m *memTenants) List(ctx context.Context) ([]*models.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Tenant, 0, len(m.tenants))
	for i := 1; i < m.nextID; i++ {
		if t, ok := m.tenants[i]; ok {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memTenants) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tenants[id]; !ok {
		return errors.New("no rows")
	}
	delete(m.tenants, id)
	return nil
}
