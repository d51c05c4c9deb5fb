package services

import (
	"context"
	"errors"

	"society-backend/internal/models"
)

// ErrNotAuthorized is returned when a principal invokes an operation
// their role does not permit. The HTTP layer maps it to 403.
var ErrNotAuthorized = errors.New("not authorized")

// Store interfaces consumed by the services. The pgx repositories are
// the production implementations; tests substitute in-memory fakes.

type BillStore interface {
	Create(ctx context.Context, b *models.Bill) error
	Get(ctx context.Context, id int) (*models.Bill, error)
	List(ctx context.Context) ([]*models.Bill, error)
	ListByFlat(ctx context.Context, flatNumber string) ([]*models.Bill, error)
	ListByFlatAndStatus(ctx context.Context, flatNumber, status string) ([]*models.Bill, error)
	Update(ctx context.Context, b *models.Bill) error
	MarkPaid(ctx context.Context, id int) (*models.Bill, error)
	Delete(ctx context.Context, id int) error
	Aggregates(ctx context.Context) (*models.BillAggregates, error)
}

type ConfirmationStore interface {
	SubmitPayment(ctx context.Context, c *models.PaymentConfirmation) error
	Get(ctx context.Context, id int) (*models.PaymentConfirmation, error)
	List(ctx context.Context) ([]*models.PaymentConfirmation, error)
	ListByFlat(ctx context.Context, flatNumber string) ([]*models.PaymentConfirmation, error)
	Approve(ctx context.Context, id int) (*models.PaymentConfirmation, error)
}

type OwnerStore interface {
	Create(ctx context.Context, o *models.Owner) error
	Get(ctx context.Context, id int) (*models.Owner, error)
	GetByEmail(ctx context.Context, email string) (*models.Owner, error)
	List(ctx context.Context) ([]*models.Owner, error)
	Update(ctx context.Context, o *models.Owner) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type TenantStore interface {
	Create(ctx context.Context, t *models.Tenant) error
	List(ctx context.Context) ([]*models.Tenant, error)
	Delete(ctx context.Context, id int) error
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	CountByRole(ctx context.Context, role string) (int, error)
}
