package repositories

import (
	"context"
	"errors"
	"fmt"

	"society-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrAlreadySubmitted is returned when the same user retries a submission
// for a bill they already confirmed (unique user_id+bill_id index).
var ErrAlreadySubmitted = errors.New("payment already submitted for this bill")

const confirmationColumns = `id, user_id, email, bill_id, amount, month, year,
	flat_number, remarks, status, submitted_at`

type ConfirmationRepository struct {
	DB *pgxpool.Pool
}

func NewConfirmationRepository(db *pgxpool.Pool) *ConfirmationRepository {
	return &ConfirmationRepository{DB: db}
}

func scanConfirmation(row pgx.Row) (*models.PaymentConfirmation, error) {
	c := &models.PaymentConfirmation{}
	err := row.Scan(
		&c.ID, &c.UserID, &c.Email, &c.BillID, &c.Amount, &c.Month, &c.Year,
		&c.FlatNumber, &c.Remarks, &c.Status, &c.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// SubmitPayment writes the confirmation and flips the source bill to
// submitted in a single transaction, so a crash can never leave one
// without the other.
func (r *ConfirmationRepository) SubmitPayment(ctx context.Context, c *models.PaymentConfirmation) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO payment_confirmations (user_id, email, bill_id, amount, month, year, flat_number, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, submitted_at
	`
	err = tx.QueryRow(ctx, insert,
		c.UserID,
		c.Email,
		c.BillID,
		c.Amount,
		c.Month,
		c.Year,
		c.FlatNumber,
		c.Remarks,
	).Scan(&c.ID, &c.SubmittedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadySubmitted
		}
		return err
	}

	// The status guard keeps a concurrent mark-paid from being undone.
	tag, err := tx.Exec(ctx, `
		UPDATE maintenance_records
		SET status = 'submitted', remarks = $1, submitted_at = $2
		WHERE id = $3 AND status = 'pending'
	`, c.Remarks, c.SubmittedAt, c.BillID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bill %d is no longer pending", c.BillID)
	}

	return tx.Commit(ctx)
}

func (r *ConfirmationRepository) Get(ctx context.Context, id int) (*models.PaymentConfirmation, error) {
	query := fmt.Sprintf("SELECT %s FROM payment_confirmations WHERE id = $1", confirmationColumns)
	return scanConfirmation(r.DB.QueryRow(ctx, query, id))
}

func (r *ConfirmationRepository) List(ctx context.Context) ([]*models.PaymentConfirmation, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM payment_confirmations ORDER BY submitted_at DESC", confirmationColumns)
	return r.collectConfirmations(ctx, query)
}

func (r *ConfirmationRepository) ListByFlat(ctx context.Context, flatNumber string) ([]*models.PaymentConfirmation, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM payment_confirmations WHERE flat_number = $1 ORDER BY submitted_at DESC",
		confirmationColumns)
	return r.collectConfirmations(ctx, query, flatNumber)
}

// Approve sets the review status. Approval is terminal and touches
// nothing but the confirmation row.
func (r *ConfirmationRepository) Approve(ctx context.Context, id int) (*models.PaymentConfirmation, error) {
	query := fmt.Sprintf(`
		UPDATE payment_confirmations
		SET status = 'approved'
		WHERE id = $1
		RETURNING %s
	`, confirmationColumns)
	return scanConfirmation(r.DB.QueryRow(ctx, query, id))
}

func (r *ConfirmationRepository) collectConfirmations(ctx context.Context, query string, args ...interface{}) ([]*models.PaymentConfirmation, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var confirmations []*models.PaymentConfirmation
	for rows.Next() {
		c, err := scanConfirmation(rows)
		if err != nil {
			return nil, err
		}
		confirmations = append(confirmations, c)
	}
	return confirmations, rows.Err()
}
