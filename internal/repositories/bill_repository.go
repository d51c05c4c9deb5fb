package repositories

import (
	"context"
	"fmt"

	"society-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const billColumns = `id, owner_id, owner_name, flat_number, amount, month, year,
	due_date, status, remarks, receipt_number, submitted_at, paid_date, created_at`

type BillRepository struct {
	DB *pgxpool.Pool
}

func NewBillRepository(db *pgxpool.Pool) *BillRepository {
	return &BillRepository{DB: db}
}

func scanBill(row pgx.Row) (*models.Bill, error) {
	b := &models.Bill{}
	err := row.Scan(
		&b.ID, &b.OwnerID, &b.OwnerName, &b.FlatNumber, &b.Amount, &b.Month, &b.Year,
		&b.DueDate, &b.Status, &b.Remarks, &b.ReceiptNumber, &b.SubmittedAt, &b.PaidDate, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BillRepository) collectBills(ctx context.Context, query string, args ...interface{}) ([]*models.Bill, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (r *BillRepository) Create(ctx context.Context, b *models.Bill) error {
	query := `
		INSERT INTO maintenance_records (owner_id, owner_name, flat_number, amount, month, year, due_date, status, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(ctx, query,
		b.OwnerID,
		b.OwnerName,
		b.FlatNumber,
		b.Amount,
		b.Month,
		b.Year,
		b.DueDate,
		b.Status,
		b.Remarks,
	).Scan(&b.ID, &b.CreatedAt)
}

func (r *BillRepository) Get(ctx context.Context, id int) (*models.Bill, error) {
	query := fmt.Sprintf("SELECT %s FROM maintenance_records WHERE id = $1", billColumns)
	return scanBill(r.DB.QueryRow(ctx, query, id))
}

func (r *BillRepository) List(ctx context.Context) ([]*models.Bill, error) {
	query := fmt.Sprintf("SELECT %s FROM maintenance_records ORDER BY created_at DESC", billColumns)
	return r.collectBills(ctx, query)
}

func (r *BillRepository) ListByFlat(ctx context.Context, flatNumber string) ([]*models.Bill, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM maintenance_records WHERE flat_number = $1 ORDER BY created_at DESC",
		billColumns)
	return r.collectBills(ctx, query, flatNumber)
}

func (r *BillRepository) ListByFlatAndStatus(ctx context.Context, flatNumber, status string) ([]*models.Bill, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM maintenance_records WHERE flat_number = $1 AND status = $2 ORDER BY due_date",
		billColumns)
	return r.collectBills(ctx, query, flatNumber, status)
}

// Update overwrites the mutable fields of a bill. Status, receipt number
// and creation timestamp are deliberately untouched.
func (r *BillRepository) Update(ctx context.Context, b *models.Bill) error {
	query := `
		UPDATE maintenance_records
		SET owner_id = $1, owner_name = $2, flat_number = $3, amount = $4,
		    month = $5, year = $6, due_date = $7, remarks = $8
		WHERE id = $9
	`
	_, err := r.DB.Exec(ctx, query,
		b.OwnerID, b.OwnerName, b.FlatNumber, b.Amount,
		b.Month, b.Year, b.DueDate, b.Remarks, b.ID)
	return err
}

// MarkPaid transitions a bill to paid and assigns its receipt number.
// The WHERE guard keeps a paid bill from ever being re-stamped.
func (r *BillRepository) MarkPaid(ctx context.Context, id int) (*models.Bill, error) {
	var nextNum int
	if err := r.DB.QueryRow(ctx, "SELECT nextval('receipt_number_sequence')").Scan(&nextNum); err != nil {
		return nil, fmt.Errorf("failed to get next receipt number: %w", err)
	}
	receiptNumber := fmt.Sprintf("RCP-%06d", nextNum)

	query := fmt.Sprintf(`
		UPDATE maintenance_records
		SET status = 'paid', receipt_number = $1, paid_date = NOW()
		WHERE id = $2 AND status <> 'paid'
		RETURNING %s
	`, billColumns)
	return scanBill(r.DB.QueryRow(ctx, query, receiptNumber, id))
}

func (r *BillRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM maintenance_records WHERE id = $1", id)
	return err
}

// Aggregates recomputes the dashboard counters from the full bill set.
func (r *BillRepository) Aggregates(ctx context.Context) (*models.BillAggregates, error) {
	agg := &models.BillAggregates{StatusCounts: make(map[string]int)}

	rows, err := r.DB.Query(ctx,
		"SELECT status, COUNT(*), COALESCE(SUM(amount), 0) FROM maintenance_records GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count, sum int
		if err := rows.Scan(&status, &count, &sum); err != nil {
			return nil, err
		}
		agg.StatusCounts[status] = count
		if status == models.BillStatusPaid {
			agg.TotalCollected = sum
		} else {
			agg.PendingCount += count
		}
	}
	return agg, rows.Err()
}
