package repositories

import (
	"context"

	"society-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TenantRepository struct {
	DB *pgxpool.Pool
}

func NewTenantRepository(db *pgxpool.Pool) *TenantRepository {
	return &TenantRepository{DB: db}
}

func (r *TenantRepository) Create(ctx context.Context, t *models.Tenant) error {
	query := `
		INSERT INTO tenants (name, email, phone_number, flat_number, owner_id, owner_name,
		                     lease_start, lease_end, rent_amount, deposit_amount, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(ctx, query,
		t.Name,
		t.Email,
		t.PhoneNumber,
		t.FlatNumber,
		t.OwnerID,
		t.OwnerName,
		t.LeaseStart,
		t.LeaseEnd,
		t.RentAmount,
		t.DepositAmount,
		t.IsVerified,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *TenantRepository) List(ctx context.Context) ([]*models.Tenant, error) {
	query := `
		SELECT id, name, email, phone_number, flat_number, owner_id, owner_name,
		       lease_start, lease_end, rent_amount, deposit_amount, is_verified, created_at
		FROM tenants
		ORDER BY flat_number
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		t := &models.Tenant{}
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Email, &t.PhoneNumber, &t.FlatNumber, &t.OwnerID, &t.OwnerName,
			&t.LeaseStart, &t.LeaseEnd, &t.RentAmount, &t.DepositAmount, &t.IsVerified, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (r *TenantRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM tenants WHERE id = $1", id)
	return err
}
