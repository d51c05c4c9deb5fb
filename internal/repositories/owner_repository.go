package repositories

import (
	"context"

	"society-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type OwnerRepository struct {
	DB *pgxpool.Pool
}

func NewOwnerRepository(db *pgxpool.Pool) *OwnerRepository {
	return &OwnerRepository{DB: db}
}

func (r *OwnerRepository) Create(ctx context.Context, o *models.Owner) error {
	query := `
		INSERT INTO owners (name, email, phone_number, flat_number, uid, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, joined_at
	`
	return r.DB.QueryRow(ctx, query,
		o.Name,
		o.Email,
		o.PhoneNumber,
		o.FlatNumber,
		o.UID,
		o.IsActive,
	).Scan(&o.ID, &o.JoinedAt)
}

func (r *OwnerRepository) Get(ctx context.Context, id int) (*models.Owner, error) {
	query := `
		SELECT id, name, email, phone_number, flat_number, uid, is_active, joined_at
		FROM owners
		WHERE id = $1
	`
	o := &models.Owner{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Name, &o.Email, &o.PhoneNumber, &o.FlatNumber, &o.UID, &o.IsActive, &o.JoinedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OwnerRepository) GetByEmail(ctx context.Context, email string) (*models.Owner, error) {
	query := `
		SELECT id, name, email, phone_number, flat_number, uid, is_active, joined_at
		FROM owners
		WHERE email = $1
	`
	o := &models.Owner{}
	err := r.DB.QueryRow(ctx, query, email).Scan(
		&o.ID, &o.Name, &o.Email, &o.PhoneNumber, &o.FlatNumber, &o.UID, &o.IsActive, &o.JoinedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OwnerRepository) List(ctx context.Context) ([]*models.Owner, error) {
	query := `
		SELECT id, name, email, phone_number, flat_number, uid, is_active, joined_at
		FROM owners
		ORDER BY flat_number
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var owners []*models.Owner
	for rows.Next() {
		o := &models.Owner{}
		if err := rows.Scan(
			&o.ID, &o.Name, &o.Email, &o.PhoneNumber, &o.FlatNumber, &o.UID, &o.IsActive, &o.JoinedAt,
		); err != nil {
			return nil, err
		}
		owners = append(owners, o)
	}
	return owners, rows.Err()
}

func (r *OwnerRepository) Update(ctx context.Context, o *models.Owner) error {
	query := `
		UPDATE owners
		SET name = $1, email = $2, phone_number = $3, flat_number = $4, is_active = $5
		WHERE id = $6
	`
	_, err := r.DB.Exec(ctx, query,
		o.Name, o.Email, o.PhoneNumber, o.FlatNumber, o.IsActive, o.ID)
	return err
}

func (r *OwnerRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM owners WHERE id = $1", id)
	return err
}

// Count returns the total number of registered owners (one per flat).
func (r *OwnerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, "SELECT COUNT(*) FROM owners").Scan(&count)
	return count, err
}
