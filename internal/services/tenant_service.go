package services

import (
	"context"
	"errors"
	"fmt"

	"society-backend/internal/models"
	"society-backend/internal/timeutil"
)

type TenantService struct {
	Tenants TenantStore
	Owners  OwnerStore
}

func NewTenantService(tenants TenantStore, owners OwnerStore) *TenantService {
	return &TenantService{Tenants: tenants, Owners: owners}
}

// RegisterTenant records a tenant under an owner's flat. Owner name and
// flat are denormalized onto the tenant at creation.
func (s *TenantService) RegisterTenant(ctx context.Context, req *models.CreateTenantRequest) (*models.Tenant, error) {
	if req.Name == "" || req.Email == "" {
		return nil, errors.New("name and email are required")
	}

	owner, err := s.Owners.Get(ctx, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("owner not found: %w", err)
	}

	leaseStart, err := timeutil.ParseInIST(timeutil.DateLayout, req.LeaseStart)
	if err != nil {
		return nil, fmt.Errorf("invalid lease start: %w", err)
	}
	leaseEnd, err := timeutil.ParseInIST(timeutil.DateLayout, req.LeaseEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid lease end: %w", err)
	}

	tenant := &models.Tenant{
		Name:          req.Name,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		FlatNumber:    owner.FlatNumber,
		OwnerID:       owner.ID,
		OwnerName:     owner.Name,
		LeaseStart:    leaseStart,
		LeaseEnd:      leaseEnd,
		RentAmount:    req.RentAmount,
		DepositAmount: req.DepositAmount,
	}

	if err := s.Tenants.Create(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *TenantService) ListTenants(ctx context.Context) ([]*models.Tenant, error) {
	return s.Tenants.List(ctx)
}

func (s *TenantService) DeleteTenant(ctx context.Context, id int) error {
	return s.Tenants.Delete(ctx, id)
}
