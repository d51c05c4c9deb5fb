package services

import (
	"context"
	"errors"

	"society-backend/internal/events"
	"society-backend/internal/models"
)

type OwnerService struct {
	Owners OwnerStore
	Hub    *events.Hub
}

func NewOwnerService(owners OwnerStore, hub *events.Hub) *OwnerService {
	return &OwnerService{Owners: owners, Hub: hub}
}

func (s *OwnerService) RegisterOwner(ctx context.Context, req *models.CreateOwnerRequest) (*models.Owner, error) {
	if req.Name == "" || req.Email == "" || req.FlatNumber == "" {
		return nil, errors.New("name, email and flat number are required")
	}

	owner := &models.Owner{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		FlatNumber:  req.FlatNumber,
		UID:         req.UID,
		IsActive:    true,
	}

	if err := s.Owners.Create(ctx, owner); err != nil {
		return nil, err
	}

	s.Hub.Publish(events.Event{
		Kind:       events.KindOwnerRegistered,
		EntityID:   owner.ID,
		FlatNumber: owner.FlatNumber,
		OwnerName:  owner.Name,
	})
	return owner, nil
}

func (s *OwnerService) ListOwners(ctx context.Context) ([]*models.Owner, error) {
	return s.Owners.List(ctx)
}

func (s *OwnerService) GetOwner(ctx context.Context, id int) (*models.Owner, error) {
	return s.Owners.Get(ctx, id)
}

func (s *OwnerService) UpdateOwner(ctx context.Context, id int, req *models.UpdateOwnerRequest) (*models.Owner, error) {
	owner, err := s.Owners.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	owner.Name = req.Name
	owner.Email = req.Email
	owner.PhoneNumber = req.PhoneNumber
	owner.FlatNumber = req.FlatNumber
	owner.IsActive = req.IsActive

	if err := s.Owners.Update(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}

func (s *OwnerService) DeleteOwner(ctx context.Context, id int) error {
	return s.Owners.Delete(ctx, id)
}
