package service

import (
	"context"

	"wonkepos/internal/dto"
	"wonkepos/internal/model"
	"wonkepos/internal/repository"

	"github.com/google/uuid"
)

type OwnerService interface {
	Create(ctx context.Context, req dto.CreateOwnerRequest) (*dto.OwnerResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OwnerResponse, error)
	List(ctx context.Context) ([]dto.OwnerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateOwnerRequest) (*dto.OwnerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ownerService struct {
	repo repository.OwnerRepository
}

func NewOwnerService(repo repository.OwnerRepository) OwnerService {
	return &ownerService{repo: repo}
}

func (s *ownerService) Create(ctx context.Context, req dto.CreateOwnerRequest) (*dto.OwnerResponse, error) {
	// Best-effort uniqueness pre-check so clients get a 409 instead of an
	// opaque constraint-violation 500.
	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	owner := &model.Owner{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Username:     req.Username,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, owner); err != nil {
		return nil, err
	}
	resp := ownerToResponse(owner)
	return &resp, nil
}

func (s *ownerService) Get(ctx context.Context, id uuid.UUID) (*dto.OwnerResponse, error) {
	owner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	resp := ownerToResponse(owner)
	return &resp, nil
}

func (s *ownerService) List(ctx context.Context) ([]dto.OwnerResponse, error) {
	owners, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OwnerResponse, len(owners))
	for i := range owners {
		resp[i] = ownerToResponse(&owners[i])
	}
	return resp, nil
}

func (s *ownerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateOwnerRequest) (*dto.OwnerResponse, error) {
	owner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.Name != nil {
		owner.Name = *req.Name
	}
	if req.Email != nil {
		owner.Email = *req.Email
	}
	if req.Phone != nil {
		owner.Phone = *req.Phone
	}
	if req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		owner.PasswordHash = hash
	}
	if err := s.repo.Update(ctx, owner); err != nil {
		return nil, err
	}
	resp := ownerToResponse(owner)
	return &resp, nil
}

// Delete refuses to remove an owner that still owns shops.
func (s *ownerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	n, err := s.repo.CountShops(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrOwnerHasShops
	}
	return s.repo.Delete(ctx, id)
}

func ownerToResponse(o *model.Owner) dto.OwnerResponse {
	return dto.OwnerResponse{
		ID:       o.ID.String(),
		Name:     o.Name,
		Email:    o.Email,
		Phone:    o.Phone,
		Username: o.Username,
	}
}
