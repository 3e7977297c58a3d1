package service

import (
	"context"

	"wonkepos/internal/dto"
	"wonkepos/internal/model"
	"wonkepos/internal/repository"

	"github.com/google/uuid"
)

type ShopService interface {
	Create(ctx context.Context, req dto.CreateShopRequest) (*dto.ShopResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ShopResponse, error)
	List(ctx context.Context) ([]dto.ShopResponse, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]dto.ShopResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateShopRequest) (*dto.ShopResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type shopService struct {
	repo   repository.ShopRepository
	owners repository.OwnerRepository
}

func NewShopService(repo repository.ShopRepository, owners repository.OwnerRepository) ShopService {
	return &shopService{repo: repo, owners: owners}
}

func (s *shopService) Create(ctx context.Context, req dto.CreateShopRequest) (*dto.ShopResponse, error) {
	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return nil, ErrNotFound
	}
	if _, err := s.owners.FindByID(ctx, ownerID); err != nil {
		return nil, ErrNotFound
	}

	shop := &model.Shop{
		OwnerID:           ownerID,
		Name:              req.Name,
		Location:          req.Location,
		LicenseStatus:     req.LicenseStatus,
		LicenseExpiryDate: req.LicenseExpiryDate,
		LicensePlan:       req.LicensePlan,
	}
	if shop.LicenseStatus == "" {
		shop.LicenseStatus = model.LicenseActive
	}
	if shop.LicensePlan == "" {
		shop.LicensePlan = "basic"
	}
	if err := s.repo.Create(ctx, shop); err != nil {
		return nil, err
	}
	resp := shopToResponse(shop)
	return &resp, nil
}

func (s *shopService) Get(ctx context.Context, id uuid.UUID) (*dto.ShopResponse, error) {
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	resp := shopToResponse(shop)
	return &resp, nil
}

func (s *shopService) List(ctx context.Context) ([]dto.ShopResponse, error) {
	shops, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return shopsToResponses(shops), nil
}

func (s *shopService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]dto.ShopResponse, error) {
	shops, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return shopsToResponses(shops), nil
}

// Update covers the system-administration license operations as well: status,
// expiry date and plan arrive as partial fields. The active → expired
// transition is one-way in the admin UI; the API stays a plain field update.
func (s *shopService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateShopRequest) (*dto.ShopResponse, error) {
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Location != nil {
		shop.Location = *req.Location
	}
	if req.LicenseStatus != nil {
		shop.LicenseStatus = *req.LicenseStatus
	}
	if req.LicenseExpiryDate != nil {
		shop.LicenseExpiryDate = *req.LicenseExpiryDate
	}
	if req.LicensePlan != nil {
		shop.LicensePlan = *req.LicensePlan
	}
	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, err
	}
	resp := shopToResponse(shop)
	return &resp, nil
}

// Delete refuses to remove a shop that still has staff.
func (s *shopService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	n, err := s.repo.CountStaff(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrShopHasStaff
	}
	return s.repo.Delete(ctx, id)
}

func shopsToResponses(shops []model.Shop) []dto.ShopResponse {
	resp := make([]dto.ShopResponse, len(shops))
	for i := range shops {
		resp[i] = shopToResponse(&shops[i])
	}
	return resp
}
