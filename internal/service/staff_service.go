package service

import (
	"context"

	"wonkepos/internal/dto"
	"wonkepos/internal/model"
	"wonkepos/internal/repository"

	"github.com/google/uuid"
)

type StaffService interface {
	Create(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.StaffResponse, error)
	List(ctx context.Context) ([]dto.StaffResponse, error)
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]dto.StaffResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateStaffRequest) (*dto.StaffResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type staffService struct {
	repo  repository.StaffRepository
	shops repository.ShopRepository
}

func NewStaffService(repo repository.StaffRepository, shops repository.ShopRepository) StaffService {
	return &staffService{repo: repo, shops: shops}
}

func (s *staffService) Create(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, ErrNotFound
	}
	if _, err := s.shops.FindByID(ctx, shopID); err != nil {
		return nil, ErrNotFound
	}
	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	member := &model.Staff{
		ShopID:       shopID,
		Name:         req.Name,
		Role:         req.Role,
		Username:     req.Username,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, err
	}
	resp := staffToResponse(member)
	return &resp, nil
}

func (s *staffService) Get(ctx context.Context, id uuid.UUID) (*dto.StaffResponse, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	resp := staffToResponse(member)
	return &resp, nil
}

func (s *staffService) List(ctx context.Context) ([]dto.StaffResponse, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return staffToResponses(members), nil
}

func (s *staffService) ListByShop(ctx context.Context, shopID uuid.UUID) ([]dto.StaffResponse, error) {
	members, err := s.repo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return staffToResponses(members), nil
}

func (s *staffService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Role != nil {
		member.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		member.PasswordHash = hash
	}
	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}
	resp := staffToResponse(member)
	return &resp, nil
}

// Delete removes the staff row. Sales keep the staff id and name they were
// recorded with, so history is unaffected.
func (s *staffService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func staffToResponses(members []model.Staff) []dto.StaffResponse {
	resp := make([]dto.StaffResponse, len(members))
	for i := range members {
		resp[i] = staffToResponse(&members[i])
	}
	return resp
}
