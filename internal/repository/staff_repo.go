package repository

import (
	"context"

	"wonkepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffRepository interface {
	Create(ctx context.Context, s *model.Staff) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Staff, error)
	FindByUsername(ctx context.Context, username string) (*model.Staff, error)
	List(ctx context.Context) ([]model.Staff, error)
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]model.Staff, error)
	Update(ctx context.Context, s *model.Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type staffRepo struct{ db *gorm.DB }

func NewStaffRepository(db *gorm.DB) StaffRepository { return &staffRepo{db: db} }

func (r *staffRepo) Create(ctx context.Context, s *model.Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *staffRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	var s model.Staff
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *staffRepo) FindByUsername(ctx context.Context, username string) (*model.Staff, error) {
	var s model.Staff
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&s).Error
	return &s, err
}

func (r *staffRepo) List(ctx context.Context) ([]model.Staff, error) {
	var staff []model.Staff
	err := r.db.WithContext(ctx).Order("name ASC").Find(&staff).Error
	return staff, err
}

func (r *staffRepo) ListByShop(ctx context.Context, shopID uuid.UUID) ([]model.Staff, error) {
	var staff []model.Staff
	err := r.db.WithContext(ctx).Where("shop_id = ?", shopID).Order("name ASC").Find(&staff).Error
	return staff, err
}

func (r *staffRepo) Update(ctx context.Context, s *model.Staff) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *staffRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Staff{}, id).Error
}
