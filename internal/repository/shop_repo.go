package repository

import (
	"context"

	"wonkepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShopRepository interface {
	Create(ctx context.Context, s *model.Shop) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Shop, error)
	List(ctx context.Context) ([]model.Shop, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Shop, error)
	Update(ctx context.Context, s *model.Shop) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountStaff backs the deletion guard: shops with staff cannot be removed.
	CountStaff(ctx context.Context, shopID uuid.UUID) (int64, error)
}

type shopRepo struct{ db *gorm.DB }

func NewShopRepository(db *gorm.DB) ShopRepository { return &shopRepo{db: db} }

func (r *shopRepo) Create(ctx context.Context, s *model.Shop) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *shopRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Shop, error) {
	var s model.Shop
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *shopRepo) List(ctx context.Context) ([]model.Shop, error) {
	var shops []model.Shop
	err := r.db.WithContext(ctx).Order("name ASC").Find(&shops).Error
	return shops, err
}

func (r *shopRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Shop, error) {
	var shops []model.Shop
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name ASC").Find(&shops).Error
	return shops, err
}

func (r *shopRepo) Update(ctx context.Context, s *model.Shop) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *shopRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Shop{}, id).Error
}

func (r *shopRepo) CountStaff(ctx context.Context, shopID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Staff{}).Where("shop_id = ?", shopID).Count(&n).Error
	return n, err
}
