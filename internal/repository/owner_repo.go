package repository

import (
	"context"

	"wonkepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnerRepository defines the data access contract for owners.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type OwnerRepository interface {
	Create(ctx context.Context, o *model.Owner) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Owner, error)
	FindByUsername(ctx context.Context, username string) (*model.Owner, error)
	List(ctx context.Context) ([]model.Owner, error)
	Update(ctx context.Context, o *model.Owner) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountShops backs the deletion guard: owners with shops cannot be removed.
	CountShops(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type ownerRepo struct{ db *gorm.DB }

func NewOwnerRepository(db *gorm.DB) OwnerRepository { return &ownerRepo{db: db} }

func (r *ownerRepo) Create(ctx context.Context, o *model.Owner) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *ownerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Owner, error) {
	var o model.Owner
	err := r.db.WithContext(ctx).First(&o, id).Error
	return &o, err
}

func (r *ownerRepo) FindByUsername(ctx context.Context, username string) (*model.Owner, error) {
	var o model.Owner
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&o).Error
	return &o, err
}

func (r *ownerRepo) List(ctx context.Context) ([]model.Owner, error) {
	var owners []model.Owner
	err := r.db.WithContext(ctx).Order("name ASC").Find(&owners).Error
	return owners, err
}

func (r *ownerRepo) Update(ctx context.Context, o *model.Owner) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *ownerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Owner{}, id).Error
}

func (r *ownerRepo) CountShops(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Shop{}).Where("owner_id = ?", ownerID).Count(&n).Error
	return n, err
}
