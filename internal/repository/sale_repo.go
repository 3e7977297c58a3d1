package repository

import (
	"context"

	"wonkepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context) ([]model.Sale, error)
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]model.Sale, error)
	ListByStaff(ctx context.Context, staffID uuid.UUID) ([]model.Sale, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CashOutByStaff flips every open sale of the staff member to cashed_out
	// and returns the number of affected rows. Naturally idempotent.
	CashOutByStaff(ctx context.Context, staffID uuid.UUID) (int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Order("date DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListByShop(ctx context.Context, shopID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Where("shop_id = ?", shopID).Order("date DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Where("staff_id = ?", staffID).Order("date DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Sale{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *saleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Sale{}, "id = ?", id).Error
}

func (r *saleRepo) CashOutByStaff(ctx context.Context, staffID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("staff_id = ? AND status = ?", staffID, model.SaleOpen).
		Update("status", model.SaleCashedOut)
	return res.RowsAffected, res.Error
}
