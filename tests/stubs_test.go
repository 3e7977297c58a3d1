package tests

// In-memory repository stubs shared across the unit tests. They implement
// the repository interfaces over plain maps; transactional methods ignore
// the nil *gorm.DB that runTx passes in stub mode.

import (
	"context"
	"errors"
	"sort"

	"wonkepos/internal/model"
	"wonkepos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errStubNotFound = errors.New("not found")

// ── Owners ───────────────────────────────────────────────────────────────────

type stubOwnerRepo struct {
	owners map[uuid.UUID]*model.Owner
	shops  *stubShopRepo // for CountShops
}

func newStubOwnerRepo(shops *stubShopRepo) *stubOwnerRepo {
	return &stubOwnerRepo{owners: make(map[uuid.UUID]*model.Owner), shops: shops}
}

func (r *stubOwnerRepo) Create(_ context.Context, o *model.Owner) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.owners[o.ID] = o
	return nil
}

func (r *stubOwnerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Owner, error) {
	o, ok := r.owners[id]
	if !ok {
		return nil, errStubNotFound
	}
	return o, nil
}

func (r *stubOwnerRepo) FindByUsername(_ context.Context, username string) (*model.Owner, error) {
	for _, o := range r.owners {
		if o.Username == username {
			return o, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubOwnerRepo) List(_ context.Context) ([]model.Owner, error) {
	out := make([]model.Owner, 0, len(r.owners))
	for _, o := range r.owners {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubOwnerRepo) Update(_ context.Context, o *model.Owner) error {
	if _, ok := r.owners[o.ID]; !ok {
		return errStubNotFound
	}
	r.owners[o.ID] = o
	return nil
}

func (r *stubOwnerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.owners, id)
	return nil
}

func (r *stubOwnerRepo) CountShops(_ context.Context, ownerID uuid.UUID) (int64, error) {
	var n int64
	if r.shops == nil {
		return 0, nil
	}
	for _, s := range r.shops.shops {
		if s.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

var _ repository.OwnerRepository = (*stubOwnerRepo)(nil)

// ── Shops ────────────────────────────────────────────────────────────────────

type stubShopRepo struct {
	shops map[uuid.UUID]*model.Shop
	staff *stubStaffRepo // for CountStaff
}

func newStubShopRepo() *stubShopRepo {
	return &stubShopRepo{shops: make(map[uuid.UUID]*model.Shop)}
}

func (r *stubShopRepo) Create(_ context.Context, s *model.Shop) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.shops[s.ID] = s
	return nil
}

func (r *stubShopRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Shop, error) {
	s, ok := r.shops[id]
	if !ok {
		return nil, errStubNotFound
	}
	return s, nil
}

func (r *stubShopRepo) List(_ context.Context) ([]model.Shop, error) {
	out := make([]model.Shop, 0, len(r.shops))
	for _, s := range r.shops {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubShopRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Shop, error) {
	var out []model.Shop
	for _, s := range r.shops {
		if s.OwnerID == ownerID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubShopRepo) Update(_ context.Context, s *model.Shop) error {
	if _, ok := r.shops[s.ID]; !ok {
		return errStubNotFound
	}
	r.shops[s.ID] = s
	return nil
}

func (r *stubShopRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.shops, id)
	return nil
}

func (r *stubShopRepo) CountStaff(_ context.Context, shopID uuid.UUID) (int64, error) {
	var n int64
	if r.staff == nil {
		return 0, nil
	}
	for _, m := range r.staff.members {
		if m.ShopID == shopID {
			n++
		}
	}
	return n, nil
}

var _ repository.ShopRepository = (*stubShopRepo)(nil)

// ── Staff ────────────────────────────────────────────────────────────────────

type stubStaffRepo struct {
	members map[uuid.UUID]*model.Staff
}

func newStubStaffRepo() *stubStaffRepo {
	return &stubStaffRepo{members: make(map[uuid.UUID]*model.Staff)}
}

func (r *stubStaffRepo) Create(_ context.Context, s *model.Staff) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.members[s.ID] = s
	return nil
}

func (r *stubStaffRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Staff, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, errStubNotFound
	}
	return m, nil
}

func (r *stubStaffRepo) FindByUsername(_ context.Context, username string) (*model.Staff, error) {
	for _, m := range r.members {
		if m.Username == username {
			return m, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubStaffRepo) List(_ context.Context) ([]model.Staff, error) {
	out := make([]model.Staff, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubStaffRepo) ListByShop(_ context.Context, shopID uuid.UUID) ([]model.Staff, error) {
	var out []model.Staff
	for _, m := range r.members {
		if m.ShopID == shopID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubStaffRepo) Update(_ context.Context, s *model.Staff) error {
	if _, ok := r.members[s.ID]; !ok {
		return errStubNotFound
	}
	r.members[s.ID] = s
	return nil
}

func (r *stubStaffRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.members, id)
	return nil
}

var _ repository.StaffRepository = (*stubStaffRepo)(nil)

// ── Products ─────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errStubNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.UoMs.ByBarcode(barcode) != nil {
			return p, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) ListByShop(_ context.Context, shopID uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.ShopID == shopID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return errStubNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) SetStockTx(_ *gorm.DB, id uuid.UUID, quantity int) error {
	p, ok := r.products[id]
	if !ok {
		return errStubNotFound
	}
	p.StockQuantity = quantity
	return nil
}

func (r *stubProductRepo) ReceiveStockTx(_ *gorm.DB, id uuid.UUID, delta int, newCost decimal.Decimal) error {
	p, ok := r.products[id]
	if !ok {
		return errStubNotFound
	}
	p.StockQuantity += delta
	p.CostPrice = newCost
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Sales ────────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
	seq   []uuid.UUID // creation order, for stable listings
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales[s.ID] = s
	r.seq = append(r.seq, s.ID)
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, errStubNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context) ([]model.Sale, error) {
	out := make([]model.Sale, 0, len(r.seq))
	for _, id := range r.seq {
		out = append(out, *r.sales[id])
	}
	return out, nil
}

func (r *stubSaleRepo) ListByShop(_ context.Context, shopID uuid.UUID) ([]model.Sale, error) {
	var out []model.Sale
	for _, id := range r.seq {
		if r.sales[id].ShopID == shopID {
			out = append(out, *r.sales[id])
		}
	}
	return out, nil
}

func (r *stubSaleRepo) ListByStaff(_ context.Context, staffID uuid.UUID) ([]model.Sale, error) {
	var out []model.Sale
	for _, id := range r.seq {
		if r.sales[id].StaffID == staffID {
			out = append(out, *r.sales[id])
		}
	}
	return out, nil
}

func (r *stubSaleRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	s, ok := r.sales[id]
	if !ok {
		return errStubNotFound
	}
	s.Status = status
	return nil
}

func (r *stubSaleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sales, id)
	for i, sid := range r.seq {
		if sid == id {
			r.seq = append(r.seq[:i], r.seq[i+1:]...)
			break
		}
	}
	return nil
}

func (r *stubSaleRepo) CashOutByStaff(_ context.Context, staffID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range r.sales {
		if s.StaffID == staffID && s.Status == model.SaleOpen {
			s.Status = model.SaleCashedOut
			n++
		}
	}
	return n, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── Dispatcher ───────────────────────────────────────────────────────────────

// stubDispatcher records enqueued low-stock product ids and day-end report
// staff ids.
type stubDispatcher struct {
	enqueued []uuid.UUID
	reports  []uuid.UUID
}

func (d *stubDispatcher) EnqueueLowStockAlert(_ context.Context, productID uuid.UUID) error {
	d.enqueued = append(d.enqueued, productID)
	return nil
}

func (d *stubDispatcher) EnqueueDayEndReport(_ context.Context, staffID uuid.UUID, _ int) error {
	d.reports = append(d.reports, staffID)
	return nil
}
