package service

import (
	"context"
	"fmt"

	"wonkepos/internal/dto"
	"wonkepos/internal/model"
	"wonkepos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AlertDispatcher enqueues background jobs triggered by sale processing.
// The worker package provides the redis-backed implementation.
type AlertDispatcher interface {
	EnqueueLowStockAlert(ctx context.Context, productID uuid.UUID) error
	EnqueueDayEndReport(ctx context.Context, staffID uuid.UUID, cashedOut int) error
}

type SaleService interface {
	Create(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context) ([]dto.SaleResponse, error)
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]dto.SaleResponse, error)
	ListByStaff(ctx context.Context, staffID uuid.UUID) ([]dto.SaleResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateSaleRequest) (*dto.SaleResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Checkout applies the whole cart in one transaction: per-line stock
	// decrements (converted to base units, clamped at zero) plus the sale
	// insert. Either everything commits or nothing does.
	Checkout(ctx context.Context, shopID uuid.UUID, req dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	// ProcessGRV receives supplier stock: per item, stock increases by the
	// raw quantity (no multiplier) and cost price is replaced. Unlike
	// checkout, an unknown product aborts the whole receipt.
	ProcessGRV(ctx context.Context, shopID uuid.UUID, req dto.GRVRequest) (*dto.GRVResponse, error)
	// CashOut flips all open sales of a staff member to cashed_out.
	// Idempotent: a second call affects zero rows and succeeds.
	CashOut(ctx context.Context, staffID uuid.UUID) (*dto.CashOutResponse, error)
	DayEndSummary(ctx context.Context, staffID uuid.UUID) (*dto.DayEndSummaryResponse, error)
}

type saleService struct {
	sales      repository.SaleRepository
	products   repository.ProductRepository
	staff      repository.StaffRepository
	shops      repository.ShopRepository
	dispatcher AlertDispatcher // may be nil
}

func NewSaleService(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	staff repository.StaffRepository,
	shops repository.ShopRepository,
	dispatcher AlertDispatcher,
) SaleService {
	return &saleService{sales: sales, products: products, staff: staff, shops: shops, dispatcher: dispatcher}
}

func (s *saleService) Checkout(ctx context.Context, shopID uuid.UUID, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if _, err := s.shops.FindByID(ctx, shopID); err != nil {
		return nil, ErrNotFound
	}
	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad staff id", ErrInvalidPayload)
	}

	var (
		sale        *model.Sale
		results     []dto.CheckoutLineResult
		lowStockIDs []uuid.UUID
	)
	err = runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		total := decimal.Zero
		results = make([]dto.CheckoutLineResult, 0, len(req.Lines))
		lowStockIDs = lowStockIDs[:0]

		for _, line := range req.Lines {
			subtotal := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(subtotal)
			result := dto.CheckoutLineResult{ProductID: line.ProductID, Subtotal: subtotal}

			productID, err := uuid.Parse(line.ProductID)
			if err != nil {
				results = append(results, result)
				continue
			}
			p, err := s.products.FindByIDTx(tx, productID)
			if err != nil || p.ShopID != shopID {
				// Stale cart line: the product was deleted or moved while
				// the cart was open. The charge stands, stock is untouched.
				results = append(results, result)
				continue
			}
			uom := p.UoMs.ByLevel(line.UoMLevel)
			if uom == nil {
				results = append(results, result)
				continue
			}

			before := p.StockQuantity
			after := before - line.Quantity*uom.Multiplier
			if after < 0 {
				after = 0
			}
			if err := s.products.SetStockTx(tx, productID, after); err != nil {
				return err
			}
			if after <= p.LowStockThreshold && before > p.LowStockThreshold {
				lowStockIDs = append(lowStockIDs, productID)
			}
			result.StockApplied = true
			result.StockBefore = before
			result.StockAfter = after
			results = append(results, result)
		}

		sale = &model.Sale{
			ShopID:        shopID,
			StaffID:       staffID,
			StaffName:     req.StaffName,
			TotalAmount:   total,
			PaymentMethod: req.PaymentMethod,
			ItemsCount:    len(req.Lines),
			Status:        model.SaleOpen,
		}
		return s.sales.Create(ctx, tx, sale)
	})
	if err != nil {
		return nil, err
	}

	// Alerts ride on the committed state; enqueue failures must not fail
	// the checkout.
	for _, id := range lowStockIDs {
		if s.dispatcher == nil {
			break
		}
		if err := s.dispatcher.EnqueueLowStockAlert(ctx, id); err != nil {
			log.Warn().Err(err).Str("product_id", id.String()).Msg("low stock alert enqueue failed")
		}
	}

	return &dto.CheckoutResponse{Sale: saleToResponse(sale), Lines: results}, nil
}

func (s *saleService) ProcessGRV(ctx context.Context, shopID uuid.UUID, req dto.GRVRequest) (*dto.GRVResponse, error) {
	if _, err := s.shops.FindByID(ctx, shopID); err != nil {
		return nil, ErrNotFound
	}

	var items []dto.GRVItemResult
	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		items = make([]dto.GRVItemResult, 0, len(req.Items))
		for _, item := range req.Items {
			productID, err := uuid.Parse(item.ProductID)
			if err != nil {
				return fmt.Errorf("%w: bad product id %q", ErrInvalidPayload, item.ProductID)
			}
			p, err := s.products.FindByIDTx(tx, productID)
			if err != nil || p.ShopID != shopID {
				return fmt.Errorf("%w: product %s", ErrNotFound, item.ProductID)
			}
			// Snapshot before the update; the repository may hand back a
			// record that ReceiveStockTx mutates in place.
			before := p.StockQuantity
			oldCost := p.CostPrice
			if err := s.products.ReceiveStockTx(tx, productID, item.QuantityReceived, item.NewCost); err != nil {
				return err
			}
			items = append(items, dto.GRVItemResult{
				ProductID:    item.ProductID,
				StockAfter:   before + item.QuantityReceived,
				CostAfter:    item.NewCost,
				CostDeltaPct: costDeltaPct(oldCost, item.NewCost),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.GRVResponse{
		Supplier:      req.Supplier,
		InvoiceNumber: req.InvoiceNumber,
		Items:         items,
	}, nil
}

func (s *saleService) CashOut(ctx context.Context, staffID uuid.UUID) (*dto.CashOutResponse, error) {
	if _, err := s.staff.FindByID(ctx, staffID); err != nil {
		return nil, ErrNotFound
	}
	n, err := s.sales.CashOutByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	// Mail the owner a day-end report once per close. A repeat call flips
	// zero rows and sends nothing.
	if n > 0 && s.dispatcher != nil {
		if err := s.dispatcher.EnqueueDayEndReport(ctx, staffID, int(n)); err != nil {
			log.Warn().Err(err).Str("staff_id", staffID.String()).Msg("day-end report enqueue failed")
		}
	}
	return &dto.CashOutResponse{StaffID: staffID.String(), CashedOut: int(n)}, nil
}

func (s *saleService) DayEndSummary(ctx context.Context, staffID uuid.UUID) (*dto.DayEndSummaryResponse, error) {
	member, err := s.staff.FindByID(ctx, staffID)
	if err != nil {
		return nil, ErrNotFound
	}
	sales, err := s.sales.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	summary := AggregateDayEnd(sales)
	summary.StaffID = staffID.String()
	summary.StaffName = member.Name
	return summary, nil
}

// AggregateDayEnd folds a staff member's sales history into the day-end
// figures. TotalSales covers the full history; the open buckets count only
// sales not yet cashed out. Exported so the client store can reuse it on
// local data.
func AggregateDayEnd(sales []model.Sale) *dto.DayEndSummaryResponse {
	summary := &dto.DayEndSummaryResponse{
		TotalSales: decimal.Zero,
		OpenTotal:  decimal.Zero,
		OpenCash:   decimal.Zero,
		OpenCard:   decimal.Zero,
	}
	openCount := 0
	for _, sale := range sales {
		summary.TotalSales = summary.TotalSales.Add(sale.TotalAmount)
		summary.TransactionCount++
		if sale.Status != model.SaleOpen {
			continue
		}
		openCount++
		summary.OpenTotal = summary.OpenTotal.Add(sale.TotalAmount)
		switch sale.PaymentMethod {
		case model.PayCash:
			summary.OpenCash = summary.OpenCash.Add(sale.TotalAmount)
		case model.PayCard:
			summary.OpenCard = summary.OpenCard.Add(sale.TotalAmount)
		}
	}
	summary.Settled = openCount == 0
	return summary
}

// costDeltaPct returns (new − old) / old × 100 rounded to one decimal, or
// zero when the previous cost was zero.
func costDeltaPct(oldCost, newCost decimal.Decimal) decimal.Decimal {
	if oldCost.IsZero() {
		return decimal.Zero
	}
	return newCost.Sub(oldCost).Div(oldCost).Mul(decimal.NewFromInt(100)).Round(1)
}

func (s *saleService) Create(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, ErrNotFound
	}
	if _, err := s.shops.FindByID(ctx, shopID); err != nil {
		return nil, ErrNotFound
	}
	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad staff id", ErrInvalidPayload)
	}
	status := req.Status
	if status == "" {
		status = model.SaleOpen
	}
	sale := &model.Sale{
		ShopID:        shopID,
		StaffID:       staffID,
		StaffName:     req.StaffName,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
		ItemsCount:    req.ItemsCount,
		Status:        status,
	}
	err = runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		return s.sales.Create(ctx, tx, sale)
	})
	if err != nil {
		return nil, err
	}
	resp := saleToResponse(sale)
	return &resp, nil
}

func (s *saleService) Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	resp := saleToResponse(sale)
	return &resp, nil
}

func (s *saleService) List(ctx context.Context) ([]dto.SaleResponse, error) {
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, err
	}
	return salesToResponses(sales), nil
}

func (s *saleService) ListByShop(ctx context.Context, shopID uuid.UUID) ([]dto.SaleResponse, error) {
	sales, err := s.sales.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return salesToResponses(sales), nil
}

func (s *saleService) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]dto.SaleResponse, error) {
	sales, err := s.sales.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	return salesToResponses(sales), nil
}

func (s *saleService) UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.Status != nil && *req.Status != sale.Status {
		if err := s.sales.UpdateStatus(ctx, id, *req.Status); err != nil {
			return nil, err
		}
		sale.Status = *req.Status
	}
	resp := saleToResponse(sale)
	return &resp, nil
}

func (s *saleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.sales.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.sales.Delete(ctx, id)
}

func saleToResponse(sale *model.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:            sale.ID.String(),
		ShopID:        sale.ShopID.String(),
		StaffID:       sale.StaffID.String(),
		StaffName:     sale.StaffName,
		Date:          sale.Date.Format("2006-01-02T15:04:05Z07:00"),
		TotalAmount:   sale.TotalAmount,
		PaymentMethod: sale.PaymentMethod,
		ItemsCount:    sale.ItemsCount,
		Status:        sale.Status,
	}
}

func salesToResponses(sales []model.Sale) []dto.SaleResponse {
	resp := make([]dto.SaleResponse, len(sales))
	for i := range sales {
		resp[i] = saleToResponse(&sales[i])
	}
	return resp
}
