package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wonkepos/internal/dto"
	"wonkepos/internal/model"
	"wonkepos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const priceCacheTTL = 60 * time.Second

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context) ([]dto.ProductResponse, error)
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// PriceLookup resolves a barcode to its UoM tier price. Results are
	// cached in redis for a short TTL; the cache is best effort.
	PriceLookup(ctx context.Context, barcode string) (*dto.PriceLookupResponse, error)
}

type productService struct {
	repo  repository.ProductRepository
	shops repository.ShopRepository
	rdb   *redis.Client // may be nil
}

func NewProductService(repo repository.ProductRepository, shops repository.ShopRepository, rdb *redis.Client) ProductService {
	return &productService{repo: repo, shops: shops, rdb: rdb}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, ErrNotFound
	}
	if _, err := s.shops.FindByID(ctx, shopID); err != nil {
		return nil, ErrNotFound
	}
	uoms, err := normalizeUoMs(req.UoMs)
	if err != nil {
		return nil, err
	}

	p := &model.Product{
		ShopID:            shopID,
		Name:              req.Name,
		Category:          req.Category,
		CostPrice:         req.CostPrice,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
		UoMs:              uoms,
	}
	if p.LowStockThreshold == 0 {
		p.LowStockThreshold = 10
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return productsToResponses(products), nil
}

func (s *productService) ListByShop(ctx context.Context, shopID uuid.UUID) ([]dto.ProductResponse, error) {
	products, err := s.repo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return productsToResponses(products), nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	staleBarcodes := barcodesOf(p.UoMs)
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.CostPrice != nil {
		p.CostPrice = *req.CostPrice
	}
	if req.StockQuantity != nil {
		p.StockQuantity = *req.StockQuantity
	}
	if req.LowStockThreshold != nil {
		p.LowStockThreshold = *req.LowStockThreshold
	}
	if req.UoMs != nil {
		uoms, err := normalizeUoMs(*req.UoMs)
		if err != nil {
			return nil, err
		}
		p.UoMs = uoms
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.evictPriceCache(ctx, append(staleBarcodes, barcodesOf(p.UoMs)...))
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.evictPriceCache(ctx, barcodesOf(p.UoMs))
	return nil
}

func (s *productService) PriceLookup(ctx context.Context, barcode string) (*dto.PriceLookupResponse, error) {
	cacheKey := "price:" + barcode

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp dto.PriceLookupResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, ErrNotFound
	}
	uom := p.UoMs.ByBarcode(barcode)
	if uom == nil {
		return nil, ErrNotFound
	}

	resp := &dto.PriceLookupResponse{
		ProductID:     p.ID.String(),
		ProductName:   p.Name,
		Category:      p.Category,
		UoMName:       uom.Name,
		UoMLevel:      uom.Level,
		Price:         uom.Price,
		StockQuantity: p.StockQuantity,
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, payload, priceCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("barcode", barcode).Msg("price cache set failed")
			}
		}
	}
	return resp, nil
}

func (s *productService) evictPriceCache(ctx context.Context, barcodes []string) {
	if s.rdb == nil || len(barcodes) == 0 {
		return
	}
	keys := make([]string, len(barcodes))
	for i, b := range barcodes {
		keys[i] = "price:" + b
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("price cache eviction failed")
	}
}

// normalizeUoMs enforces the cross-field tier rules: a base tier at level 1,
// no duplicate levels or barcodes, and a level-1 multiplier pinned to 1.
func normalizeUoMs(payload []dto.UoMPayload) (model.UoMList, error) {
	levels := make(map[int]bool, len(payload))
	barcodes := make(map[string]bool, len(payload))
	uoms := make(model.UoMList, 0, len(payload))
	for _, u := range payload {
		if levels[u.Level] {
			return nil, fmt.Errorf("%w: duplicate uom level %d", ErrInvalidPayload, u.Level)
		}
		levels[u.Level] = true
		if barcodes[u.Barcode] {
			return nil, fmt.Errorf("%w: duplicate barcode %q", ErrInvalidPayload, u.Barcode)
		}
		barcodes[u.Barcode] = true
		if u.Price.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: negative price on uom level %d", ErrInvalidPayload, u.Level)
		}
		multiplier := u.Multiplier
		if u.Level == 1 {
			multiplier = 1
		}
		uoms = append(uoms, model.UoM{
			Level:      u.Level,
			Name:       u.Name,
			Multiplier: multiplier,
			Barcode:    u.Barcode,
			Price:      u.Price,
		})
	}
	if !levels[1] {
		return nil, fmt.Errorf("%w: a base uom at level 1 is required", ErrInvalidPayload)
	}
	return uoms, nil
}

func barcodesOf(uoms model.UoMList) []string {
	out := make([]string, len(uoms))
	for i, u := range uoms {
		out[i] = u.Barcode
	}
	return out
}

func productToResponse(p *model.Product) dto.ProductResponse {
	uoms := make([]dto.UoMPayload, len(p.UoMs))
	for i, u := range p.UoMs {
		uoms[i] = dto.UoMPayload{
			Level:      u.Level,
			Name:       u.Name,
			Multiplier: u.Multiplier,
			Barcode:    u.Barcode,
			Price:      u.Price,
		}
	}
	return dto.ProductResponse{
		ID:                p.ID.String(),
		ShopID:            p.ShopID.String(),
		Name:              p.Name,
		Category:          p.Category,
		CostPrice:         p.CostPrice,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		UoMs:              uoms,
	}
}

func productsToResponses(products []model.Product) []dto.ProductResponse {
	resp := make([]dto.ProductResponse, len(products))
	for i := range products {
		resp[i] = productToResponse(&products[i])
	}
	return resp
}
