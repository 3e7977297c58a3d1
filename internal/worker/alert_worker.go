package worker

// Processes low-stock jobs from QueueLowStock: resolves the product, its
// shop and the shop's owner, then mails the owner a restock notice. SMTP
// sends go through the circuit breaker so a dead relay fast-fails instead
// of stalling the pool.

import (
	"context"
	"encoding/json"
	"fmt"

	"wonkepos/internal/infra"
	"wonkepos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type AlertWorker struct {
	mailer   *infra.Mailer
	breaker  *infra.CircuitBreaker
	products repository.ProductRepository
	shops    repository.ShopRepository
	owners   repository.OwnerRepository
	rdb      *redis.Client
}

func NewAlertWorker(
	mailer *infra.Mailer,
	breaker *infra.CircuitBreaker,
	products repository.ProductRepository,
	shops repository.ShopRepository,
	owners repository.OwnerRepository,
	rdb *redis.Client,
) *AlertWorker {
	return &AlertWorker{
		mailer:   mailer,
		breaker:  breaker,
		products: products,
		shops:    shops,
		owners:   owners,
		rdb:      rdb,
	}
}

// Process sends a low-stock email to the owning shop's owner.
func (w *AlertWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload LowStockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return
	}
	productID, err := uuid.Parse(payload.ProductID)
	if err != nil {
		log.Error().Str("product_id", payload.ProductID).Msg("alert_worker: bad product id")
		return
	}

	product, err := w.products.FindByID(ctx, productID)
	if err != nil {
		// Product may have been deleted between enqueue and processing
		log.Warn().Str("product_id", payload.ProductID).Msg("alert_worker: product gone — skipping")
		return
	}
	shop, err := w.shops.FindByID(ctx, product.ShopID)
	if err != nil {
		log.Warn().Str("product_id", payload.ProductID).Msg("alert_worker: shop gone — skipping")
		return
	}
	owner, err := w.owners.FindByID(ctx, shop.OwnerID)
	if err != nil || owner.Email == "" {
		log.Warn().Str("shop_id", shop.ID.String()).Msg("alert_worker: no owner email — skipping")
		return
	}

	subject := fmt.Sprintf("Low stock: %s at %s", product.Name, shop.Name)
	body := fmt.Sprintf(
		"Product %q in shop %q is down to %d units (threshold %d).\nConsider restocking.",
		product.Name, shop.Name, product.StockQuantity, product.LowStockThreshold,
	)

	err = w.breaker.Execute(func() error {
		return w.mailer.SendAlert(owner.Email, subject, body)
	})
	if err != nil {
		SendToDLQ(ctx, w.rdb, QueueLowStock, "low_stock", raw, err.Error(), 1)
		return
	}
	log.Info().
		Str("product_id", payload.ProductID).
		Str("to", owner.Email).
		Msg("alert_worker: low stock alert sent")
}
