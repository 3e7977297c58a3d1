package worker

// Processes day-end report jobs from QueueDayEndReport: resolves the staff
// member, their shop and the shop's owner, renders the day-end summary as a
// PDF and mails it to the owner. Like the alert worker, SMTP sends go
// through the circuit breaker.

import (
	"context"
	"encoding/json"
	"fmt"

	"wonkepos/internal/infra"
	"wonkepos/internal/repository"
	"wonkepos/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type ReportWorker struct {
	mailer  *infra.Mailer
	breaker *infra.CircuitBreaker
	staff   repository.StaffRepository
	sales   repository.SaleRepository
	shops   repository.ShopRepository
	owners  repository.OwnerRepository
	rdb     *redis.Client
}

func NewReportWorker(
	mailer *infra.Mailer,
	breaker *infra.CircuitBreaker,
	staff repository.StaffRepository,
	sales repository.SaleRepository,
	shops repository.ShopRepository,
	owners repository.OwnerRepository,
	rdb *redis.Client,
) *ReportWorker {
	return &ReportWorker{
		mailer:  mailer,
		breaker: breaker,
		staff:   staff,
		sales:   sales,
		shops:   shops,
		owners:  owners,
		rdb:     rdb,
	}
}

// Process mails the cashed-out staff member's day-end PDF to the shop owner.
func (w *ReportWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload DayEndReportPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("report_worker: invalid payload")
		return
	}
	staffID, err := uuid.Parse(payload.StaffID)
	if err != nil {
		log.Error().Str("staff_id", payload.StaffID).Msg("report_worker: bad staff id")
		return
	}

	member, err := w.staff.FindByID(ctx, staffID)
	if err != nil {
		log.Warn().Str("staff_id", payload.StaffID).Msg("report_worker: staff gone — skipping")
		return
	}
	shop, err := w.shops.FindByID(ctx, member.ShopID)
	if err != nil {
		log.Warn().Str("staff_id", payload.StaffID).Msg("report_worker: shop gone — skipping")
		return
	}
	owner, err := w.owners.FindByID(ctx, shop.OwnerID)
	if err != nil || owner.Email == "" {
		log.Warn().Str("shop_id", shop.ID.String()).Msg("report_worker: no owner email — skipping")
		return
	}

	sales, err := w.sales.ListByStaff(ctx, staffID)
	if err != nil {
		log.Error().Err(err).Str("staff_id", payload.StaffID).Msg("report_worker: sales lookup failed")
		SendToDLQ(ctx, w.rdb, QueueDayEndReport, "day_end_report", raw, err.Error(), 1)
		return
	}
	summary := service.AggregateDayEnd(sales)
	summary.StaffID = staffID.String()
	summary.StaffName = member.Name

	pdf, err := infra.GenerateDayEndPDF(shop.Name, summary)
	if err != nil {
		log.Error().Err(err).Str("staff_id", payload.StaffID).Msg("report_worker: pdf render failed")
		SendToDLQ(ctx, w.rdb, QueueDayEndReport, "day_end_report", raw, err.Error(), 1)
		return
	}

	subject := fmt.Sprintf("Day-end report: %s at %s", member.Name, shop.Name)
	body := fmt.Sprintf(
		"%s closed the day at %q with %d sale(s) cashed out.\nThe full day-end report is attached.",
		member.Name, shop.Name, payload.CashedOut,
	)
	filename := fmt.Sprintf("day-end-%s.pdf", staffID.String())

	err = w.breaker.Execute(func() error {
		return w.mailer.SendReport(owner.Email, subject, body, filename, pdf)
	})
	if err != nil {
		SendToDLQ(ctx, w.rdb, QueueDayEndReport, "day_end_report", raw, err.Error(), 1)
		return
	}
	log.Info().
		Str("staff_id", payload.StaffID).
		Str("to", owner.Email).
		Msg("report_worker: day-end report sent")
}
