package tests

import (
	"context"
	"testing"

	"wonkepos/internal/model"
	"wonkepos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (env *saleEnv) addSale(t *testing.T, amount float64, method, status string) {
	t.Helper()
	require.NoError(t, env.sales.Create(context.Background(), nil, &model.Sale{
		ShopID:        env.shopID,
		StaffID:       env.staffID,
		StaffName:     "Abebe",
		TotalAmount:   decimal.NewFromFloat(amount),
		PaymentMethod: method,
		ItemsCount:    1,
		Status:        status,
	}))
}

func TestCashOutFlipsOpenSalesAndIsIdempotent(t *testing.T) {
	env := newSaleEnv(t)
	env.addSale(t, 100, model.PayCash, model.SaleOpen)
	env.addSale(t, 50, model.PayCard, model.SaleOpen)
	env.addSale(t, 200, model.PayCash, model.SaleCashedOut)

	resp, err := env.svc.CashOut(context.Background(), env.staffID)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.CashedOut)

	// Second call is a no-op success, not an error
	resp, err = env.svc.CashOut(context.Background(), env.staffID)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CashedOut)

	for _, s := range env.sales.sales {
		assert.Equal(t, model.SaleCashedOut, s.Status)
	}

	// One day-end report job per actual close; the no-op repeat sends none
	require.Len(t, env.dispatch.reports, 1)
	assert.Equal(t, env.staffID, env.dispatch.reports[0])
}

func TestCashOutUnknownStaffRejected(t *testing.T) {
	env := newSaleEnv(t)
	_, err := env.svc.CashOut(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDayEndSummaryAggregation(t *testing.T) {
	env := newSaleEnv(t)
	env.addSale(t, 100, model.PayCash, model.SaleOpen)
	env.addSale(t, 50, model.PayCard, model.SaleOpen)
	env.addSale(t, 200, model.PayCash, model.SaleCashedOut)

	summary, err := env.svc.DayEndSummary(context.Background(), env.staffID)
	require.NoError(t, err)

	assert.Equal(t, "Abebe", summary.StaffName)
	// Lifetime total covers cashed-out history too
	assert.True(t, summary.TotalSales.Equal(decimal.NewFromFloat(350)))
	assert.True(t, summary.OpenTotal.Equal(decimal.NewFromFloat(150)))
	assert.True(t, summary.OpenCash.Equal(decimal.NewFromFloat(100)))
	assert.True(t, summary.OpenCard.Equal(decimal.NewFromFloat(50)))
	assert.Equal(t, 3, summary.TransactionCount)
	assert.False(t, summary.Settled)
}

func TestDayEndSettledAfterCashOut(t *testing.T) {
	env := newSaleEnv(t)
	env.addSale(t, 100, model.PayCash, model.SaleOpen)

	_, err := env.svc.CashOut(context.Background(), env.staffID)
	require.NoError(t, err)

	summary, err := env.svc.DayEndSummary(context.Background(), env.staffID)
	require.NoError(t, err)
	assert.True(t, summary.Settled)
	assert.True(t, summary.OpenTotal.IsZero())
	// Lifetime figures survive the cash-out
	assert.True(t, summary.TotalSales.Equal(decimal.NewFromFloat(100)))
	assert.Equal(t, 1, summary.TransactionCount)
}

func TestDayEndEmptyHistoryIsSettled(t *testing.T) {
	env := newSaleEnv(t)
	summary, err := env.svc.DayEndSummary(context.Background(), env.staffID)
	require.NoError(t, err)
	assert.True(t, summary.Settled)
	assert.Equal(t, 0, summary.TransactionCount)
}
