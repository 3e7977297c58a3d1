//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// These tests:
//   - Full retail cycle (owner → shop → staff → product → checkout → day end)
//   - Goods received voucher updates stock and cost
//   - Price check station resolves tier barcodes
//   - Staff login blocked on expired license

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"wonkepos/internal/config"
	"wonkepos/internal/infra"
	"wonkepos/internal/router"
	"wonkepos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	engine *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("wonkepos_test"),
		tcPostgres.WithUsername("wonkepos"),
		tcPostgres.WithPassword("wonkepos"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	require.NoError(t, infra.RunMigrations(db))

	r := router.New(cfg, db, rdb, worker.NewDispatcher(rdb))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, engine: r}
}

// createTenant provisions an owner, one shop and one cashier and returns
// their ids.
func createTenant(t *testing.T, env *testEnv, licenseStatus string) (ownerID, shopID, staffID string) {
	t.Helper()

	ownerResp := do(t, env.server, "POST", "/api/owners", jsonBody(t, map[string]any{
		"name":     "Mulu Tadesse",
		"email":    "mulu@e2e.test",
		"phone":    "+251911000000",
		"username": fmt.Sprintf("mulu-%s", licenseStatus),
		"password": "owner1234",
	}))
	require.Equal(t, http.StatusCreated, ownerResp.StatusCode)
	var owner struct {
		ID string `json:"id"`
	}
	decodeJSON(t, ownerResp, &owner)

	shopResp := do(t, env.server, "POST", "/api/shops", jsonBody(t, map[string]any{
		"ownerId":           owner.ID,
		"name":              "Bole Branch",
		"location":          "Addis Ababa",
		"licenseStatus":     licenseStatus,
		"licenseExpiryDate": "2030-06-30",
		"licensePlan":       "pro",
	}))
	require.Equal(t, http.StatusCreated, shopResp.StatusCode)
	var shop struct {
		ID string `json:"id"`
	}
	decodeJSON(t, shopResp, &shop)

	staffResp := do(t, env.server, "POST", "/api/staff", jsonBody(t, map[string]any{
		"shopId":   shop.ID,
		"name":     "Abebe Kebede",
		"role":     "cashier",
		"username": fmt.Sprintf("abebe-%s", licenseStatus),
		"password": "cashier1234",
	}))
	require.Equal(t, http.StatusCreated, staffResp.StatusCode)
	var staff struct {
		ID string `json:"id"`
	}
	decodeJSON(t, staffResp, &staff)

	return owner.ID, shop.ID, staff.ID
}

func createWater(t *testing.T, env *testEnv, shopID string, stock int) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/api/products", jsonBody(t, map[string]any{
		"shopId":            shopID,
		"name":              "Bottled Water",
		"category":          "Beverages",
		"costPrice":         "8.50",
		"stockQuantity":     stock,
		"lowStockThreshold": 10,
		"uoms": []map[string]any{
			{"level": 1, "name": "Bottle", "multiplier": 1, "barcode": "4890001000001", "price": "12.00"},
			{"level": 2, "name": "Six-pack", "multiplier": 6, "barcode": "4890001000002", "price": "65.00"},
			{"level": 3, "name": "Crate", "multiplier": 24, "barcode": "4890001000003", "price": "240.00"},
		},
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &prod)
	return prod.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_FullRetailCycle(t *testing.T) {
	env := setupTestEnv(t)
	_, shopID, staffID := createTenant(t, env, "active")
	prodID := createWater(t, env, shopID, 150)

	// Staff login binds the shop
	loginResp := do(t, env.server, "POST", "/api/auth/staff-login", jsonBody(t, map[string]string{
		"username": "abebe-active", "password": "cashier1234",
	}))
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var login struct {
		Staff struct {
			ID string `json:"id"`
		} `json:"staff"`
		Shop struct {
			ID string `json:"id"`
		} `json:"shop"`
	}
	decodeJSON(t, loginResp, &login)
	assert.Equal(t, shopID, login.Shop.ID)

	// Checkout two crates: 150 − 48 = 102 base units
	checkoutResp := do(t, env.server, "POST", "/api/shops/"+shopID+"/checkout", jsonBody(t, map[string]any{
		"staffId":       staffID,
		"staffName":     "Abebe Kebede",
		"paymentMethod": "cash",
		"lines": []map[string]any{
			{"productId": prodID, "uomLevel": 3, "quantity": 2, "price": "240.00"},
		},
	}))
	require.Equal(t, http.StatusCreated, checkoutResp.StatusCode)
	var checkout struct {
		Sale struct {
			TotalAmount string `json:"totalAmount"`
			Status      string `json:"status"`
		} `json:"sale"`
		Lines []struct {
			StockApplied bool `json:"stockApplied"`
			StockAfter   int  `json:"stockAfter"`
		} `json:"lines"`
	}
	decodeJSON(t, checkoutResp, &checkout)
	assert.Equal(t, "480", checkout.Sale.TotalAmount)
	assert.Equal(t, "open", checkout.Sale.Status)
	require.Len(t, checkout.Lines, 1)
	assert.True(t, checkout.Lines[0].StockApplied)
	assert.Equal(t, 102, checkout.Lines[0].StockAfter)

	// Day end shows the open sale, then cash-out settles it
	dayEndResp := do(t, env.server, "GET", "/api/staff/"+staffID+"/day-end", nil)
	require.Equal(t, http.StatusOK, dayEndResp.StatusCode)
	var summary struct {
		OpenTotal string `json:"openTotal"`
		Settled   bool   `json:"settled"`
	}
	decodeJSON(t, dayEndResp, &summary)
	assert.Equal(t, "480", summary.OpenTotal)
	assert.False(t, summary.Settled)

	cashOutResp := do(t, env.server, "POST", "/api/staff/"+staffID+"/cash-out", nil)
	require.Equal(t, http.StatusOK, cashOutResp.StatusCode)
	var cashOut struct {
		CashedOut int `json:"cashedOut"`
	}
	decodeJSON(t, cashOutResp, &cashOut)
	assert.Equal(t, 1, cashOut.CashedOut)

	dayEndResp = do(t, env.server, "GET", "/api/staff/"+staffID+"/day-end", nil)
	require.Equal(t, http.StatusOK, dayEndResp.StatusCode)
	decodeJSON(t, dayEndResp, &summary)
	assert.True(t, summary.Settled)
}

func TestE2E_GRVUpdatesStockAndCost(t *testing.T) {
	env := setupTestEnv(t)
	_, shopID, _ := createTenant(t, env, "active")
	prodID := createWater(t, env, shopID, 150)

	grvResp := do(t, env.server, "POST", "/api/shops/"+shopID+"/grv", jsonBody(t, map[string]any{
		"supplier":      "Acme Distribution",
		"invoiceNumber": "INV-1042",
		"items": []map[string]any{
			{"productId": prodID, "quantityReceived": 50, "newCost": "9.35"},
		},
	}))
	require.Equal(t, http.StatusOK, grvResp.StatusCode)
	var grv struct {
		Items []struct {
			StockAfter   int    `json:"stockAfter"`
			CostAfter    string `json:"costAfter"`
			CostDeltaPct string `json:"costDeltaPct"`
		} `json:"items"`
	}
	decodeJSON(t, grvResp, &grv)
	require.Len(t, grv.Items, 1)
	assert.Equal(t, 200, grv.Items[0].StockAfter)
	assert.Equal(t, "9.35", grv.Items[0].CostAfter)
	assert.Equal(t, "10", grv.Items[0].CostDeltaPct)

	prodResp := do(t, env.server, "GET", "/api/products/"+prodID, nil)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		StockQuantity int    `json:"stockQuantity"`
		CostPrice     string `json:"costPrice"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 200, prod.StockQuantity)
	assert.Equal(t, "9.35", prod.CostPrice)
}

func TestE2E_PriceCheckStation(t *testing.T) {
	env := setupTestEnv(t)
	_, shopID, _ := createTenant(t, env, "active")
	createWater(t, env, shopID, 150)

	resp := do(t, env.server, "GET", "/api/price/4890001000002", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var price struct {
		UoMName  string `json:"uomName"`
		UoMLevel int    `json:"uomLevel"`
		Price    string `json:"price"`
	}
	decodeJSON(t, resp, &price)
	assert.Equal(t, "Six-pack", price.UoMName)
	assert.Equal(t, 2, price.UoMLevel)
	assert.Equal(t, "65.00", price.Price)

	// Unknown barcode is a clean 404
	resp = do(t, env.server, "GET", "/api/price/0000000000000", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestE2E_StaffLoginBlockedOnExpiredLicense(t *testing.T) {
	env := setupTestEnv(t)
	createTenant(t, env, "expired")

	resp := do(t, env.server, "POST", "/api/auth/staff-login", jsonBody(t, map[string]string{
		"username": "abebe-expired", "password": "cashier1234",
	}))
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	var body struct {
		Code string `json:"code"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "license_expired", body.Code)
}
