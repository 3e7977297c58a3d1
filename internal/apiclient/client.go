// Package apiclient is the typed HTTP client the application store talks
// through. It mirrors the REST surface one method per endpoint and folds the
// error taxonomy into sentinel errors callers can branch on.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"wonkepos/internal/apierror"
	"wonkepos/internal/dto"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrLicenseExpired = errors.New("license expired")
	ErrConflict       = errors.New("conflict")
)

// API is the surface the store consumes. Tests substitute a fake.
type API interface {
	OwnerLogin(ctx context.Context, req dto.LoginRequest) (*dto.OwnerLoginResponse, error)
	StaffLogin(ctx context.Context, req dto.LoginRequest) (*dto.StaffLoginResponse, error)

	ListShopsByOwner(ctx context.Context, ownerID string) ([]dto.ShopResponse, error)
	GetShop(ctx context.Context, shopID string) (*dto.ShopResponse, error)
	ListStaffByShop(ctx context.Context, shopID string) ([]dto.StaffResponse, error)
	ListProductsByShop(ctx context.Context, shopID string) ([]dto.ProductResponse, error)
	ListSalesByShop(ctx context.Context, shopID string) ([]dto.SaleResponse, error)

	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	CreateStaff(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error)

	Checkout(ctx context.Context, shopID string, req dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	ProcessGRV(ctx context.Context, shopID string, req dto.GRVRequest) (*dto.GRVResponse, error)
	CashOutStaff(ctx context.Context, staffID string) (*dto.CashOutResponse, error)
	DayEndSummary(ctx context.Context, staffID string) (*dto.DayEndSummaryResponse, error)
	PriceLookup(ctx context.Context, barcode string) (*dto.PriceLookupResponse, error)
}

// Client talks to the Wonke POS backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken attaches a bearer token to subsequent requests. Needed only when
// the backend runs with REQUIRE_AUTH.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: marshal body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("apiclient: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	return nil
}

// decodeError folds the backend's error envelope into sentinel errors the
// store can branch on, keeping the server's detail text for display.
func (c *Client) decodeError(resp *http.Response) error {
	var envelope apierror.APIError
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	detail := envelope.Detail
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusForbidden && envelope.Code == "license_expired":
		return fmt.Errorf("%w: %s", ErrLicenseExpired, detail)
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, detail)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, detail)
	default:
		return fmt.Errorf("apiclient: %d: %s", resp.StatusCode, detail)
	}
}

func (c *Client) OwnerLogin(ctx context.Context, req dto.LoginRequest) (*dto.OwnerLoginResponse, error) {
	var out dto.OwnerLoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/owner-login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) StaffLogin(ctx context.Context, req dto.LoginRequest) (*dto.StaffLoginResponse, error) {
	var out dto.StaffLoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/staff-login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListShopsByOwner(ctx context.Context, ownerID string) ([]dto.ShopResponse, error) {
	var out []dto.ShopResponse
	if err := c.do(ctx, http.MethodGet, "/api/owners/"+ownerID+"/shops", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetShop(ctx context.Context, shopID string) (*dto.ShopResponse, error) {
	var out dto.ShopResponse
	if err := c.do(ctx, http.MethodGet, "/api/shops/"+shopID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListStaffByShop(ctx context.Context, shopID string) ([]dto.StaffResponse, error) {
	var out []dto.StaffResponse
	if err := c.do(ctx, http.MethodGet, "/api/shops/"+shopID+"/staff", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListProductsByShop(ctx context.Context, shopID string) ([]dto.ProductResponse, error) {
	var out []dto.ProductResponse
	if err := c.do(ctx, http.MethodGet, "/api/shops/"+shopID+"/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListSalesByShop(ctx context.Context, shopID string) ([]dto.SaleResponse, error) {
	var out []dto.SaleResponse
	if err := c.do(ctx, http.MethodGet, "/api/shops/"+shopID+"/sales", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	if err := c.do(ctx, http.MethodPost, "/api/products", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	if err := c.do(ctx, http.MethodPut, "/api/products/"+productID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateStaff(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	var out dto.StaffResponse
	if err := c.do(ctx, http.MethodPost, "/api/staff", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Checkout(ctx context.Context, shopID string, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	var out dto.CheckoutResponse
	if err := c.do(ctx, http.MethodPost, "/api/shops/"+shopID+"/checkout", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ProcessGRV(ctx context.Context, shopID string, req dto.GRVRequest) (*dto.GRVResponse, error) {
	var out dto.GRVResponse
	if err := c.do(ctx, http.MethodPost, "/api/shops/"+shopID+"/grv", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CashOutStaff(ctx context.Context, staffID string) (*dto.CashOutResponse, error) {
	var out dto.CashOutResponse
	if err := c.do(ctx, http.MethodPost, "/api/staff/"+staffID+"/cash-out", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DayEndSummary(ctx context.Context, staffID string) (*dto.DayEndSummaryResponse, error) {
	var out dto.DayEndSummaryResponse
	if err := c.do(ctx, http.MethodGet, "/api/staff/"+staffID+"/day-end", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PriceLookup(ctx context.Context, barcode string) (*dto.PriceLookupResponse, error) {
	var out dto.PriceLookupResponse
	if err := c.do(ctx, http.MethodGet, "/api/price/"+barcode, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
