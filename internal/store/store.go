// Package store is the application-side state container behind the POS
// screens: session, active shop, per-shop collections and the cart. All
// writes go through the API client; the store never mutates server state
// locally and refreshes its collections after each write so screens always
// render server truth.
package store

import (
	"context"
	"errors"
	"sync"

	"wonkepos/internal/apiclient"
	"wonkepos/internal/dto"
	"wonkepos/internal/i18n"

	"github.com/shopspring/decimal"
)

var (
	ErrNoSession         = errors.New("no active session")
	ErrNoActiveShop      = errors.New("no active shop")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrShopNotOwned      = errors.New("shop does not belong to the signed-in owner")
	ErrStaffOnly         = errors.New("operation requires a staff session")
	ErrNeedShopSelection = errors.New("owner has multiple shops; select one")
)

// Notifier receives user-facing messages (toasts). The zero implementation
// drops them.
type Notifier interface {
	Notify(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}

// SessionKind distinguishes who is signed in.
type SessionKind string

const (
	SessionNone  SessionKind = ""
	SessionOwner SessionKind = "owner"
	SessionStaff SessionKind = "staff"
)

// CartLine is one entry in the in-memory cart. Price and multiplier are
// captured at add time; the server re-reads the product at checkout.
type CartLine struct {
	ProductID   string
	ProductName string
	UoMLevel    int
	UoMName     string
	Multiplier  int
	Quantity    int
	Price       decimal.Decimal
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Store holds all client state. Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	api    apiclient.API
	notify Notifier
	lang   i18n.Language

	kind  SessionKind
	owner *dto.OwnerResponse
	staff *dto.StaffResponse

	activeShopID      string
	needsShopSelect   bool
	licenseBlocked    bool
	shops             []Shop
	staffList         []dto.StaffResponse
	products          []dto.ProductResponse
	sales             []dto.SaleResponse
	cart              []CartLine
}

func New(api apiclient.API, notify Notifier, lang i18n.Language) *Store {
	if notify == nil {
		notify = nopNotifier{}
	}
	if !i18n.Supported(lang) {
		lang = i18n.English
	}
	return &Store{api: api, notify: notify, lang: lang}
}

func (s *Store) t(key string) string { return i18n.T(s.lang, key) }

// ─── Session ─────────────────────────────────────────────────────────────────

// LoginOwner signs an owner in. With exactly one shop the store binds it as
// the active shop immediately; with several the caller must follow up with
// SetActiveShop, signalled by NeedsShopSelection.
func (s *Store) LoginOwner(ctx context.Context, username, password string) error {
	resp, err := s.api.OwnerLogin(ctx, dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		s.notify.Notify(s.t("login.invalid"))
		return err
	}
	shops, err := s.api.ListShopsByOwner(ctx, resp.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.reset()
	s.kind = SessionOwner
	s.owner = &resp.OwnerResponse
	s.shops = adaptShops(shops)
	switch len(shops) {
	case 0:
		// New owner without shops: session is valid, nothing to bind
	case 1:
		s.activeShopID = shops[0].ID
	default:
		s.needsShopSelect = true
	}
	shopID := s.activeShopID
	s.mu.Unlock()

	if shopID != "" {
		return s.refreshCollections(ctx, shopID)
	}
	if len(shops) > 1 {
		s.notify.Notify(s.t("login.select_shop"))
	}
	return nil
}

// LoginStaff signs a staff member in and binds their shop as active. An
// expired license yields a blocking state, never a half-usable session.
func (s *Store) LoginStaff(ctx context.Context, username, password string) error {
	resp, err := s.api.StaffLogin(ctx, dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		s.mu.Lock()
		s.reset()
		if errors.Is(err, apiclient.ErrLicenseExpired) {
			s.licenseBlocked = true
		}
		s.mu.Unlock()
		if errors.Is(err, apiclient.ErrLicenseExpired) {
			s.notify.Notify(s.t("login.license_expired"))
		} else {
			s.notify.Notify(s.t("login.invalid"))
		}
		return err
	}

	s.mu.Lock()
	s.reset()
	s.kind = SessionStaff
	staff := resp.Staff
	s.staff = &staff
	s.shops = []Shop{adaptShop(resp.Shop)}
	s.activeShopID = resp.Shop.ID
	s.mu.Unlock()

	return s.refreshCollections(ctx, resp.Shop.ID)
}

// Logout clears the session, the active shop and the cart.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// reset must be called under the write lock.
func (s *Store) reset() {
	s.kind = SessionNone
	s.owner = nil
	s.staff = nil
	s.activeShopID = ""
	s.needsShopSelect = false
	s.licenseBlocked = false
	s.shops = nil
	s.staffList = nil
	s.products = nil
	s.sales = nil
	s.cart = nil
}

// SetActiveShop switches the owner's working shop. Every scoped collection
// reloads and the cart is discarded — cart lines are priced against the
// previous shop's catalog.
func (s *Store) SetActiveShop(ctx context.Context, shopID string) error {
	s.mu.Lock()
	if s.kind == SessionNone {
		s.mu.Unlock()
		return ErrNoSession
	}
	owned := false
	for _, shop := range s.shops {
		if shop.ID == shopID {
			owned = true
			break
		}
	}
	if !owned {
		s.mu.Unlock()
		return ErrShopNotOwned
	}
	s.activeShopID = shopID
	s.needsShopSelect = false
	s.cart = nil
	s.mu.Unlock()

	if err := s.refreshCollections(ctx, shopID); err != nil {
		return err
	}
	s.notify.Notify(s.t("shop.switched"))
	return nil
}

// refreshCollections reloads every shop-scoped collection from the API.
func (s *Store) refreshCollections(ctx context.Context, shopID string) error {
	staffList, err := s.api.ListStaffByShop(ctx, shopID)
	if err != nil {
		return err
	}
	products, err := s.api.ListProductsByShop(ctx, shopID)
	if err != nil {
		return err
	}
	sales, err := s.api.ListSalesByShop(ctx, shopID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeShopID != shopID {
		// Shop changed while the refresh was in flight; drop stale data
		return nil
	}
	s.staffList = staffList
	s.products = products
	s.sales = sales
	return nil
}

// ─── Cart ────────────────────────────────────────────────────────────────────

// AddToCart adds quantity of the product's uomLevel tier. Same product and
// tier merge into one line.
func (s *Store) AddToCart(productID string, uomLevel, quantity int) error {
	if quantity < 1 {
		return errors.New("quantity must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeShopID == "" {
		return ErrNoActiveShop
	}

	var product *dto.ProductResponse
	for i := range s.products {
		if s.products[i].ID == productID {
			product = &s.products[i]
			break
		}
	}
	if product == nil {
		return errors.New("product not in active shop")
	}
	var tier *dto.UoMPayload
	for i := range product.UoMs {
		if product.UoMs[i].Level == uomLevel {
			tier = &product.UoMs[i]
			break
		}
	}
	if tier == nil {
		return errors.New("product has no such uom level")
	}

	s.cart = reduceCartAdd(s.cart, CartLine{
		ProductID:   product.ID,
		ProductName: product.Name,
		UoMLevel:    tier.Level,
		UoMName:     tier.Name,
		Multiplier:  tier.Multiplier,
		Quantity:    quantity,
		Price:       tier.Price,
	})
	s.notify.Notify(s.t("cart.added"))
	return nil
}

// reduceCartAdd merges line into cart: an existing line with the same
// product and tier absorbs the quantity, otherwise the line is appended.
func reduceCartAdd(cart []CartLine, line CartLine) []CartLine {
	for i := range cart {
		if cart[i].ProductID == line.ProductID && cart[i].UoMLevel == line.UoMLevel {
			cart[i].Quantity += line.Quantity
			return cart
		}
	}
	return append(cart, line)
}

// RemoveFromCart drops the line for the product and tier, if present.
func (s *Store) RemoveFromCart(productID string, uomLevel int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ProductID == productID && s.cart[i].UoMLevel == uomLevel {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return
		}
	}
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
}

// CartTotal sums line subtotals.
func (s *Store) CartTotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, line := range s.cart {
		total = total.Add(line.Subtotal())
	}
	return total
}

// ─── Flows ───────────────────────────────────────────────────────────────────

// Checkout submits the cart as one atomic server-side sale. The cart is
// cleared only when the server confirms; any error leaves it intact for
// retry.
func (s *Store) Checkout(ctx context.Context, paymentMethod string) (*dto.CheckoutResponse, error) {
	s.mu.RLock()
	if s.kind != SessionStaff || s.staff == nil {
		s.mu.RUnlock()
		return nil, ErrStaffOnly
	}
	if len(s.cart) == 0 {
		s.mu.RUnlock()
		s.notify.Notify(s.t("cart.empty"))
		return nil, ErrEmptyCart
	}
	shopID := s.activeShopID
	req := dto.CheckoutRequest{
		StaffID:       s.staff.ID,
		StaffName:     s.staff.Name,
		PaymentMethod: paymentMethod,
		Lines:         make([]dto.CheckoutLine, len(s.cart)),
	}
	for i, line := range s.cart {
		req.Lines[i] = dto.CheckoutLine{
			ProductID: line.ProductID,
			UoMLevel:  line.UoMLevel,
			Quantity:  line.Quantity,
			Price:     line.Price,
		}
	}
	s.mu.RUnlock()

	resp, err := s.api.Checkout(ctx, shopID, req)
	if err != nil {
		s.notify.Notify(s.t("checkout.failed"))
		return nil, err
	}

	s.mu.Lock()
	s.cart = nil
	s.mu.Unlock()
	s.notify.Notify(s.t("checkout.success"))

	if err := s.refreshCollections(ctx, shopID); err != nil {
		return resp, err
	}
	return resp, nil
}

// ProcessGRV submits a goods-received voucher for the active shop.
func (s *Store) ProcessGRV(ctx context.Context, supplier, invoiceNumber string, items []dto.GRVItem) (*dto.GRVResponse, error) {
	s.mu.RLock()
	shopID := s.activeShopID
	s.mu.RUnlock()
	if shopID == "" {
		return nil, ErrNoActiveShop
	}
	if supplier == "" {
		return nil, errors.New(s.t("grv.supplier_required"))
	}
	if invoiceNumber == "" {
		return nil, errors.New(s.t("grv.invoice_required"))
	}
	if len(items) == 0 {
		return nil, errors.New(s.t("grv.items_required"))
	}

	resp, err := s.api.ProcessGRV(ctx, shopID, dto.GRVRequest{
		Supplier:      supplier,
		InvoiceNumber: invoiceNumber,
		Items:         items,
	})
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			s.notify.Notify(s.t("grv.unknown_product"))
		}
		return nil, err
	}
	s.notify.Notify(s.t("grv.success"))

	if err := s.refreshCollections(ctx, shopID); err != nil {
		return resp, err
	}
	return resp, nil
}

// AddProduct creates a product in the active shop and refreshes the catalog.
func (s *Store) AddProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	s.mu.RLock()
	shopID := s.activeShopID
	s.mu.RUnlock()
	if shopID == "" {
		return nil, ErrNoActiveShop
	}
	req.ShopID = shopID

	resp, err := s.api.CreateProduct(ctx, req)
	if err != nil {
		return nil, err
	}
	s.notify.Notify(s.t("product.saved"))
	if err := s.refreshCollections(ctx, shopID); err != nil {
		return resp, err
	}
	return resp, nil
}

// UpdateProduct edits a product and refreshes the catalog.
func (s *Store) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	s.mu.RLock()
	shopID := s.activeShopID
	s.mu.RUnlock()
	if shopID == "" {
		return nil, ErrNoActiveShop
	}

	resp, err := s.api.UpdateProduct(ctx, productID, req)
	if err != nil {
		return nil, err
	}
	s.notify.Notify(s.t("product.saved"))
	if err := s.refreshCollections(ctx, shopID); err != nil {
		return resp, err
	}
	return resp, nil
}

// CashOut closes the signed-in staff member's day server-side.
func (s *Store) CashOut(ctx context.Context) (*dto.CashOutResponse, error) {
	s.mu.RLock()
	if s.kind != SessionStaff || s.staff == nil {
		s.mu.RUnlock()
		return nil, ErrStaffOnly
	}
	staffID := s.staff.ID
	shopID := s.activeShopID
	s.mu.RUnlock()

	resp, err := s.api.CashOutStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	s.notify.Notify(s.t("dayend.cashed_out"))
	if err := s.refreshCollections(ctx, shopID); err != nil {
		return resp, err
	}
	return resp, nil
}

// DayEnd fetches the signed-in staff member's day-end summary.
func (s *Store) DayEnd(ctx context.Context) (*dto.DayEndSummaryResponse, error) {
	s.mu.RLock()
	if s.kind != SessionStaff || s.staff == nil {
		s.mu.RUnlock()
		return nil, ErrStaffOnly
	}
	staffID := s.staff.ID
	s.mu.RUnlock()
	return s.api.DayEndSummary(ctx, staffID)
}

// ─── Getters ─────────────────────────────────────────────────────────────────

func (s *Store) SessionKind() SessionKind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kind
}

func (s *Store) Owner() *dto.OwnerResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owner
}

func (s *Store) Staff() *dto.StaffResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.staff
}

// NeedsShopSelection reports whether an owner login is waiting on
// SetActiveShop.
func (s *Store) NeedsShopSelection() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.needsShopSelect
}

// LicenseBlocked reports whether the last staff login was rejected for an
// expired license.
func (s *Store) LicenseBlocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.licenseBlocked
}

func (s *Store) ActiveShop() *Shop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.shops {
		if s.shops[i].ID == s.activeShopID {
			shop := s.shops[i]
			return &shop
		}
	}
	return nil
}

func (s *Store) Shops() []Shop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Shop, len(s.shops))
	copy(out, s.shops)
	return out
}

func (s *Store) StaffList() []dto.StaffResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dto.StaffResponse, len(s.staffList))
	copy(out, s.staffList)
	return out
}

func (s *Store) Products() []dto.ProductResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dto.ProductResponse, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Sales() []dto.SaleResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dto.SaleResponse, len(s.sales))
	copy(out, s.sales)
	return out
}

func (s *Store) Cart() []CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CartLine, len(s.cart))
	copy(out, s.cart)
	return out
}
