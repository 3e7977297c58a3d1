package tests

import (
	"context"
	"testing"

	"wonkepos/internal/dto"
	"wonkepos/internal/model"
	"wonkepos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tenancyEnv struct {
	owners   *stubOwnerRepo
	shops    *stubShopRepo
	staff    *stubStaffRepo
	ownerSvc service.OwnerService
	shopSvc  service.ShopService
	staffSvc service.StaffService
}

func newTenancyEnv(t *testing.T) *tenancyEnv {
	t.Helper()
	shops := newStubShopRepo()
	staff := newStubStaffRepo()
	shops.staff = staff
	owners := newStubOwnerRepo(shops)
	return &tenancyEnv{
		owners:   owners,
		shops:    shops,
		staff:    staff,
		ownerSvc: service.NewOwnerService(owners),
		shopSvc:  service.NewShopService(shops, owners),
		staffSvc: service.NewStaffService(staff, shops),
	}
}

func (env *tenancyEnv) createOwner(t *testing.T, username string) *dto.OwnerResponse {
	t.Helper()
	o, err := env.ownerSvc.Create(context.Background(), dto.CreateOwnerRequest{
		Name:     "Owner " + username,
		Email:    username + "@example.com",
		Phone:    "+251911000000",
		Username: username,
		Password: "pass1234",
	})
	require.NoError(t, err)
	return o
}

func (env *tenancyEnv) createShop(t *testing.T, ownerID string) *dto.ShopResponse {
	t.Helper()
	s, err := env.shopSvc.Create(context.Background(), dto.CreateShopRequest{
		OwnerID:           ownerID,
		Name:              "Main Branch",
		Location:          "Bole",
		LicenseExpiryDate: "2030-06-30",
	})
	require.NoError(t, err)
	return s
}

func TestOwnerCreateDuplicateUsername(t *testing.T) {
	env := newTenancyEnv(t)
	env.createOwner(t, "mulu")

	_, err := env.ownerSvc.Create(context.Background(), dto.CreateOwnerRequest{
		Name:     "Another",
		Email:    "other@example.com",
		Phone:    "+251911000001",
		Username: "mulu",
		Password: "pass1234",
	})
	assert.ErrorIs(t, err, service.ErrUsernameTaken)
}

func TestOwnerDeleteBlockedWhileShopsExist(t *testing.T) {
	env := newTenancyEnv(t)
	owner := env.createOwner(t, "mulu")
	env.createShop(t, owner.ID)

	err := env.ownerSvc.Delete(context.Background(), uuid.MustParse(owner.ID))
	assert.ErrorIs(t, err, service.ErrOwnerHasShops)

	// Still present
	_, err = env.ownerSvc.Get(context.Background(), uuid.MustParse(owner.ID))
	assert.NoError(t, err)
}

func TestOwnerDeleteSucceedsAfterShopsRemoved(t *testing.T) {
	env := newTenancyEnv(t)
	owner := env.createOwner(t, "mulu")
	shop := env.createShop(t, owner.ID)

	require.NoError(t, env.shopSvc.Delete(context.Background(), uuid.MustParse(shop.ID)))
	assert.NoError(t, env.ownerSvc.Delete(context.Background(), uuid.MustParse(owner.ID)))
}

func TestShopCreateUnknownOwner(t *testing.T) {
	env := newTenancyEnv(t)
	_, err := env.shopSvc.Create(context.Background(), dto.CreateShopRequest{
		OwnerID:           uuid.NewString(),
		Name:              "Orphan Shop",
		Location:          "Nowhere",
		LicenseExpiryDate: "2030-06-30",
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestShopCreateDefaultsLicense(t *testing.T) {
	env := newTenancyEnv(t)
	owner := env.createOwner(t, "mulu")
	shop := env.createShop(t, owner.ID)

	assert.Equal(t, model.LicenseActive, shop.LicenseStatus)
	assert.Equal(t, "basic", shop.LicensePlan)
}

func TestShopDeleteBlockedWhileStaffExist(t *testing.T) {
	env := newTenancyEnv(t)
	owner := env.createOwner(t, "mulu")
	shop := env.createShop(t, owner.ID)

	member, err := env.staffSvc.Create(context.Background(), dto.CreateStaffRequest{
		ShopID:   shop.ID,
		Name:     "Abebe",
		Role:     model.RoleCashier,
		Username: "abebe",
		Password: "pass1234",
	})
	require.NoError(t, err)

	err = env.shopSvc.Delete(context.Background(), uuid.MustParse(shop.ID))
	assert.ErrorIs(t, err, service.ErrShopHasStaff)

	require.NoError(t, env.staffSvc.Delete(context.Background(), uuid.MustParse(member.ID)))
	assert.NoError(t, env.shopSvc.Delete(context.Background(), uuid.MustParse(shop.ID)))
}

func TestStaffCreateUnknownShop(t *testing.T) {
	env := newTenancyEnv(t)
	_, err := env.staffSvc.Create(context.Background(), dto.CreateStaffRequest{
		ShopID:   uuid.NewString(),
		Name:     "Abebe",
		Role:     model.RoleCashier,
		Username: "abebe",
		Password: "pass1234",
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestStaffCreateDuplicateUsername(t *testing.T) {
	env := newTenancyEnv(t)
	owner := env.createOwner(t, "mulu")
	shop := env.createShop(t, owner.ID)

	req := dto.CreateStaffRequest{
		ShopID:   shop.ID,
		Name:     "Abebe",
		Role:     model.RoleCashier,
		Username: "abebe",
		Password: "pass1234",
	}
	_, err := env.staffSvc.Create(context.Background(), req)
	require.NoError(t, err)

	req.Name = "Other Abebe"
	_, err = env.staffSvc.Create(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrUsernameTaken)
}

func TestShopsListByOwnerScoped(t *testing.T) {
	env := newTenancyEnv(t)
	a := env.createOwner(t, "owner-a")
	b := env.createOwner(t, "owner-b")
	env.createShop(t, a.ID)
	env.createShop(t, a.ID)
	env.createShop(t, b.ID)

	mine, err := env.shopSvc.ListByOwner(context.Background(), uuid.MustParse(a.ID))
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, s := range mine {
		assert.Equal(t, a.ID, s.OwnerID)
	}
}
