package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"wonkepos/internal/config"
	"wonkepos/internal/dto"
	"wonkepos/internal/handler"
	"wonkepos/internal/model"
	"wonkepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authEnv struct {
	owners *stubOwnerRepo
	shops  *stubShopRepo
	staff  *stubStaffRepo
	svc    service.AuthService
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()
	shops := newStubShopRepo()
	staff := newStubStaffRepo()
	shops.staff = staff
	env := &authEnv{
		owners: newStubOwnerRepo(shops),
		shops:  shops,
		staff:  staff,
	}
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1}
	env.svc = service.NewAuthService(env.owners, env.staff, env.shops, cfg)
	return env
}

func mustBcrypt(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func (env *authEnv) seedStaff(t *testing.T, licenseStatus, passwordHash string) *model.Staff {
	t.Helper()
	shop := &model.Shop{
		Name:              "Corner Shop",
		Location:          "Merkato",
		LicenseStatus:     licenseStatus,
		LicenseExpiryDate: "2030-01-01",
	}
	require.NoError(t, env.shops.Create(context.Background(), shop))
	member := &model.Staff{
		ShopID:       shop.ID,
		Name:         "Sara",
		Role:         model.RoleSupervisor,
		Username:     "sara",
		PasswordHash: passwordHash,
	}
	require.NoError(t, env.staff.Create(context.Background(), member))
	return member
}

func TestOwnerLoginSuccessIssuesToken(t *testing.T) {
	env := newAuthEnv(t)
	require.NoError(t, env.owners.Create(context.Background(), &model.Owner{
		Name:         "Mulu",
		Email:        "mulu@example.com",
		Username:     "mulu",
		PasswordHash: mustBcrypt(t, "owner1234"),
	}))

	resp, err := env.svc.OwnerLogin(context.Background(), dto.LoginRequest{Username: "mulu", Password: "owner1234"})
	require.NoError(t, err)
	assert.Equal(t, "mulu", resp.Username)
	assert.NotEmpty(t, resp.Token)
}

func TestOwnerLoginWrongPassword(t *testing.T) {
	env := newAuthEnv(t)
	require.NoError(t, env.owners.Create(context.Background(), &model.Owner{
		Username:     "mulu",
		PasswordHash: mustBcrypt(t, "owner1234"),
	}))

	_, err := env.svc.OwnerLogin(context.Background(), dto.LoginRequest{Username: "mulu", Password: "nope"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestStaffLoginReturnsStaffAndShop(t *testing.T) {
	env := newAuthEnv(t)
	member := env.seedStaff(t, model.LicenseActive, mustBcrypt(t, "pw1234"))

	resp, err := env.svc.StaffLogin(context.Background(), dto.LoginRequest{Username: "sara", Password: "pw1234"})
	require.NoError(t, err)
	assert.Equal(t, member.ID.String(), resp.Staff.ID)
	assert.Equal(t, member.ShopID.String(), resp.Shop.ID)
	assert.Equal(t, model.LicenseActive, resp.Shop.LicenseStatus)
	assert.NotEmpty(t, resp.Token)
}

// The license gate fires before password verification: even a wrong password
// yields the license rejection, never the credentials one.
func TestStaffLoginExpiredLicenseWinsOverBadPassword(t *testing.T) {
	env := newAuthEnv(t)
	env.seedStaff(t, model.LicenseExpired, mustBcrypt(t, "pw1234"))

	_, err := env.svc.StaffLogin(context.Background(), dto.LoginRequest{Username: "sara", Password: "wrong-password"})
	assert.ErrorIs(t, err, service.ErrLicenseExpired)
}

func TestStaffLoginExpiredLicenseWithCorrectPassword(t *testing.T) {
	env := newAuthEnv(t)
	env.seedStaff(t, model.LicenseExpired, mustBcrypt(t, "pw1234"))

	_, err := env.svc.StaffLogin(context.Background(), dto.LoginRequest{Username: "sara", Password: "pw1234"})
	assert.ErrorIs(t, err, service.ErrLicenseExpired)
}

// Rows seeded before hashing was introduced hold plaintext; they must keep
// working until rotated.
func TestLegacyPlaintextPasswordStillVerifies(t *testing.T) {
	env := newAuthEnv(t)
	env.seedStaff(t, model.LicenseActive, "legacy-plaintext")

	_, err := env.svc.StaffLogin(context.Background(), dto.LoginRequest{Username: "sara", Password: "legacy-plaintext"})
	assert.NoError(t, err)

	_, err = env.svc.StaffLogin(context.Background(), dto.LoginRequest{Username: "sara", Password: "other"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

// Handler-level check: the expired license surfaces as 403 with the
// machine-readable code clients branch on.
func TestStaffLoginHandlerLicenseExpired403(t *testing.T) {
	gin.SetMode(gin.TestMode)
	env := newAuthEnv(t)
	env.seedStaff(t, model.LicenseExpired, mustBcrypt(t, "pw1234"))

	r := gin.New()
	h := handler.NewAuthHandler(env.svc)
	r.POST("/api/auth/staff-login", h.StaffLogin)

	body, _ := json.Marshal(dto.LoginRequest{Username: "sara", Password: "pw1234"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/staff-login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var envelope struct {
		Detail string `json:"detail"`
		Code   string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "license_expired", envelope.Code)
	assert.NotEmpty(t, envelope.Detail)
}

func TestStaffLoginHandlerBadCredentials401(t *testing.T) {
	gin.SetMode(gin.TestMode)
	env := newAuthEnv(t)
	env.seedStaff(t, model.LicenseActive, mustBcrypt(t, "pw1234"))

	r := gin.New()
	h := handler.NewAuthHandler(env.svc)
	r.POST("/api/auth/staff-login", h.StaffLogin)

	body, _ := json.Marshal(dto.LoginRequest{Username: "sara", Password: "wrong"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/staff-login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
