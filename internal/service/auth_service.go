package service

import (
	"context"
	"strings"
	"time"

	"wonkepos/internal/config"
	"wonkepos/internal/dto"
	"wonkepos/internal/model"
	"wonkepos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	OwnerLogin(ctx context.Context, req dto.LoginRequest) (*dto.OwnerLoginResponse, error)
	StaffLogin(ctx context.Context, req dto.LoginRequest) (*dto.StaffLoginResponse, error)
}

type authService struct {
	owners repository.OwnerRepository
	staff  repository.StaffRepository
	shops  repository.ShopRepository
	cfg    *config.Config
}

func NewAuthService(
	owners repository.OwnerRepository,
	staff repository.StaffRepository,
	shops repository.ShopRepository,
	cfg *config.Config,
) AuthService {
	return &authService{owners: owners, staff: staff, shops: shops, cfg: cfg}
}

func (s *authService) OwnerLogin(ctx context.Context, req dto.LoginRequest) (*dto.OwnerLoginResponse, error) {
	owner, err := s.owners.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !verifyPassword(req.Password, owner.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(owner.ID.String(), owner.Username, "owner", "")
	if err != nil {
		return nil, err
	}

	return &dto.OwnerLoginResponse{
		OwnerResponse: dto.OwnerResponse{
			ID:       owner.ID.String(),
			Name:     owner.Name,
			Email:    owner.Email,
			Phone:    owner.Phone,
			Username: owner.Username,
		},
		Token: token,
	}, nil
}

// StaffLogin checks the shop license BEFORE verifying the password: an
// expired shop always yields the distinguished rejection, independent of
// credential correctness.
func (s *authService) StaffLogin(ctx context.Context, req dto.LoginRequest) (*dto.StaffLoginResponse, error) {
	member, err := s.staff.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	shop, err := s.shops.FindByID(ctx, member.ShopID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if shop.LicenseIsExpired() {
		return nil, ErrLicenseExpired
	}

	if !verifyPassword(req.Password, member.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(member.ID.String(), member.Username, "staff", member.ShopID.String())
	if err != nil {
		return nil, err
	}

	return &dto.StaffLoginResponse{
		Staff: staffToResponse(member),
		Shop:  shopToResponse(shop),
		Token: token,
	}, nil
}

// verifyPassword compares against a bcrypt hash. Rows seeded before hashing
// was introduced store plaintext; those are compared directly.
func verifyPassword(password, stored string) bool {
	if !strings.HasPrefix(stored, "$2") {
		return password == stored
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// HashPassword is the single place bcrypt cost is chosen.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(h), err
}

func (s *authService) generateToken(id, username, kind, shopID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      id,
		"username": username,
		"kind":     kind, // owner | staff
		"exp":      time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	if shopID != "" {
		claims["shop_id"] = shopID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func staffToResponse(m *model.Staff) dto.StaffResponse {
	return dto.StaffResponse{
		ID:       m.ID.String(),
		ShopID:   m.ShopID.String(),
		Name:     m.Name,
		Role:     m.Role,
		Username: m.Username,
	}
}

func shopToResponse(sh *model.Shop) dto.ShopResponse {
	return dto.ShopResponse{
		ID:                sh.ID.String(),
		OwnerID:           sh.OwnerID.String(),
		Name:              sh.Name,
		Location:          sh.Location,
		LicenseStatus:     sh.LicenseStatus,
		LicenseExpiryDate: sh.LicenseExpiryDate,
		LicensePlan:       sh.LicensePlan,
	}
}
