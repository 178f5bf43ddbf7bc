package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnistock/omnistock-backend/internal/tenants"
	"github.com/omnistock/omnistock-backend/internal/users"
	"github.com/omnistock/omnistock-backend/pkg/config"
	"github.com/omnistock/omnistock-backend/pkg/db/models"
	pkgerrors "github.com/omnistock/omnistock-backend/pkg/errors"
	"github.com/omnistock/omnistock-backend/pkg/security"
)

// RegisterService handles vendor onboarding.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) error
}

type registerUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

type vendorOnboarder interface {
	CreateVendor(ctx context.Context, input tenants.CreateVendorInput) (*models.Vendor, error)
	EnsureDefaultStore(ctx context.Context, vendorID uuid.UUID) (*models.Store, error)
}

type membershipBootstrapper interface {
	EnsureOwnerMembership(ctx context.Context, vendorID, userID uuid.UUID) (*models.VendorMembership, error)
	SetActiveVendor(ctx context.Context, userID, vendorID uuid.UUID) (*models.VendorMembership, error)
}

// RegisterServiceParams packages the dependencies for the onboarding flow.
type RegisterServiceParams struct {
	UserRepo       registerUserRepository
	Tenants        vendorOnboarder
	Memberships    membershipBootstrapper
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	users       registerUserRepository
	tenants     vendorOnboarder
	memberships membershipBootstrapper
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user repository required")
	}
	if params.Tenants == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "tenants service required")
	}
	if params.Memberships == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "memberships service required")
	}
	return &registerService{
		users:       params.UserRepo,
		tenants:     params.Tenants,
		memberships: params.Memberships,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// Register creates the user, their vendor with its default store, and an
// owner membership marked as the user's primary tenant.
func (s *registerService) Register(ctx context.Context, req RegisterRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(req.VendorName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor name is required")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: passwordHash,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	vendor, err := s.tenants.CreateVendor(ctx, tenants.CreateVendorInput{
		Name:        req.VendorName,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	if _, err := s.memberships.EnsureOwnerMembership(ctx, vendor.ID, user.ID); err != nil {
		return err
	}
	if _, err := s.tenants.EnsureDefaultStore(ctx, vendor.ID); err != nil {
		return err
	}
	if _, err := s.memberships.SetActiveVendor(ctx, user.ID, vendor.ID); err != nil {
		return err
	}
	return nil
}
