package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnistock/omnistock-backend/internal/users"
	pkgAuth "github.com/omnistock/omnistock-backend/pkg/auth"
	"github.com/omnistock/omnistock-backend/pkg/auth/session"
	"github.com/omnistock/omnistock-backend/pkg/config"
	"github.com/omnistock/omnistock-backend/pkg/db/models"
	pkgerrors "github.com/omnistock/omnistock-backend/pkg/errors"
	"github.com/omnistock/omnistock-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*TokenPair, error)
	Logout(ctx context.Context, accessID string) error
	SwitchVendor(ctx context.Context, userID uuid.UUID, accessID string, req SwitchVendorRequest) (*SwitchResponse, error)
	SwitchStore(ctx context.Context, userID uuid.UUID, accessID string, req SwitchStoreRequest) (*SwitchResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type membershipSwitcher interface {
	SetActiveVendor(ctx context.Context, userID, vendorID uuid.UUID) (*models.VendorMembership, error)
	SetActiveStore(ctx context.Context, userID, storeID uuid.UUID) (*models.VendorMembership, error)
}

type vendorLister interface {
	ListVendorsForUser(ctx context.Context, userID uuid.UUID) ([]models.Vendor, error)
}

type scopeResolver interface {
	ResolveActiveVendor(ctx context.Context, userID uuid.UUID) (*models.VendorMembership, error)
	ResolveActiveStore(ctx context.Context, membership *models.VendorMembership) (*models.Store, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	Memberships    membershipSwitcher
	Vendors        vendorLister
	Resolver       scopeResolver
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

type service struct {
	users       userRepository
	memberships membershipSwitcher
	vendors     vendorLister
	resolver    scopeResolver
	session     sessionManager
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

// NewService constructs the credential and session service.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Memberships == nil {
		return nil, fmt.Errorf("memberships service is required")
	}
	if params.Vendors == nil {
		return nil, fmt.Errorf("vendor lister is required")
	}
	if params.Resolver == nil {
		return nil, fmt.Errorf("scope resolver is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		users:       params.UserRepo,
		memberships: params.Memberships,
		vendors:     params.Vendors,
		resolver:    params.Resolver,
		session:     params.SessionManager,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	membership, err := s.resolver.ResolveActiveVendor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	vendors, err := s.vendors.ListVendorsForUser(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list vendors")
	}

	now := time.Now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	user.LastLoginAt = &now

	payload := pkgAuth.AccessTokenPayload{UserID: user.ID}
	resp := &LoginResponse{User: users.FromModel(user)}

	if membership != nil {
		store, err := s.resolver.ResolveActiveStore(ctx, membership)
		if err != nil {
			return nil, err
		}
		role := membership.Role
		payload.ActiveVendorID = &membership.VendorID
		payload.ActiveStoreID = &store.ID
		payload.Role = &role
		resp.ActiveVendorID = &membership.VendorID
		resp.ActiveStoreID = &store.ID
		resp.Role = &role
	}

	accessID := session.NewAccessID()
	payload.JTI = accessID
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, now, payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}

	summaries := make([]VendorSummary, 0, len(vendors))
	for _, v := range vendors {
		summaries = append(summaries, VendorSummary{ID: v.ID, Name: v.Name, Slug: v.Slug})
	}

	resp.AccessToken = accessToken
	resp.RefreshToken = refreshToken
	resp.Vendors = summaries
	return resp, nil
}

// Refresh rotates the session named by the (possibly expired) access token and
// mints a fresh pair with the caller's current scope, so revoked memberships
// never survive a token refresh.
func (s *service) Refresh(ctx context.Context, req RefreshRequest) (*TokenPair, error) {
	claims, err := pkgAuth.ParseAccessTokenAllowExpired(s.jwtCfg, req.AccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefreshToken, err := s.session.Rotate(ctx, claims.ID, req.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rotate session")
	}

	payload := pkgAuth.AccessTokenPayload{UserID: claims.UserID, JTI: newAccessID}
	membership, err := s.resolver.ResolveActiveVendor(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if membership != nil {
		store, err := s.resolver.ResolveActiveStore(ctx, membership)
		if err != nil {
			return nil, err
		}
		role := membership.Role
		payload.ActiveVendorID = &membership.VendorID
		payload.ActiveStoreID = &store.ID
		payload.Role = &role
	}

	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session")
	}
	if err := s.session.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}

func (s *service) SwitchVendor(ctx context.Context, userID uuid.UUID, accessID string, req SwitchVendorRequest) (*SwitchResponse, error) {
	membership, err := s.memberships.SetActiveVendor(ctx, userID, req.VendorID)
	if err != nil {
		return nil, err
	}
	return s.reissue(ctx, userID, accessID, membership)
}

func (s *service) SwitchStore(ctx context.Context, userID uuid.UUID, accessID string, req SwitchStoreRequest) (*SwitchResponse, error) {
	membership, err := s.memberships.SetActiveStore(ctx, userID, req.StoreID)
	if err != nil {
		return nil, err
	}
	return s.reissue(ctx, userID, accessID, membership)
}

// reissue drops the old session and mints a pair scoped to the membership's
// new active vendor/store.
func (s *service) reissue(ctx context.Context, userID uuid.UUID, accessID string, membership *models.VendorMembership) (*SwitchResponse, error) {
	store, err := s.resolver.ResolveActiveStore(ctx, membership)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(accessID) != "" {
		if err := s.session.Revoke(ctx, accessID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
		}
	}

	newAccessID := session.NewAccessID()
	role := membership.Role
	payload := pkgAuth.AccessTokenPayload{
		UserID:         userID,
		ActiveVendorID: &membership.VendorID,
		ActiveStoreID:  &store.ID,
		Role:           &role,
		JTI:            newAccessID,
	}
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, newAccessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}

	return &SwitchResponse{
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
		ActiveVendorID: membership.VendorID,
		ActiveStoreID:  &store.ID,
	}, nil
}

// ChangePassword swaps the caller's credential after re-proving the current
// one. Other sessions keep working; forcing them out is the caller's call via
// logout.
func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if !user.IsActive {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	valid, err := security.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	if req.NewPassword == req.CurrentPassword {
		return pkgerrors.New(pkgerrors.CodeValidation, "new password must differ from the current one")
	}

	hash, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}
	return nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	input := strings.TrimSpace(email)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByEmail(ctx, strings.ToLower(input))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}
