package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/omnistock/omnistock-backend/pkg/auth"
	"github.com/omnistock/omnistock-backend/pkg/auth/session"
	"github.com/omnistock/omnistock-backend/pkg/config"
	"github.com/omnistock/omnistock-backend/pkg/db/models"
	"github.com/omnistock/omnistock-backend/pkg/enums"
	pkgerrors "github.com/omnistock/omnistock-backend/pkg/errors"
	"github.com/omnistock/omnistock-backend/pkg/security"
)

func testAuthJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "omnistock-test",
		ExpirationMinutes: 15,
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

type stubUserRepo struct {
	user        *models.User
	lastLoginAt *time.Time
	updatedHash string
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	s.updatedHash = hash
	return nil
}

func (s *stubUserRepo) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLoginAt = &at
	return nil
}

type stubMembershipSwitcher struct {
	membership *models.VendorMembership
	err        error
}

func (s *stubMembershipSwitcher) SetActiveVendor(ctx context.Context, userID, vendorID uuid.UUID) (*models.VendorMembership, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.membership, nil
}

func (s *stubMembershipSwitcher) SetActiveStore(ctx context.Context, userID, storeID uuid.UUID) (*models.VendorMembership, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.membership, nil
}

type stubVendorLister struct {
	vendors []models.Vendor
}

func (s *stubVendorLister) ListVendorsForUser(ctx context.Context, userID uuid.UUID) ([]models.Vendor, error) {
	return s.vendors, nil
}

type stubScopeResolver struct {
	membership *models.VendorMembership
	store      *models.Store
}

func (s *stubScopeResolver) ResolveActiveVendor(ctx context.Context, userID uuid.UUID) (*models.VendorMembership, error) {
	return s.membership, nil
}

func (s *stubScopeResolver) ResolveActiveStore(ctx context.Context, membership *models.VendorMembership) (*models.Store, error) {
	return s.store, nil
}

type stubSessionManager struct {
	refreshToken string
	rotateErr    error
	generated    []string
	revoked      []string
	rotatedFrom  string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return s.refreshToken, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	s.rotatedFrom = oldAccessID
	return session.NewAccessID(), "rotated-" + s.refreshToken, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

type authTestSetup struct {
	service     Service
	users       *stubUserRepo
	memberships *stubMembershipSwitcher
	resolver    *stubScopeResolver
	sessions    *stubSessionManager
}

func newAuthTestSetup(t *testing.T, user *models.User, membership *models.VendorMembership, store *models.Store, vendors []models.Vendor) *authTestSetup {
	t.Helper()
	users := &stubUserRepo{user: user}
	switcher := &stubMembershipSwitcher{membership: membership}
	resolver := &stubScopeResolver{membership: membership, store: store}
	sessions := &stubSessionManager{refreshToken: "refresh-token"}
	svc, err := NewService(ServiceParams{
		UserRepo:       users,
		Memberships:    switcher,
		Vendors:        &stubVendorLister{vendors: vendors},
		Resolver:       resolver,
		SessionManager: sessions,
		JWTConfig:      testAuthJWTConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &authTestSetup{
		service:     svc,
		users:       users,
		memberships: switcher,
		resolver:    resolver,
		sessions:    sessions,
	}
}

func activeUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		FirstName:    "Morgan",
		LastName:     "Reyes",
		PasswordHash: mustHashPassword(t, password),
		IsActive:     true,
	}
}

func TestServiceLoginIssuesScopedToken(t *testing.T) {
	user := activeUser(t, "owner@example.com", "owner-secret")
	vendorID := uuid.New()
	storeID := uuid.New()
	membership := &models.VendorMembership{
		ID:       uuid.New(),
		VendorID: vendorID,
		UserID:   user.ID,
		Role:     enums.MemberRoleOwner,
		IsActive: true,
	}
	store := &models.Store{ID: storeID, VendorID: vendorID}
	vendors := []models.Vendor{{ID: vendorID, Name: "Slugtown Cards", Slug: "slugtown-cards"}}

	setup := newAuthTestSetup(t, user, membership, store, vendors)
	resp, err := setup.service.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "owner-secret",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testAuthJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("claims user mismatch: %s", claims.UserID)
	}
	if claims.ActiveVendorID == nil || *claims.ActiveVendorID != vendorID {
		t.Fatalf("expected vendor scope in claims, got %v", claims.ActiveVendorID)
	}
	if claims.ActiveStoreID == nil || *claims.ActiveStoreID != storeID {
		t.Fatalf("expected store scope in claims, got %v", claims.ActiveStoreID)
	}
	if claims.Role == nil || *claims.Role != enums.MemberRoleOwner {
		t.Fatalf("expected owner role claim, got %v", claims.Role)
	}

	if len(setup.sessions.generated) != 1 || setup.sessions.generated[0] != claims.ID {
		t.Fatalf("refresh session not keyed by jti: %v vs %s", setup.sessions.generated, claims.ID)
	}
	if resp.RefreshToken != "refresh-token" {
		t.Fatalf("unexpected refresh token %q", resp.RefreshToken)
	}
	if len(resp.Vendors) != 1 || resp.Vendors[0].Slug != "slugtown-cards" {
		t.Fatalf("unexpected vendor summaries %+v", resp.Vendors)
	}
	if resp.User == nil || resp.User.LastLoginAt == nil {
		t.Fatalf("expected last login to be stamped on the response user")
	}
	if setup.users.lastLoginAt == nil {
		t.Fatalf("expected last login to be persisted")
	}
}

func TestServiceLoginWithoutMembershipOmitsScope(t *testing.T) {
	user := activeUser(t, "floating@example.com", "floating-secret")
	setup := newAuthTestSetup(t, user, nil, nil, nil)

	resp, err := setup.service.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "floating-secret",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.ActiveVendorID != nil || resp.ActiveStoreID != nil || resp.Role != nil {
		t.Fatalf("expected no active scope, got %+v", resp)
	}

	claims, err := pkgAuth.ParseAccessToken(testAuthJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.ActiveVendorID != nil || claims.Role != nil {
		t.Fatalf("scope claims should be empty without a membership")
	}
}

func TestServiceLoginRejectsBadCredentials(t *testing.T) {
	user := activeUser(t, "victim@example.com", "correct-horse")

	tests := []struct {
		name     string
		email    string
		password string
		inactive bool
	}{
		{name: "wrong password", email: user.Email, password: "battery-staple"},
		{name: "unknown email", email: "nobody@example.com", password: "correct-horse"},
		{name: "deactivated user", email: user.Email, password: "correct-horse", inactive: true},
		{name: "blank email", email: "   ", password: "correct-horse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user.IsActive = !tt.inactive
			setup := newAuthTestSetup(t, user, nil, nil, nil)
			_, err := setup.service.Login(context.Background(), LoginRequest{Email: tt.email, Password: tt.password})
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
				t.Fatalf("expected unauthorized, got %v", err)
			}
			if typed.Message() != invalidCredentialsMessage {
				t.Fatalf("credential failures must share one message, got %q", typed.Message())
			}
		})
	}
}

func TestServiceRefreshRotatesSessionAndRescopes(t *testing.T) {
	user := activeUser(t, "refresh@example.com", "refresh-secret")
	vendorID := uuid.New()
	storeID := uuid.New()
	membership := &models.VendorMembership{
		ID:       uuid.New(),
		VendorID: vendorID,
		UserID:   user.ID,
		Role:     enums.MemberRoleManager,
		IsActive: true,
	}
	store := &models.Store{ID: storeID, VendorID: vendorID}
	setup := newAuthTestSetup(t, user, membership, store, nil)

	cfg := testAuthJWTConfig()
	expired, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC().Add(-2*time.Hour), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		JTI:    "stale-session",
	})
	if err != nil {
		t.Fatalf("mint expired token: %v", err)
	}

	pair, err := setup.service.Refresh(context.Background(), RefreshRequest{
		AccessToken:  expired,
		RefreshToken: "refresh-token",
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if setup.sessions.rotatedFrom != "stale-session" {
		t.Fatalf("rotation should target the expired jti, got %q", setup.sessions.rotatedFrom)
	}
	if pair.RefreshToken != "rotated-refresh-token" {
		t.Fatalf("unexpected refresh token %q", pair.RefreshToken)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, pair.AccessToken)
	if err != nil {
		t.Fatalf("parse refreshed token: %v", err)
	}
	if claims.ID == "stale-session" {
		t.Fatalf("refreshed token must carry a new jti")
	}
	if claims.ActiveVendorID == nil || *claims.ActiveVendorID != vendorID {
		t.Fatalf("refreshed token should re-resolve the active vendor")
	}
	if claims.Role == nil || *claims.Role != enums.MemberRoleManager {
		t.Fatalf("refreshed token should carry the current role, got %v", claims.Role)
	}
}

func TestServiceRefreshRejectsInvalidTokens(t *testing.T) {
	user := activeUser(t, "invalid@example.com", "invalid-secret")
	setup := newAuthTestSetup(t, user, nil, nil, nil)

	_, err := setup.service.Refresh(context.Background(), RefreshRequest{
		AccessToken:  "not-a-jwt",
		RefreshToken: "refresh-token",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for a garbage access token, got %v", err)
	}

	setup.sessions.rotateErr = session.ErrInvalidRefreshToken
	expired, err := pkgAuth.MintAccessToken(testAuthJWTConfig(), time.Now().UTC().Add(-2*time.Hour), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		JTI:    "revoked-session",
	})
	if err != nil {
		t.Fatalf("mint expired token: %v", err)
	}
	_, err = setup.service.Refresh(context.Background(), RefreshRequest{
		AccessToken:  expired,
		RefreshToken: "stolen-token",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for mismatched refresh token, got %v", err)
	}
}

func TestServiceLogout(t *testing.T) {
	user := activeUser(t, "logout@example.com", "logout-secret")
	setup := newAuthTestSetup(t, user, nil, nil, nil)

	if err := setup.service.Logout(context.Background(), "session-to-kill"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(setup.sessions.revoked) != 1 || setup.sessions.revoked[0] != "session-to-kill" {
		t.Fatalf("expected revoke call, got %v", setup.sessions.revoked)
	}

	err := setup.service.Logout(context.Background(), "   ")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for blank session, got %v", err)
	}
}

func TestServiceSwitchVendorReissuesSession(t *testing.T) {
	user := activeUser(t, "switch@example.com", "switch-secret")
	vendorID := uuid.New()
	storeID := uuid.New()
	membership := &models.VendorMembership{
		ID:       uuid.New(),
		VendorID: vendorID,
		UserID:   user.ID,
		Role:     enums.MemberRoleAdmin,
		IsActive: true,
	}
	store := &models.Store{ID: storeID, VendorID: vendorID}
	setup := newAuthTestSetup(t, user, membership, store, nil)

	resp, err := setup.service.SwitchVendor(context.Background(), user.ID, "old-session", SwitchVendorRequest{VendorID: vendorID})
	if err != nil {
		t.Fatalf("switch vendor: %v", err)
	}

	if len(setup.sessions.revoked) != 1 || setup.sessions.revoked[0] != "old-session" {
		t.Fatalf("old session should be revoked, got %v", setup.sessions.revoked)
	}
	if resp.ActiveVendorID != vendorID {
		t.Fatalf("unexpected active vendor %s", resp.ActiveVendorID)
	}
	if resp.ActiveStoreID == nil || *resp.ActiveStoreID != storeID {
		t.Fatalf("expected active store %s, got %v", storeID, resp.ActiveStoreID)
	}

	claims, err := pkgAuth.ParseAccessToken(testAuthJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse switched token: %v", err)
	}
	if claims.ID == "old-session" {
		t.Fatalf("switch must mint a new jti")
	}
	if len(setup.sessions.generated) != 1 || setup.sessions.generated[0] != claims.ID {
		t.Fatalf("new refresh session should be keyed by the new jti")
	}
	if claims.Role == nil || *claims.Role != enums.MemberRoleAdmin {
		t.Fatalf("expected admin role claim, got %v", claims.Role)
	}
}

func TestServiceChangePassword(t *testing.T) {
	user := activeUser(t, "rotate@example.com", "old-secret-123")
	setup := newAuthTestSetup(t, user, nil, nil, nil)

	err := setup.service.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "old-secret-123",
		NewPassword:     "new-secret-456",
	})
	if err != nil {
		t.Fatalf("change password: %v", err)
	}
	if setup.users.updatedHash == "" {
		t.Fatalf("expected a new hash to be persisted")
	}
	ok, err := security.VerifyPassword("new-secret-456", setup.users.updatedHash)
	if err != nil || !ok {
		t.Fatalf("stored hash must verify the new password: ok=%v err=%v", ok, err)
	}

	err = setup.service.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "wrong-secret",
		NewPassword:     "new-secret-456",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for a wrong current password, got %v", err)
	}

	err = setup.service.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "old-secret-123",
		NewPassword:     "old-secret-123",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for a reused password, got %v", err)
	}

	err = setup.service.ChangePassword(context.Background(), uuid.New(), ChangePasswordRequest{
		CurrentPassword: "old-secret-123",
		NewPassword:     "new-secret-456",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for an unknown user, got %v", err)
	}
}

func TestServiceSwitchStorePropagatesMembershipErrors(t *testing.T) {
	user := activeUser(t, "denied@example.com", "denied-secret")
	setup := newAuthTestSetup(t, user, nil, nil, nil)
	setup.memberships.err = pkgerrors.New(pkgerrors.CodeStateConflict, "store belongs to another vendor")

	_, err := setup.service.SwitchStore(context.Background(), user.ID, "session", SwitchStoreRequest{StoreID: uuid.New()})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict to pass through, got %v", err)
	}
	if len(setup.sessions.revoked) != 0 {
		t.Fatalf("failed switch must not revoke the current session")
	}
}
