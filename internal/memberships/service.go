package memberships

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnistock/omnistock-backend/internal/users"
	"github.com/omnistock/omnistock-backend/pkg/config"
	"github.com/omnistock/omnistock-backend/pkg/db"
	"github.com/omnistock/omnistock-backend/pkg/db/models"
	"github.com/omnistock/omnistock-backend/pkg/enums"
	pkgerrors "github.com/omnistock/omnistock-backend/pkg/errors"
	"github.com/omnistock/omnistock-backend/pkg/security"
)

type usersRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

type tenantDirectory interface {
	GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	GetStore(ctx context.Context, id uuid.UUID) (*models.Store, error)
	EnsureDefaultStore(ctx context.Context, vendorID uuid.UUID) (*models.Store, error)
}

// Service drives the membership invitation and activation lifecycle.
type Service interface {
	Invite(ctx context.Context, inviterID, vendorID uuid.UUID, input InviteInput) (*models.VendorMembership, string, error)
	Accept(ctx context.Context, userID, membershipID uuid.UUID) (*models.VendorMembership, error)
	Decline(ctx context.Context, userID, membershipID uuid.UUID) (*models.VendorMembership, error)
	Deactivate(ctx context.Context, vendorID, membershipID uuid.UUID) (*models.VendorMembership, error)
	SetActiveVendor(ctx context.Context, userID, vendorID uuid.UUID) (*models.VendorMembership, error)
	SetActiveStore(ctx context.Context, userID, storeID uuid.UUID) (*models.VendorMembership, error)
	EnsureOwnerMembership(ctx context.Context, vendorID, userID uuid.UUID) (*models.VendorMembership, error)
	UpdateRole(ctx context.Context, vendorID, membershipID uuid.UUID, role enums.MemberRole) (*models.VendorMembership, error)
	AssignStoreAccess(ctx context.Context, vendorID, membershipID, storeID uuid.UUID, role enums.StoreAccessRole) (*models.StoreAccess, error)
	RemoveStoreAccess(ctx context.Context, vendorID, membershipID, storeID uuid.UUID) error
	ListStoreAccess(ctx context.Context, vendorID, membershipID uuid.UUID) ([]models.StoreAccess, error)
	ListMembers(ctx context.Context, vendorID uuid.UUID) ([]MemberDTO, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.VendorMembership, error)
}

type service struct {
	repo        *Repository
	users       usersRepository
	tenants     tenantDirectory
	dbClient    *db.Client
	passwordCfg config.PasswordConfig
}

// NewService builds the membership lifecycle service.
func NewService(repo *Repository, usersRepo usersRepository, tenants tenantDirectory, dbClient *db.Client, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("memberships repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if tenants == nil {
		return nil, fmt.Errorf("tenant directory required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:        repo,
		users:       usersRepo,
		tenants:     tenants,
		dbClient:    dbClient,
		passwordCfg: passwordCfg,
	}, nil
}

// InviteInput captures the data required to invite a vendor member.
type InviteInput struct {
	Email     string
	FirstName string
	LastName  string
	Role      enums.MemberRole
	Title     *string
}

// Invite creates or refreshes a pending membership for the addressed user.
// Unknown emails get a user record with a temporary credential; the temp
// password is returned so the caller can deliver it out of band.
func (s *service) Invite(ctx context.Context, inviterID, vendorID uuid.UUID, input InviteInput) (*models.VendorMembership, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !strings.Contains(email, "@") {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}
	if !input.Role.IsValid() {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid member role %q", input.Role))
	}
	if _, err := s.tenants.GetVendor(ctx, vendorID); err != nil {
		return nil, "", err
	}

	user, tempPassword, err := s.findOrCreateUser(ctx, email, input.FirstName, input.LastName)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	code := uuid.NewString()

	existing, err := s.repo.FindByVendorAndUser(ctx, vendorID, user.ID)
	switch {
	case err == nil:
		// re-inviting always resets, wiping any prior accept, decline, or
		// revocation along with the active-store pointer
		existing.Role = input.Role
		existing.Title = input.Title
		existing.InviteStatus = enums.InviteStatusPending
		existing.InviteCode = &code
		existing.InvitedByUserID = &inviterID
		existing.InvitedAt = &now
		existing.RespondedAt = nil
		existing.RevokedAt = nil
		existing.IsActive = false
		existing.ActiveStoreID = nil
		if err := s.repo.Save(ctx, existing); err != nil {
			return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh invite")
		}
		return existing, tempPassword, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		membership := &models.VendorMembership{
			ID:              uuid.New(),
			VendorID:        vendorID,
			UserID:          user.ID,
			Role:            input.Role,
			Title:           input.Title,
			InviteStatus:    enums.InviteStatusPending,
			InviteCode:      &code,
			InvitedByUserID: &inviterID,
			InvitedAt:       &now,
			IsActive:        false,
		}
		if err := s.repo.Create(ctx, membership); err != nil {
			if db.IsUniqueViolation(err, "") {
				return nil, "", pkgerrors.New(pkgerrors.CodeConflict, "membership already exists")
			}
			return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create membership")
		}
		return membership, tempPassword, nil

	default:
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load membership")
	}
}

func (s *service) findOrCreateUser(ctx context.Context, email, firstName, lastName string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return user, "", nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up user")
	}

	tempPassword, err := security.GenerateTempPassword(16)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
	}
	hash, err := security.HashPassword(tempPassword, s.passwordCfg)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	created, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return created, tempPassword, nil
}

func (s *service) loadOwnMembership(ctx context.Context, userID, membershipID uuid.UUID) (*models.VendorMembership, error) {
	membership, err := s.repo.FindByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load membership")
	}
	// a foreign membership is indistinguishable from a missing one
	if membership.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
	}
	return membership, nil
}

func (s *service) loadVendorMembership(ctx context.Context, vendorID, membershipID uuid.UUID) (*models.VendorMembership, error) {
	membership, err := s.repo.FindByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load membership")
	}
	if membership.VendorID != vendorID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
	}
	return membership, nil
}

// Accept transitions a pending invite to accepted and activates the membership.
func (s *service) Accept(ctx context.Context, userID, membershipID uuid.UUID) (*models.VendorMembership, error) {
	membership, err := s.loadOwnMembership(ctx, userID, membershipID)
	if err != nil {
		return nil, err
	}
	if membership.InviteStatus != enums.InviteStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("invite is %s, not pending", membership.InviteStatus))
	}

	now := time.Now().UTC()
	membership.InviteStatus = enums.InviteStatusAccepted
	membership.RespondedAt = &now
	membership.IsActive = true
	if err := s.repo.Save(ctx, membership); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "accept invite")
	}
	return membership, nil
}

// Decline transitions a pending invite to declined.
func (s *service) Decline(ctx context.Context, userID, membershipID uuid.UUID) (*models.VendorMembership, error) {
	membership, err := s.loadOwnMembership(ctx, userID, membershipID)
	if err != nil {
		return nil, err
	}
	if membership.InviteStatus != enums.InviteStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("invite is %s, not pending", membership.InviteStatus))
	}

	now := time.Now().UTC()
	membership.InviteStatus = enums.InviteStatusDeclined
	membership.RespondedAt = &now
	membership.IsActive = false
	if err := s.repo.Save(ctx, membership); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decline invite")
	}
	return membership, nil
}

// Deactivate revokes the membership and clears its active-store pointer.
func (s *service) Deactivate(ctx context.Context, vendorID, membershipID uuid.UUID) (*models.VendorMembership, error) {
	membership, err := s.loadVendorMembership(ctx, vendorID, membershipID)
	if err != nil {
		return nil, err
	}
	if membership.InviteStatus == enums.InviteStatusRevoked {
		return membership, nil
	}

	now := time.Now().UTC()
	membership.InviteStatus = enums.InviteStatusRevoked
	membership.RevokedAt = &now
	membership.IsActive = false
	membership.IsPrimary = false
	membership.ActiveStoreID = nil
	if err := s.repo.Save(ctx, membership); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke membership")
	}
	return membership, nil
}

// SetActiveVendor marks the user's membership in the vendor as primary,
// flipping any previous primary inside the same transaction. Assigns the
// vendor's default store when the membership has no active store yet.
func (s *service) SetActiveVendor(ctx context.Context, userID, vendorID uuid.UUID) (*models.VendorMembership, error) {
	membership, err := s.repo.FindByVendorAndUser(ctx, vendorID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load membership")
	}
	if !membership.IsActive || membership.InviteStatus != enums.InviteStatusAccepted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "membership is not active")
	}

	if membership.ActiveStoreID == nil {
		store, err := s.tenants.EnsureDefaultStore(ctx, vendorID)
		if err != nil {
			return nil, err
		}
		membership.ActiveStoreID = &store.ID
	}
	membership.IsPrimary = true

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Save(ctx, membership); err != nil {
			return err
		}
		return txRepo.ClearPrimaryForUser(ctx, userID, membership.ID)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "switch active vendor")
	}
	return membership, nil
}

// SetActiveStore points the user's membership in the store's vendor at the
// given store. A store belonging to a different vendor than the membership is
// a state conflict.
func (s *service) SetActiveStore(ctx context.Context, userID, storeID uuid.UUID) (*models.VendorMembership, error) {
	store, err := s.tenants.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	membership, err := s.repo.FindByVendorAndUser(ctx, store.VendorID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "store belongs to a different vendor")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load membership")
	}
	if !membership.IsActive || membership.InviteStatus != enums.InviteStatusAccepted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "membership is not active")
	}
	if membership.ActiveStoreID != nil && *membership.ActiveStoreID == storeID {
		return membership, nil
	}

	membership.ActiveStoreID = &storeID
	if err := s.repo.Save(ctx, membership); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "switch active store")
	}
	return membership, nil
}

// EnsureOwnerMembership bootstraps the owner membership created alongside a
// new vendor. Idempotent for the (vendor, user) pair.
func (s *service) EnsureOwnerMembership(ctx context.Context, vendorID, userID uuid.UUID) (*models.VendorMembership, error) {
	existing, err := s.repo.FindByVendorAndUser(ctx, vendorID, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load membership")
	}

	now := time.Now().UTC()
	hasPrimary := true
	if _, err := s.repo.FindPrimaryActive(ctx, userID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load primary membership")
		}
		hasPrimary = false
	}

	membership := &models.VendorMembership{
		ID:           uuid.New(),
		VendorID:     vendorID,
		UserID:       userID,
		Role:         enums.MemberRoleOwner,
		InviteStatus: enums.InviteStatusAccepted,
		RespondedAt:  &now,
		IsActive:     true,
		IsPrimary:    !hasPrimary,
	}
	if err := s.repo.Create(ctx, membership); err != nil {
		if db.IsUniqueViolation(err, "") {
			return s.repo.FindByVendorAndUser(ctx, vendorID, userID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create owner membership")
	}
	return membership, nil
}

// UpdateRole changes the vendor-level role of the membership.
func (s *service) UpdateRole(ctx context.Context, vendorID, membershipID uuid.UUID, role enums.MemberRole) (*models.VendorMembership, error) {
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid member role %q", role))
	}
	membership, err := s.loadVendorMembership(ctx, vendorID, membershipID)
	if err != nil {
		return nil, err
	}

	membership.Role = role
	if err := s.repo.Save(ctx, membership); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update role")
	}
	return membership, nil
}

// AssignStoreAccess grants (or reactivates) scoped access on one store for the
// membership. The store must belong to the membership's vendor.
func (s *service) AssignStoreAccess(ctx context.Context, vendorID, membershipID, storeID uuid.UUID, role enums.StoreAccessRole) (*models.StoreAccess, error) {
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid store access role %q", role))
	}

	membership, err := s.loadVendorMembership(ctx, vendorID, membershipID)
	if err != nil {
		return nil, err
	}

	store, err := s.tenants.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store.VendorID != membership.VendorID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}

	existing, err := s.repo.FindStoreAccess(ctx, storeID, membershipID)
	switch {
	case err == nil:
		existing.Role = role
		existing.IsActive = true
		if err := s.repo.SaveStoreAccess(ctx, existing); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store access")
		}
		return existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		access := &models.StoreAccess{
			ID:           uuid.New(),
			StoreID:      storeID,
			MembershipID: membershipID,
			Role:         role,
			IsActive:     true,
		}
		if err := s.repo.CreateStoreAccess(ctx, access); err != nil {
			if db.IsUniqueViolation(err, "") {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "store access already exists")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store access")
		}
		return access, nil

	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store access")
	}
}

// RemoveStoreAccess deactivates the grant for the (store, membership) pair.
func (s *service) RemoveStoreAccess(ctx context.Context, vendorID, membershipID, storeID uuid.UUID) error {
	if _, err := s.loadVendorMembership(ctx, vendorID, membershipID); err != nil {
		return err
	}
	access, err := s.repo.FindStoreAccess(ctx, storeID, membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "store access not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store access")
	}

	access.IsActive = false
	if err := s.repo.SaveStoreAccess(ctx, access); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove store access")
	}
	return nil
}

// ListStoreAccess returns every grant held by a member of the vendor,
// including deactivated ones.
func (s *service) ListStoreAccess(ctx context.Context, vendorID, membershipID uuid.UUID) ([]models.StoreAccess, error) {
	if _, err := s.loadVendorMembership(ctx, vendorID, membershipID); err != nil {
		return nil, err
	}
	grants, err := s.repo.ListStoreAccess(ctx, membershipID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list store access")
	}
	return grants, nil
}

// ListMembers returns the vendor's roster with user metadata.
func (s *service) ListMembers(ctx context.Context, vendorID uuid.UUID) ([]MemberDTO, error) {
	members, err := s.repo.ListMembers(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list members")
	}
	return members, nil
}

// ListForUser returns every membership the user holds.
func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.VendorMembership, error) {
	rows, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list memberships")
	}
	return rows, nil
}
