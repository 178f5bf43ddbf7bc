package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnistock/omnistock-backend/pkg/db/models"
	"github.com/omnistock/omnistock-backend/pkg/enums"
	pkgerrors "github.com/omnistock/omnistock-backend/pkg/errors"
)

type membershipRepository interface {
	FindPrimaryActive(ctx context.Context, userID uuid.UUID) (*models.VendorMembership, error)
	HasActiveStoreAccess(ctx context.Context, storeID, membershipID uuid.UUID) (bool, error)
}

type storeDirectory interface {
	GetStore(ctx context.Context, id uuid.UUID) (*models.Store, error)
	EnsureDefaultStore(ctx context.Context, vendorID uuid.UUID) (*models.Store, error)
}

// Resolver answers "which tenant is this principal operating as, and what may
// they touch". Store-access enforcement is fixed at construction; both
// enforcement modes run through CanAccessStore.
type Resolver struct {
	memberships        membershipRepository
	stores             storeDirectory
	enforceStoreAccess bool
}

// NewResolver builds the authorization resolver.
func NewResolver(memberships membershipRepository, stores storeDirectory, enforceStoreAccess bool) (*Resolver, error) {
	if memberships == nil {
		return nil, fmt.Errorf("membership repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store directory required")
	}
	return &Resolver{
		memberships:        memberships,
		stores:             stores,
		enforceStoreAccess: enforceStoreAccess,
	}, nil
}

// ResolveActiveVendor returns the user's primary active membership, or nil
// when the user has none. It never falls back to an arbitrary membership.
func (r *Resolver) ResolveActiveVendor(ctx context.Context, userID uuid.UUID) (*models.VendorMembership, error) {
	membership, err := r.memberships.FindPrimaryActive(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve active vendor")
	}
	return membership, nil
}

// ResolveActiveStore returns the membership's active store when it still
// belongs to the membership's vendor, falling back to the vendor's default
// store (created lazily) otherwise.
func (r *Resolver) ResolveActiveStore(ctx context.Context, membership *models.VendorMembership) (*models.Store, error) {
	if membership == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no active membership")
	}

	if membership.ActiveStoreID != nil {
		store, err := r.stores.GetStore(ctx, *membership.ActiveStoreID)
		if err == nil && store.VendorID == membership.VendorID {
			return store, nil
		}
		if err != nil && pkgerrors.As(err) == nil {
			return nil, err
		}
		// stale or cross-vendor pointer falls through to the default store
	}

	store, err := r.stores.EnsureDefaultStore(ctx, membership.VendorID)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// CanAccessStore reports whether the membership may act on the store. Admin
// roles always may; with enforcement off any active member may; with
// enforcement on an explicit active grant is required.
func (r *Resolver) CanAccessStore(ctx context.Context, membership *models.VendorMembership, store *models.Store) (bool, error) {
	if membership == nil || store == nil {
		return false, nil
	}
	if !membership.IsActive || membership.InviteStatus != enums.InviteStatusAccepted {
		return false, nil
	}
	if store.VendorID != membership.VendorID {
		return false, nil
	}
	if membership.Role.IsAdmin() {
		return true, nil
	}
	if !r.enforceStoreAccess {
		return true, nil
	}

	ok, err := r.memberships.HasActiveStoreAccess(ctx, store.ID, membership.ID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check store access")
	}
	return ok, nil
}

// AssertStorePermission loads the store and verifies the membership may act on
// it. A store outside the membership's vendor resolves to NOT_FOUND so tenant
// existence is never confirmed to an unauthorized caller.
func (r *Resolver) AssertStorePermission(ctx context.Context, membership *models.VendorMembership, storeID uuid.UUID) (*models.Store, error) {
	if membership == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no active membership")
	}

	store, err := r.stores.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store.VendorID != membership.VendorID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}

	ok, err := r.CanAccessStore(ctx, membership, store)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "no access to this store")
	}
	return store, nil
}
