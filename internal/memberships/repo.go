package memberships

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnistock/omnistock-backend/pkg/db/models"
)

// Repository exposes membership and store-access persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a membership by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.VendorMembership, error) {
	var membership models.VendorMembership
	if err := r.db.WithContext(ctx).First(&membership, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

// FindByVendorAndUser loads the membership for the (vendor, user) pair.
func (r *Repository) FindByVendorAndUser(ctx context.Context, vendorID, userID uuid.UUID) (*models.VendorMembership, error) {
	var membership models.VendorMembership
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND user_id = ?", vendorID, userID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// FindPrimaryActive returns the user's primary active membership, if any.
func (r *Repository) FindPrimaryActive(ctx context.Context, userID uuid.UUID) (*models.VendorMembership, error) {
	var membership models.VendorMembership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_primary = ? AND is_active = ?", userID, true, true).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// ListForUser returns all memberships held by the user.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.VendorMembership, error) {
	var rows []models.VendorMembership
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListMembers returns memberships for the vendor joined with user metadata.
func (r *Repository) ListMembers(ctx context.Context, vendorID uuid.UUID) ([]MemberDTO, error) {
	var rows []memberRow
	err := r.db.WithContext(ctx).
		Model(&models.VendorMembership{}).
		Select("vendor_memberships.*, users.email, users.first_name, users.last_name, users.last_login_at").
		Joins("JOIN users ON users.id = vendor_memberships.user_id").
		Where("vendor_memberships.vendor_id = ?", vendorID).
		Order("vendor_memberships.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return membersFromRows(rows), nil
}

// Create persists a new membership record.
func (r *Repository) Create(ctx context.Context, membership *models.VendorMembership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

// Save persists membership field changes.
func (r *Repository) Save(ctx context.Context, membership *models.VendorMembership) error {
	return r.db.WithContext(ctx).Save(membership).Error
}

// ClearPrimaryForUser unsets is_primary on every membership of the user except
// the one identified by keepID. Executed as a single UPDATE so two primaries
// are never observable.
func (r *Repository) ClearPrimaryForUser(ctx context.Context, userID, keepID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.VendorMembership{}).
		Where("user_id = ? AND id <> ?", userID, keepID).
		Update("is_primary", false).Error
}

// FindStoreAccess loads the grant for the (store, membership) pair.
func (r *Repository) FindStoreAccess(ctx context.Context, storeID, membershipID uuid.UUID) (*models.StoreAccess, error) {
	var access models.StoreAccess
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND membership_id = ?", storeID, membershipID).
		First(&access).Error
	if err != nil {
		return nil, err
	}
	return &access, nil
}

// HasActiveStoreAccess reports whether an active grant exists for the pair.
func (r *Repository) HasActiveStoreAccess(ctx context.Context, storeID, membershipID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.StoreAccess{}).
		Where("store_id = ? AND membership_id = ? AND is_active = ?", storeID, membershipID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListStoreAccess returns all grants held by the membership.
func (r *Repository) ListStoreAccess(ctx context.Context, membershipID uuid.UUID) ([]models.StoreAccess, error) {
	var rows []models.StoreAccess
	err := r.db.WithContext(ctx).
		Where("membership_id = ?", membershipID).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateStoreAccess persists a new grant.
func (r *Repository) CreateStoreAccess(ctx context.Context, access *models.StoreAccess) error {
	return r.db.WithContext(ctx).Create(access).Error
}

// SaveStoreAccess persists grant field changes.
func (r *Repository) SaveStoreAccess(ctx context.Context, access *models.StoreAccess) error {
	return r.db.WithContext(ctx).Save(access).Error
}
