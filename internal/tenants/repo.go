package tenants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnistock/omnistock-backend/pkg/db/models"
)

// Repository exposes vendor and store persistence operations.
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

// CreateVendor inserts a new vendor row.
func (r *Repository) CreateVendor(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

// FindVendorByID loads a vendor by primary key.
func (r *Repository) FindVendorByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// VendorSlugExists reports whether the slug is already taken.
func (r *Repository) VendorSlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveVendor persists vendor field changes.
func (r *Repository) SaveVendor(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Save(vendor).Error
}

// ListVendorsForUser returns vendors the user holds an active membership in.
func (r *Repository) ListVendorsForUser(ctx context.Context, userID uuid.UUID) ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := r.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Joins("JOIN vendor_memberships ON vendor_memberships.vendor_id = vendors.id").
		Where("vendor_memberships.user_id = ? AND vendor_memberships.is_active = ?", userID, true).
		Order("vendors.name").
		Find(&vendors).Error
	if err != nil {
		return nil, err
	}
	return vendors, nil
}

// CreateStore inserts a new store row.
func (r *Repository) CreateStore(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

// FindStoreByID loads a store by primary key.
func (r *Repository) FindStoreByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// StoreSlugExists reports whether the slug is taken within the vendor.
func (r *Repository) StoreSlugExists(ctx context.Context, vendorID uuid.UUID, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("vendor_id = ? AND slug = ?", vendorID, slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListStoresByVendor returns all stores owned by the vendor, oldest first.
func (r *Repository) ListStoresByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at, id").
		Find(&stores).Error
	if err != nil {
		return nil, err
	}
	return stores, nil
}

// FirstStoreByVendor returns the vendor's oldest store by (created_at, id).
func (r *Repository) FirstStoreByVendor(ctx context.Context, vendorID uuid.UUID) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at, id").
		First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// SaveStore persists store field changes.
func (r *Repository) SaveStore(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}
