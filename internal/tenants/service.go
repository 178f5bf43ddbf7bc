package tenants

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omnistock/omnistock-backend/pkg/db"
	"github.com/omnistock/omnistock-backend/pkg/db/models"
	"github.com/omnistock/omnistock-backend/pkg/enums"
	pkgerrors "github.com/omnistock/omnistock-backend/pkg/errors"
)

const maxSlugAttempts = 50

const (
	defaultStoreName = "Default Store"
	defaultStoreSlug = "default-store"
)

// Service exposes vendor/store directory operations.
type Service interface {
	CreateVendor(ctx context.Context, input CreateVendorInput) (*models.Vendor, error)
	GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	UpdateVendor(ctx context.Context, id uuid.UUID, input UpdateVendorInput) (*models.Vendor, error)
	ListVendorsForUser(ctx context.Context, userID uuid.UUID) ([]models.Vendor, error)
	CreateStore(ctx context.Context, input CreateStoreInput) (*models.Store, error)
	GetStore(ctx context.Context, id uuid.UUID) (*models.Store, error)
	UpdateStore(ctx context.Context, id uuid.UUID, input UpdateStoreInput) (*models.Store, error)
	ListStores(ctx context.Context, vendorID uuid.UUID) ([]models.Store, error)
	EnsureDefaultStore(ctx context.Context, vendorID uuid.UUID) (*models.Store, error)
	DefaultStore(ctx context.Context, vendorID uuid.UUID) (*models.Store, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService builds the tenant directory service.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tenants repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// CreateVendorInput captures the fields accepted when registering a vendor.
type CreateVendorInput struct {
	Name        string
	Description *string
	ContactInfo *string
}

// UpdateVendorInput lists the mutable vendor fields; nil means unchanged.
type UpdateVendorInput struct {
	Name        *string
	Description *string
	ContactInfo *string
	IsActive    *bool
}

// CreateStoreInput captures the fields accepted when opening a store.
type CreateStoreInput struct {
	VendorID       uuid.UUID
	Name           string
	Type           *enums.StoreType
	Description    *string
	Address        *string
	Currency       string
	DefaultTaxRate *decimal.Decimal
	Metadata       json.RawMessage
}

// UpdateStoreInput lists the mutable store fields; nil means unchanged.
type UpdateStoreInput struct {
	Name           *string
	Type           *enums.StoreType
	Description    *string
	Address        *string
	LogoURL        *string
	BannerURL      *string
	Currency       *string
	DefaultTaxRate *decimal.Decimal
	Metadata       json.RawMessage
	IsActive       *bool
}

func (s *service) CreateVendor(ctx context.Context, input CreateVendorInput) (*models.Vendor, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name is required")
	}

	base := Slugify(name, "vendor")
	vendor := &models.Vendor{
		ID:          uuid.New(),
		Name:        name,
		Description: input.Description,
		ContactInfo: input.ContactInfo,
		IsActive:    true,
	}

	attempt := 0
	for budget := 0; budget < maxSlugAttempts; budget++ {
		candidate := SlugCandidate(base, attempt)
		taken, err := s.repo.VendorSlugExists(ctx, candidate)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check vendor slug")
		}
		if taken {
			attempt++
			continue
		}

		vendor.Slug = candidate
		err = s.repo.CreateVendor(ctx, vendor)
		if err == nil {
			return vendor, nil
		}
		// another writer claimed the slug between check and insert
		if db.IsUniqueViolation(err, "") {
			attempt++
			continue
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor")
	}
	return nil, pkgerrors.New(pkgerrors.CodeConflict, "could not allocate a unique vendor slug")
}

func (s *service) GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	vendor, err := s.repo.FindVendorByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	return vendor, nil
}

func (s *service) UpdateVendor(ctx context.Context, id uuid.UUID, input UpdateVendorInput) (*models.Vendor, error) {
	vendor, err := s.GetVendor(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name cannot be empty")
		}
		vendor.Name = name
	}
	if input.Description != nil {
		vendor.Description = input.Description
	}
	if input.ContactInfo != nil {
		vendor.ContactInfo = input.ContactInfo
	}
	if input.IsActive != nil {
		vendor.IsActive = *input.IsActive
	}

	if err := s.repo.SaveVendor(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor")
	}
	return vendor, nil
}

func (s *service) ListVendorsForUser(ctx context.Context, userID uuid.UUID) ([]models.Vendor, error) {
	vendors, err := s.repo.ListVendorsForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}
	return vendors, nil
}

func (s *service) CreateStore(ctx context.Context, input CreateStoreInput) (*models.Store, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
	}
	if input.Type != nil && !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid store type %q", *input.Type))
	}
	if _, err := s.GetVendor(ctx, input.VendorID); err != nil {
		return nil, err
	}

	store := &models.Store{
		ID:          uuid.New(),
		VendorID:    input.VendorID,
		Name:        name,
		Type:        input.Type,
		Description: input.Description,
		Address:     input.Address,
		Currency:    "USD",
		Metadata:    input.Metadata,
		IsActive:    true,
	}
	if input.Currency != "" {
		store.Currency = strings.ToUpper(strings.TrimSpace(input.Currency))
	}
	if input.DefaultTaxRate != nil {
		if input.DefaultTaxRate.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "default tax rate cannot be negative")
		}
		store.DefaultTaxRate = *input.DefaultTaxRate
	}

	created, err := s.insertStoreWithSlug(ctx, store, Slugify(name, "store"))
	if err != nil {
		return nil, err
	}
	return created, nil
}

// insertStoreWithSlug allocates a vendor-scoped slug and inserts the row,
// retrying when a concurrent insert claims the candidate.
func (s *service) insertStoreWithSlug(ctx context.Context, store *models.Store, base string) (*models.Store, error) {
	attempt := 0
	for budget := 0; budget < maxSlugAttempts; budget++ {
		candidate := SlugCandidate(base, attempt)
		taken, err := s.repo.StoreSlugExists(ctx, store.VendorID, candidate)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check store slug")
		}
		if taken {
			attempt++
			continue
		}

		store.Slug = candidate
		err = s.repo.CreateStore(ctx, store)
		if err == nil {
			return store, nil
		}
		if db.IsUniqueViolation(err, "") {
			attempt++
			continue
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}
	return nil, pkgerrors.New(pkgerrors.CodeConflict, "could not allocate a unique store slug")
}

func (s *service) GetStore(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	store, err := s.repo.FindStoreByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return store, nil
}

func (s *service) UpdateStore(ctx context.Context, id uuid.UUID, input UpdateStoreInput) (*models.Store, error) {
	store, err := s.GetStore(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name cannot be empty")
		}
		store.Name = name
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid store type %q", *input.Type))
		}
		store.Type = input.Type
	}
	if input.Description != nil {
		store.Description = input.Description
	}
	if input.Address != nil {
		store.Address = input.Address
	}
	if input.LogoURL != nil {
		store.LogoURL = input.LogoURL
	}
	if input.BannerURL != nil {
		store.BannerURL = input.BannerURL
	}
	if input.Currency != nil {
		store.Currency = strings.ToUpper(strings.TrimSpace(*input.Currency))
	}
	if input.DefaultTaxRate != nil {
		if input.DefaultTaxRate.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "default tax rate cannot be negative")
		}
		store.DefaultTaxRate = *input.DefaultTaxRate
	}
	if input.Metadata != nil {
		store.Metadata = input.Metadata
	}
	if input.IsActive != nil {
		store.IsActive = *input.IsActive
	}

	if err := s.repo.SaveStore(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	return store, nil
}

func (s *service) ListStores(ctx context.Context, vendorID uuid.UUID) ([]models.Store, error) {
	stores, err := s.repo.ListStoresByVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	return stores, nil
}

// EnsureDefaultStore returns the vendor's first store, creating one when the
// vendor has none. Idempotent: a concurrent create loses the race and the
// existing first store wins.
func (s *service) EnsureDefaultStore(ctx context.Context, vendorID uuid.UUID) (*models.Store, error) {
	store, err := s.repo.FirstStoreByVendor(ctx, vendorID)
	if err == nil {
		return store, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load default store")
	}

	created := &models.Store{
		ID:       uuid.New(),
		VendorID: vendorID,
		Name:     defaultStoreName,
		Slug:     defaultStoreSlug,
		Currency: "USD",
		Metadata: json.RawMessage(`{"auto_created": true}`),
		IsActive: true,
	}
	if err := s.repo.CreateStore(ctx, created); err != nil {
		if db.IsUniqueViolation(err, "") {
			return s.DefaultStore(ctx, vendorID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create default store")
	}
	return created, nil
}

// DefaultStore returns the vendor's first store by (created_at, id).
func (s *service) DefaultStore(ctx context.Context, vendorID uuid.UUID) (*models.Store, error) {
	store, err := s.repo.FirstStoreByVendor(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor has no stores")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load default store")
	}
	return store, nil
}
