package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omnistock/omnistock-backend/pkg/enums"
)

// Store is a storefront or sales channel belonging to exactly one vendor.
// Slug is unique within the vendor, not globally.
type Store struct {
	ID             uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID       uuid.UUID        `gorm:"column:vendor_id;type:uuid;not null;uniqueIndex:idx_stores_vendor_slug"`
	Name           string           `gorm:"column:name;not null"`
	Slug           string           `gorm:"column:slug;not null;uniqueIndex:idx_stores_vendor_slug"`
	Type           *enums.StoreType `gorm:"column:type;type:text"`
	Description    *string          `gorm:"column:description"`
	Address        *string          `gorm:"column:address"`
	LogoURL        *string          `gorm:"column:logo_url"`
	BannerURL      *string          `gorm:"column:banner_url"`
	Currency       string           `gorm:"column:currency;not null;default:'USD'"`
	DefaultTaxRate decimal.Decimal  `gorm:"column:default_tax_rate;type:numeric(5,2);not null;default:0"`
	Metadata       json.RawMessage  `gorm:"column:metadata;type:jsonb"`
	IsActive       bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
