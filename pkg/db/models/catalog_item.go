package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omnistock/omnistock-backend/pkg/enums"
)

// CatalogItem is the core stock record, always scoped to a vendor and a store.
// SearchText is a denormalized blob of name+sku+description+category kept in
// sync by the write service. ImageURL mirrors the primary gallery row.
type CatalogItem struct {
	ID             uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID       uuid.UUID           `gorm:"column:vendor_id;type:uuid;not null;index"`
	StoreID        uuid.UUID           `gorm:"column:store_id;type:uuid;not null;index"`
	ProductID      *uuid.UUID          `gorm:"column:product_id;type:uuid"`
	Name           string              `gorm:"column:name;not null"`
	SKU            string              `gorm:"column:sku;not null;uniqueIndex"`
	Description    *string             `gorm:"column:description"`
	SearchText     string              `gorm:"column:search_text;not null;default:''"`
	Condition      *string             `gorm:"column:condition"`
	Category       *enums.ItemCategory `gorm:"column:category;type:text;index"`
	Status         enums.ItemStatus    `gorm:"column:status;type:text;not null;default:'active'"`
	ImageURL       *string             `gorm:"column:image_url"`
	Quantity       int                 `gorm:"column:quantity;not null;default:0"`
	IntakePrice    decimal.Decimal     `gorm:"column:intake_price;type:numeric(10,2);not null;default:0"`
	Price          decimal.Decimal     `gorm:"column:price;type:numeric(10,2);not null;default:0"`
	ProjectedPrice decimal.Decimal     `gorm:"column:projected_price;type:numeric(10,2);not null;default:0"`
	CreatedByID    *uuid.UUID          `gorm:"column:created_by_id;type:uuid"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
