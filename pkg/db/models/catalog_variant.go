package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogVariant splits one item's stock per (condition, grade).
type CatalogVariant struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID          uuid.UUID       `gorm:"column:item_id;type:uuid;not null;uniqueIndex:idx_catalog_variants_item_condition_grade"`
	Condition       string          `gorm:"column:condition;not null;default:'';uniqueIndex:idx_catalog_variants_item_condition_grade"`
	Grade           string          `gorm:"column:grade;not null;default:'';uniqueIndex:idx_catalog_variants_item_condition_grade"`
	Quantity        int             `gorm:"column:quantity;not null;default:0"`
	PriceAdjustment decimal.Decimal `gorm:"column:price_adjustment;type:numeric(10,2);not null;default:0"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
