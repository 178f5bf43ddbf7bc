package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omnistock/omnistock-backend/pkg/enums"
)

// CardMetadata holds card-specific attributes, at most one row per item.
// Looked up explicitly; never eagerly joined.
type CardMetadata struct {
	ID              uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID          uuid.UUID         `gorm:"column:item_id;type:uuid;not null;uniqueIndex"`
	PSAGrade        *decimal.Decimal  `gorm:"column:psa_grade;type:numeric(3,1)"`
	Condition       *string           `gorm:"column:condition"`
	ExternalIDs     json.RawMessage   `gorm:"column:external_ids;type:jsonb"`
	LastEstimatedAt *time.Time        `gorm:"column:last_estimated_at"`
	Language        *string           `gorm:"column:language"`
	ReleaseDate     *time.Time        `gorm:"column:release_date;type:date"`
	PrintRun        *string           `gorm:"column:print_run"`
	MarketRegion    *string           `gorm:"column:market_region"`
	Notes           *string           `gorm:"column:notes"`
	SetName         *string           `gorm:"column:set_name"`
	CardNumber      *string           `gorm:"column:card_number"`
	Rarity          *enums.CardRarity `gorm:"column:rarity;type:text"`
	Finish          *enums.CardFinish `gorm:"column:finish;type:text"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides GORM's pluralization.
func (CardMetadata) TableName() string {
	return "card_metadata"
}
