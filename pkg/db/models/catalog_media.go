package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/omnistock/omnistock-backend/pkg/enums"
)

// CatalogMedia is one image in an item's ordered gallery. Exactly one row per
// non-empty gallery carries IsPrimary=true.
type CatalogMedia struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID    uuid.UUID       `gorm:"column:item_id;type:uuid;not null;uniqueIndex:idx_catalog_media_item_sort"`
	URL       string          `gorm:"column:url;not null"`
	MediaType enums.MediaType `gorm:"column:media_type;type:text;not null;default:'gallery'"`
	SortOrder int             `gorm:"column:sort_order;not null;default:0;uniqueIndex:idx_catalog_media_item_sort"`
	IsPrimary bool            `gorm:"column:is_primary;not null;default:false"`
	Width     *int            `gorm:"column:width"`
	Height    *int            `gorm:"column:height"`
	SizeKB    *int            `gorm:"column:size_kb"`
	Metadata  json.RawMessage `gorm:"column:metadata;type:jsonb"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
