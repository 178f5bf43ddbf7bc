package catalog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omnistock/omnistock-backend/pkg/db/models"
	"github.com/omnistock/omnistock-backend/pkg/enums"
)

// MediaInput is one gallery entry in a create/update payload.
type MediaInput struct {
	URL       string           `json:"url"`
	MediaType *enums.MediaType `json:"media_type,omitempty"`
	SortOrder *int             `json:"sort_order,omitempty"`
	IsPrimary bool             `json:"is_primary"`
	Width     *int             `json:"width,omitempty"`
	Height    *int             `json:"height,omitempty"`
	SizeKB    *int             `json:"size_kb,omitempty"`
	Metadata  json.RawMessage  `json:"metadata,omitempty"`
}

// VariantInput is one per-condition/grade stock split in a payload.
type VariantInput struct {
	Condition       string          `json:"condition"`
	Grade           string          `json:"grade"`
	Quantity        int             `json:"quantity"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
}

// CardMetadataInput carries card attributes; nil fields stay unchanged on update.
type CardMetadataInput struct {
	PSAGrade        *decimal.Decimal  `json:"psa_grade,omitempty"`
	Condition       *string           `json:"condition,omitempty"`
	ExternalIDs     json.RawMessage   `json:"external_ids,omitempty"`
	LastEstimatedAt *time.Time        `json:"last_estimated_at,omitempty"`
	Language        *string           `json:"language,omitempty"`
	ReleaseDate     *time.Time        `json:"release_date,omitempty"`
	PrintRun        *string           `json:"print_run,omitempty"`
	MarketRegion    *string           `json:"market_region,omitempty"`
	Notes           *string           `json:"notes,omitempty"`
	SetName         *string           `json:"set_name,omitempty"`
	CardNumber      *string           `json:"card_number,omitempty"`
	Rarity          *enums.CardRarity `json:"rarity,omitempty"`
	Finish          *enums.CardFinish `json:"finish,omitempty"`
}

// CreateItemInput captures a full item creation payload. A nil Media/Variants
// slice means "no gallery/variants", matching the absent-payload signal.
type CreateItemInput struct {
	StoreID        uuid.UUID
	ProductID      *uuid.UUID
	Name           string
	SKU            string
	Description    *string
	Condition      *string
	Category       *enums.ItemCategory
	Status         *enums.ItemStatus
	Quantity       int
	IntakePrice    decimal.Decimal
	Price          decimal.Decimal
	ProjectedPrice decimal.Decimal
	CardDetails    *CardMetadataInput
	Media          []MediaInput
	Variants       []VariantInput
}

// UpdateItemInput lists the mutable item fields. Nil means unchanged; for
// Media and Variants a non-nil pointer to an empty slice means "clear".
type UpdateItemInput struct {
	Name           *string
	SKU            *string
	Description    *string
	Condition      *string
	Category       *enums.ItemCategory
	Status         *enums.ItemStatus
	ProductID      *uuid.UUID
	Quantity       *int
	IntakePrice    *decimal.Decimal
	Price          *decimal.Decimal
	ProjectedPrice *decimal.Decimal
	CardDetails    *CardMetadataInput
	Media          *[]MediaInput
	Variants       *[]VariantInput
}

// TransferStockInput moves an item to another store within the same vendor.
type TransferStockInput struct {
	ItemID    uuid.UUID
	ToStoreID uuid.UUID
	Reason    *string
}

// ItemDetail bundles an item with its lazily loaded satellites.
type ItemDetail struct {
	Item         models.CatalogItem      `json:"item"`
	CardMetadata *models.CardMetadata    `json:"card_metadata,omitempty"`
	Media        []models.CatalogMedia   `json:"media"`
	Variants     []models.CatalogVariant `json:"variants"`
}

// ListFilters narrows the vendor-scoped item listing.
type ListFilters struct {
	StoreID      *uuid.UUID
	VendorID     *uuid.UUID
	Search       string
	Category     *enums.ItemCategory
	Status       *enums.ItemStatus
	Language     *string
	MarketRegion *string
	SortBy       string
	SortOrder    string
	Page         int
	PageSize     int
}

// ListResult is one page of the vendor-scoped listing.
type ListResult struct {
	Items    []models.CatalogItem `json:"items"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}
