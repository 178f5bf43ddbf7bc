package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/omnistock/omnistock-backend/pkg/enums"
)

// StockLedger is the append-only audit log of quantity-affecting events.
// ItemID is nullable so ledger history survives item deletion.
type StockLedger struct {
	ID              uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID          *uuid.UUID                  `gorm:"column:item_id;type:uuid;index"`
	TransactionType enums.LedgerTransactionType `gorm:"column:transaction_type;type:text;not null"`
	QuantityBefore  int                         `gorm:"column:quantity_before;not null"`
	QuantityAfter   int                         `gorm:"column:quantity_after;not null"`
	QuantityDelta   int                         `gorm:"column:quantity_delta;not null"`
	Reason          *string                     `gorm:"column:reason"`
	CreatedByID     *uuid.UUID                  `gorm:"column:created_by_id;type:uuid"`
	Metadata        json.RawMessage             `gorm:"column:metadata;type:jsonb"`
	CreatedAt       time.Time                   `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides GORM's pluralization.
func (StockLedger) TableName() string {
	return "stock_ledger"
}
