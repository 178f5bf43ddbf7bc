package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/omnistock/omnistock-backend/pkg/enums"
)

// StoreAccess grants one membership scoped rights on one store.
type StoreAccess struct {
	ID           uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID      uuid.UUID             `gorm:"column:store_id;type:uuid;not null;uniqueIndex:idx_store_access_store_membership"`
	MembershipID uuid.UUID             `gorm:"column:membership_id;type:uuid;not null;uniqueIndex:idx_store_access_store_membership"`
	Role         enums.StoreAccessRole `gorm:"column:role;type:text;not null"`
	Permissions  json.RawMessage       `gorm:"column:permissions;type:jsonb"`
	IsActive     bool                  `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides GORM's pluralization.
func (StoreAccess) TableName() string {
	return "store_access"
}
