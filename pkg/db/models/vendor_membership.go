package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/omnistock/omnistock-backend/pkg/enums"
)

// VendorMembership links a user with a vendor and captures their role and
// invitation lifecycle state. At most one membership per user is primary.
type VendorMembership struct {
	ID              uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID        uuid.UUID          `gorm:"column:vendor_id;type:uuid;not null;uniqueIndex:idx_memberships_vendor_user"`
	UserID          uuid.UUID          `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_memberships_vendor_user"`
	Role            enums.MemberRole   `gorm:"column:role;type:text;not null"`
	Title           *string            `gorm:"column:title"`
	InviteStatus    enums.InviteStatus `gorm:"column:invite_status;type:text;not null;default:'pending'"`
	InviteCode      *string            `gorm:"column:invite_code"`
	InvitedByUserID *uuid.UUID         `gorm:"column:invited_by_user_id;type:uuid"`
	InvitedAt       *time.Time         `gorm:"column:invited_at"`
	RespondedAt     *time.Time         `gorm:"column:responded_at"`
	RevokedAt       *time.Time         `gorm:"column:revoked_at"`
	IsActive        bool               `gorm:"column:is_active;not null;default:false"`
	IsPrimary       bool               `gorm:"column:is_primary;not null;default:false"`
	ActiveStoreID   *uuid.UUID         `gorm:"column:active_store_id;type:uuid"`
	Metadata        json.RawMessage    `gorm:"column:metadata;type:jsonb"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
