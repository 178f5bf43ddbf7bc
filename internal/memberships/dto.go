package memberships

import (
	"time"

	"github.com/google/uuid"

	"github.com/omnistock/omnistock-backend/pkg/enums"
)

// MemberDTO is a membership joined with the member's user record.
type MemberDTO struct {
	MembershipID  uuid.UUID          `json:"membership_id"`
	VendorID      uuid.UUID          `json:"vendor_id"`
	UserID        uuid.UUID          `json:"user_id"`
	Email         string             `json:"email"`
	FirstName     string             `json:"first_name"`
	LastName      string             `json:"last_name"`
	Role          enums.MemberRole   `json:"role"`
	Title         *string            `json:"title,omitempty"`
	InviteStatus  enums.InviteStatus `json:"invite_status"`
	IsActive      bool               `json:"is_active"`
	IsPrimary     bool               `json:"is_primary"`
	ActiveStoreID *uuid.UUID         `json:"active_store_id,omitempty"`
	LastLoginAt   *time.Time         `json:"last_login_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

type memberRow struct {
	ID            uuid.UUID
	VendorID      uuid.UUID
	UserID        uuid.UUID
	Email         string
	FirstName     string
	LastName      string
	Role          enums.MemberRole
	Title         *string
	InviteStatus  enums.InviteStatus
	IsActive      bool
	IsPrimary     bool
	ActiveStoreID *uuid.UUID
	LastLoginAt   *time.Time
	CreatedAt     time.Time
}

func membersFromRows(rows []memberRow) []MemberDTO {
	out := make([]MemberDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, MemberDTO{
			MembershipID:  row.ID,
			VendorID:      row.VendorID,
			UserID:        row.UserID,
			Email:         row.Email,
			FirstName:     row.FirstName,
			LastName:      row.LastName,
			Role:          row.Role,
			Title:         row.Title,
			InviteStatus:  row.InviteStatus,
			IsActive:      row.IsActive,
			IsPrimary:     row.IsPrimary,
			ActiveStoreID: row.ActiveStoreID,
			LastLoginAt:   row.LastLoginAt,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out
}
