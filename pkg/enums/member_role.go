package enums

import "fmt"

// MemberRole represents a vendor-level permissions role.
type MemberRole string

const (
	MemberRoleOwner   MemberRole = "owner"
	MemberRoleAdmin   MemberRole = "admin"
	MemberRoleManager MemberRole = "manager"
	MemberRoleMember  MemberRole = "member"
	MemberRoleStaff   MemberRole = "staff"
	MemberRoleBilling MemberRole = "billing"
	MemberRoleViewer  MemberRole = "viewer"
)

var validMemberRoles = []MemberRole{
	MemberRoleOwner,
	MemberRoleAdmin,
	MemberRoleManager,
	MemberRoleMember,
	MemberRoleStaff,
	MemberRoleBilling,
	MemberRoleViewer,
}

// adminMemberRoles bypass per-store access grants.
var adminMemberRoles = []MemberRole{
	MemberRoleOwner,
	MemberRoleAdmin,
}

// String implements fmt.Stringer.
func (m MemberRole) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MemberRole.
func (m MemberRole) IsValid() bool {
	for _, candidate := range validMemberRoles {
		if candidate == m {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role carries vendor-wide store access.
func (m MemberRole) IsAdmin() bool {
	for _, candidate := range adminMemberRoles {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMemberRole converts raw input into a MemberRole.
func ParseMemberRole(value string) (MemberRole, error) {
	for _, candidate := range validMemberRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid member role %q", value)
}
