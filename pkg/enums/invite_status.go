package enums

import "fmt"

// InviteStatus tracks the membership invitation lifecycle.
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
	InviteStatusRevoked  InviteStatus = "revoked"
)

var validInviteStatuses = []InviteStatus{
	InviteStatusPending,
	InviteStatusAccepted,
	InviteStatusDeclined,
	InviteStatusRevoked,
}

// String implements fmt.Stringer.
func (s InviteStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known InviteStatus.
func (s InviteStatus) IsValid() bool {
	for _, candidate := range validInviteStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseInviteStatus converts raw input into an InviteStatus.
func ParseInviteStatus(value string) (InviteStatus, error) {
	for _, candidate := range validInviteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid invite status %q", value)
}
