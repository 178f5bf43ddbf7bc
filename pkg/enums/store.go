package enums

import "fmt"

// StoreType represents the storefront channel kind.
type StoreType string

const (
	StoreTypeRetail    StoreType = "retail"
	StoreTypeOnline    StoreType = "online"
	StoreTypePopup     StoreType = "popup"
	StoreTypeWarehouse StoreType = "warehouse"
)

var validStoreTypes = []StoreType{
	StoreTypeRetail,
	StoreTypeOnline,
	StoreTypePopup,
	StoreTypeWarehouse,
}

// String implements fmt.Stringer.
func (s StoreType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StoreType.
func (s StoreType) IsValid() bool {
	for _, candidate := range validStoreTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStoreType converts raw input into a StoreType.
func ParseStoreType(value string) (StoreType, error) {
	for _, candidate := range validStoreTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid store type %q", value)
}

// StoreAccessRole scopes what a granted member may do inside one store.
type StoreAccessRole string

const (
	StoreAccessRoleManager  StoreAccessRole = "manager"
	StoreAccessRoleSales    StoreAccessRole = "sales"
	StoreAccessRoleViewOnly StoreAccessRole = "view_only"
)

var validStoreAccessRoles = []StoreAccessRole{
	StoreAccessRoleManager,
	StoreAccessRoleSales,
	StoreAccessRoleViewOnly,
}

// String implements fmt.Stringer.
func (r StoreAccessRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known StoreAccessRole.
func (r StoreAccessRole) IsValid() bool {
	for _, candidate := range validStoreAccessRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseStoreAccessRole converts raw input into a StoreAccessRole.
func ParseStoreAccessRole(value string) (StoreAccessRole, error) {
	for _, candidate := range validStoreAccessRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid store access role %q", value)
}
