package auth

import (
	"github.com/google/uuid"

	"github.com/omnistock/omnistock-backend/internal/users"
	"github.com/omnistock/omnistock-backend/pkg/enums"
)

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VendorSummary describes the vendor metadata returned after login.
type VendorSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// LoginResponse contains the tokens, user, and vendor list produced by a successful login.
type LoginResponse struct {
	AccessToken    string           `json:"access_token"`
	RefreshToken   string           `json:"refresh_token"`
	ActiveVendorID *uuid.UUID       `json:"active_vendor_id,omitempty"`
	ActiveStoreID  *uuid.UUID       `json:"active_store_id,omitempty"`
	Role           *enums.MemberRole `json:"role,omitempty"`
	Vendors        []VendorSummary  `json:"vendors"`
	User           *users.UserDTO   `json:"user"`
}

// RegisterRequest contains the payload required to onboard a new vendor.
type RegisterRequest struct {
	FirstName   string  `json:"first_name" validate:"required"`
	LastName    string  `json:"last_name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8"`
	VendorName  string  `json:"vendor_name" validate:"required"`
	Description *string `json:"description,omitempty"`
}

// RefreshRequest carries the expired access token and its refresh token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPair is the refreshed credential set.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest swaps the caller's credential after verifying the
// current one.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// SwitchVendorRequest selects a different vendor as the active tenant.
type SwitchVendorRequest struct {
	VendorID uuid.UUID `json:"vendor_id" validate:"required"`
}

// SwitchStoreRequest selects a different store within the active vendor.
type SwitchStoreRequest struct {
	StoreID uuid.UUID `json:"store_id" validate:"required"`
}

// SwitchResponse returns fresh tokens plus the new active scope.
type SwitchResponse struct {
	AccessToken    string     `json:"access_token"`
	RefreshToken   string     `json:"refresh_token"`
	ActiveVendorID uuid.UUID  `json:"active_vendor_id"`
	ActiveStoreID  *uuid.UUID `json:"active_store_id,omitempty"`
}
