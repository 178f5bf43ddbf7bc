package controllers

import (
	"net/http"

	"github.com/omnistock/omnistock-backend/api/responses"
	"github.com/omnistock/omnistock-backend/api/validators"
	"github.com/omnistock/omnistock-backend/internal/memberships"
	"github.com/omnistock/omnistock-backend/internal/tenants"
	pkgerrors "github.com/omnistock/omnistock-backend/pkg/errors"
	"github.com/omnistock/omnistock-backend/pkg/logger"
)

type createVendorRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	ContactInfo *string `json:"contact_info,omitempty"`
}

type updateVendorRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ContactInfo *string `json:"contact_info,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// VendorCreate registers an additional vendor owned by the caller.
func VendorCreate(tenantsSvc tenants.Service, membershipsSvc memberships.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createVendorRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := tenantsSvc.CreateVendor(r.Context(), tenants.CreateVendorInput{
			Name:        body.Name,
			Description: body.Description,
			ContactInfo: body.ContactInfo,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if _, err := membershipsSvc.EnsureOwnerMembership(r.Context(), vendor.ID, userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if _, err := tenantsSvc.EnsureDefaultStore(r.Context(), vendor.ID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, vendor)
	}
}

// VendorList returns every vendor the caller actively belongs to.
func VendorList(tenantsSvc tenants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendors, err := tenantsSvc.ListVendorsForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendors)
	}
}

// VendorGet returns the caller's active vendor.
func VendorGet(tenantsSvc tenants.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := tenantsSvc.GetVendor(r.Context(), actor.VendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

// VendorUpdate patches the caller's active vendor. Admin roles only.
func VendorUpdate(tenantsSvc tenants.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !actor.Role.IsAdmin() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required"))
			return
		}

		var body updateVendorRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := tenantsSvc.UpdateVendor(r.Context(), actor.VendorID, tenants.UpdateVendorInput{
			Name:        body.Name,
			Description: body.Description,
			ContactInfo: body.ContactInfo,
			IsActive:    body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}
