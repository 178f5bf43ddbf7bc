package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/omnistock/omnistock-backend/api/responses"
	"github.com/omnistock/omnistock-backend/api/validators"
	"github.com/omnistock/omnistock-backend/internal/tenants"
	"github.com/omnistock/omnistock-backend/pkg/enums"
	pkgerrors "github.com/omnistock/omnistock-backend/pkg/errors"
	"github.com/omnistock/omnistock-backend/pkg/logger"
)

type createStoreRequest struct {
	Name           string           `json:"name" validate:"required"`
	Type           *string          `json:"type,omitempty"`
	Description    *string          `json:"description,omitempty"`
	Address        *string          `json:"address,omitempty"`
	Currency       string           `json:"currency,omitempty"`
	DefaultTaxRate *decimal.Decimal `json:"default_tax_rate,omitempty"`
	Metadata       json.RawMessage  `json:"metadata,omitempty"`
}

type updateStoreRequest struct {
	Name           *string          `json:"name,omitempty"`
	Type           *string          `json:"type,omitempty"`
	Description    *string          `json:"description,omitempty"`
	Address        *string          `json:"address,omitempty"`
	LogoURL        *string          `json:"logo_url,omitempty"`
	BannerURL      *string          `json:"banner_url,omitempty"`
	Currency       *string          `json:"currency,omitempty"`
	DefaultTaxRate *decimal.Decimal `json:"default_tax_rate,omitempty"`
	Metadata       json.RawMessage  `json:"metadata,omitempty"`
	IsActive       *bool            `json:"is_active,omitempty"`
}

func parseStoreType(raw *string) (*enums.StoreType, error) {
	if raw == nil {
		return nil, nil
	}
	st, err := enums.ParseStoreType(*raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid store type")
	}
	return &st, nil
}

// StoreCreate opens a new store under the caller's active vendor.
func StoreCreate(tenantsSvc tenants.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
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

		var body createStoreRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeType, err := parseStoreType(body.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := tenantsSvc.CreateStore(r.Context(), tenants.CreateStoreInput{
			VendorID:       actor.VendorID,
			Name:           body.Name,
			Type:           storeType,
			Description:    body.Description,
			Address:        body.Address,
			Currency:       body.Currency,
			DefaultTaxRate: body.DefaultTaxRate,
			Metadata:       body.Metadata,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, store)
	}
}

// StoreList returns all stores of the caller's active vendor.
func StoreList(tenantsSvc tenants.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stores, err := tenantsSvc.ListStores(r.Context(), actor.VendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stores)
	}
}

// StoreGet returns one store of the caller's active vendor.
func StoreGet(tenantsSvc tenants.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := parsePathUUID(r, chi.URLParam(r, "storeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := tenantsSvc.GetStore(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if store.VendorID != actor.VendorID {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "store not found"))
			return
		}
		responses.WriteSuccess(w, store)
	}
}

// StoreUpdate patches one store of the caller's active vendor. Admin roles only.
func StoreUpdate(tenantsSvc tenants.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
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
		storeID, err := parsePathUUID(r, chi.URLParam(r, "storeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		existing, err := tenantsSvc.GetStore(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if existing.VendorID != actor.VendorID {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "store not found"))
			return
		}

		var body updateStoreRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeType, err := parseStoreType(body.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := tenantsSvc.UpdateStore(r.Context(), storeID, tenants.UpdateStoreInput{
			Name:           body.Name,
			Type:           storeType,
			Description:    body.Description,
			Address:        body.Address,
			LogoURL:        body.LogoURL,
			BannerURL:      body.BannerURL,
			Currency:       body.Currency,
			DefaultTaxRate: body.DefaultTaxRate,
			Metadata:       body.Metadata,
			IsActive:       body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}
