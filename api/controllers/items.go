package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omnistock/omnistock-backend/api/middleware"
	"github.com/omnistock/omnistock-backend/api/responses"
	"github.com/omnistock/omnistock-backend/api/validators"
	"github.com/omnistock/omnistock-backend/internal/catalog"
	"github.com/omnistock/omnistock-backend/pkg/enums"
	pkgerrors "github.com/omnistock/omnistock-backend/pkg/errors"
	"github.com/omnistock/omnistock-backend/pkg/logger"
)

type createItemRequest struct {
	StoreID        *uuid.UUID                 `json:"store_id,omitempty"`
	ProductID      *uuid.UUID                 `json:"product_id,omitempty"`
	Name           string                     `json:"name" validate:"required"`
	SKU            string                     `json:"sku" validate:"required"`
	Description    *string                    `json:"description,omitempty"`
	Condition      *string                    `json:"condition,omitempty"`
	Category       *string                    `json:"category,omitempty"`
	Status         *string                    `json:"status,omitempty"`
	Quantity       int                        `json:"quantity"`
	IntakePrice    decimal.Decimal            `json:"intake_price"`
	Price          decimal.Decimal            `json:"price"`
	ProjectedPrice decimal.Decimal            `json:"projected_price"`
	CardDetails    *catalog.CardMetadataInput `json:"card_details,omitempty"`
	Media          []catalog.MediaInput       `json:"media,omitempty"`
	Variants       []catalog.VariantInput     `json:"variants,omitempty"`
}

type updateItemRequest struct {
	Name           *string                    `json:"name,omitempty"`
	SKU            *string                    `json:"sku,omitempty"`
	Description    *string                    `json:"description,omitempty"`
	Condition      *string                    `json:"condition,omitempty"`
	Category       *string                    `json:"category,omitempty"`
	Status         *string                    `json:"status,omitempty"`
	ProductID      *uuid.UUID                 `json:"product_id,omitempty"`
	Quantity       *int                       `json:"quantity,omitempty"`
	IntakePrice    *decimal.Decimal           `json:"intake_price,omitempty"`
	Price          *decimal.Decimal           `json:"price,omitempty"`
	ProjectedPrice *decimal.Decimal           `json:"projected_price,omitempty"`
	CardDetails    *catalog.CardMetadataInput `json:"card_details,omitempty"`
	Media          *[]catalog.MediaInput      `json:"media,omitempty"`
	Variants       *[]catalog.VariantInput    `json:"variants,omitempty"`
}

type transferStockRequest struct {
	ToStoreID uuid.UUID `json:"to_store_id" validate:"required"`
	Reason    *string   `json:"reason,omitempty"`
}

// resolveTargetStore prefers an explicit store_id and falls back to the
// session's active store claim.
func resolveTargetStore(r *http.Request, explicit *uuid.UUID) (uuid.UUID, error) {
	if explicit != nil {
		return *explicit, nil
	}
	raw := middleware.StoreIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "store_id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "store_id is required")
	}
	return id, nil
}

func parseItemCategory(raw *string) (*enums.ItemCategory, error) {
	if raw == nil {
		return nil, nil
	}
	c, err := enums.ParseItemCategory(*raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item category")
	}
	return &c, nil
}

func parseItemStatus(raw *string) (*enums.ItemStatus, error) {
	if raw == nil {
		return nil, nil
	}
	s, err := enums.ParseItemStatus(*raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item status")
	}
	return &s, nil
}

// ItemCreate registers a new catalog item with its satellites.
func ItemCreate(svc catalog.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := parseItemCategory(body.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := parseItemStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := resolveTargetStore(r, body.StoreID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.CreateItem(r.Context(), actor, catalog.CreateItemInput{
			StoreID:        storeID,
			ProductID:      body.ProductID,
			Name:           body.Name,
			SKU:            body.SKU,
			Description:    body.Description,
			Condition:      body.Condition,
			Category:       category,
			Status:         status,
			Quantity:       body.Quantity,
			IntakePrice:    body.IntakePrice,
			Price:          body.Price,
			ProjectedPrice: body.ProjectedPrice,
			CardDetails:    body.CardDetails,
			Media:          body.Media,
			Variants:       body.Variants,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, detail)
	}
}

// ItemGet returns one item with metadata, gallery, and variants.
func ItemGet(svc catalog.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := parsePathUUID(r, chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.GetItem(r.Context(), actor, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// ItemUpdate patches an item; nil media/variants leave the satellites alone.
func ItemUpdate(svc catalog.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := parsePathUUID(r, chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := parseItemCategory(body.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := parseItemStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.UpdateItem(r.Context(), actor, itemID, catalog.UpdateItemInput{
			Name:           body.Name,
			SKU:            body.SKU,
			Description:    body.Description,
			Condition:      body.Condition,
			Category:       category,
			Status:         status,
			ProductID:      body.ProductID,
			Quantity:       body.Quantity,
			IntakePrice:    body.IntakePrice,
			Price:          body.Price,
			ProjectedPrice: body.ProjectedPrice,
			CardDetails:    body.CardDetails,
			Media:          body.Media,
			Variants:       body.Variants,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// ItemDelete removes an item while preserving its ledger history.
func ItemDelete(svc catalog.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := parsePathUUID(r, chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), actor, itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ItemTransfer moves an item to another store within the vendor.
func ItemTransfer(svc catalog.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := parsePathUUID(r, chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body transferStockRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.TransferStock(r.Context(), actor, catalog.TransferStockInput{
			ItemID:    itemID,
			ToStoreID: body.ToStoreID,
			Reason:    body.Reason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// ItemList returns a filtered, paginated page of the vendor's catalog.
func ItemList(svc catalog.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters, err := listFiltersFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListItems(r.Context(), actor, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ItemSearch runs the free-text entry point over the vendor's catalog.
func ItemSearch(svc catalog.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters, err := listFiltersFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		query := validators.ParseQueryString(r, "q")

		result, err := svc.SearchItems(r.Context(), actor, query, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ItemLedger returns the item's immutable stock history.
func ItemLedger(svc catalog.Service, repo *catalog.Repository, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := parsePathUUID(r, chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// GetItem enforces vendor scoping before the ledger is exposed.
		if _, err := svc.GetItem(r.Context(), actor, itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := repo.ListLedgerByItem(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

func listFiltersFromQuery(r *http.Request) (catalog.ListFilters, error) {
	var filters catalog.ListFilters

	storeID, err := validators.ParseQueryUUID(r, "store_id")
	if err != nil {
		return filters, err
	}
	filters.StoreID = storeID

	if raw := validators.ParseQueryString(r, "category"); raw != "" {
		category, err := parseItemCategory(&raw)
		if err != nil {
			return filters, err
		}
		filters.Category = category
	}
	if raw := validators.ParseQueryString(r, "status"); raw != "" {
		status, err := parseItemStatus(&raw)
		if err != nil {
			return filters, err
		}
		filters.Status = status
	}
	if raw := validators.ParseQueryString(r, "language"); raw != "" {
		filters.Language = &raw
	}
	if raw := validators.ParseQueryString(r, "market_region"); raw != "" {
		filters.MarketRegion = &raw
	}

	filters.Search = validators.ParseQueryString(r, "search")
	filters.SortBy = validators.ParseQueryString(r, "sort_by")
	filters.SortOrder = validators.ParseQueryString(r, "sort_order")

	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return filters, err
	}
	filters.Page = page

	pageSize, err := validators.ParseQueryInt(r, "page_size", 0, 0, 100)
	if err != nil {
		return filters, err
	}
	filters.PageSize = pageSize

	return filters, nil
}
