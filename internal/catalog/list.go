package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/omnistock/omnistock-backend/pkg/db/models"
	pkgerrors "github.com/omnistock/omnistock-backend/pkg/errors"
)

var sortColumns = map[string]string{
	"name":       "catalog_items.name",
	"created_at": "catalog_items.created_at",
	"updated_at": "catalog_items.updated_at",
	"price":      "catalog_items.price",
}

const (
	defaultSortColumn = "catalog_items.created_at"
	defaultSortOrder  = "desc"
)

// ListItems returns one page of the actor's vendor-scoped catalog. The vendor
// filter comes from the membership; a VendorID filter can only narrow further.
func (s *service) ListItems(ctx context.Context, actor *models.VendorMembership, filters ListFilters) (*ListResult, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no active membership")
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = s.cfg.DefaultPageSize
	}
	if pageSize > s.cfg.MaxPageSize {
		pageSize = s.cfg.MaxPageSize
	}
	filters.Page = page
	filters.PageSize = pageSize

	items, total, err := s.repo.ListItems(ctx, actor.VendorID, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}
	return &ListResult{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// ListItems runs the scoped listing query. vendorID is mandatory; every other
// filter narrows the result. Unknown sort fields silently fall back to
// created_at descending.
func (r *Repository) ListItems(ctx context.Context, vendorID uuid.UUID, filters ListFilters) ([]models.CatalogItem, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.CatalogItem{}).
		Where("catalog_items.vendor_id = ?", vendorID)

	if filters.VendorID != nil {
		query = query.Where("catalog_items.vendor_id = ?", *filters.VendorID)
	}
	if filters.StoreID != nil {
		query = query.Where("catalog_items.store_id = ?", *filters.StoreID)
	}
	if filters.Category != nil {
		query = query.Where("catalog_items.category = ?", *filters.Category)
	}
	if filters.Status != nil {
		query = query.Where("catalog_items.status = ?", *filters.Status)
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(catalog_items.search_text) LIKE ? OR LOWER(catalog_items.sku) = ?",
			pattern, strings.ToLower(search),
		)
	}
	if filters.Language != nil || filters.MarketRegion != nil {
		query = query.Joins("JOIN card_metadata ON card_metadata.item_id = catalog_items.id")
		if filters.Language != nil {
			query = query.Where("LOWER(card_metadata.language) = ?", strings.ToLower(*filters.Language))
		}
		if filters.MarketRegion != nil {
			query = query.Where("LOWER(card_metadata.market_region) = ?", strings.ToLower(*filters.MarketRegion))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.CatalogItem
	err := query.
		Order(orderClause(filters.SortBy, filters.SortOrder)).
		Offset((filters.Page - 1) * filters.PageSize).
		Limit(filters.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func orderClause(sortBy, sortOrder string) string {
	column, ok := sortColumns[strings.ToLower(strings.TrimSpace(sortBy))]
	if !ok {
		return defaultSortColumn + " " + defaultSortOrder
	}
	direction := strings.ToLower(strings.TrimSpace(sortOrder))
	if direction != "asc" && direction != "desc" {
		direction = defaultSortOrder
	}
	return column + " " + direction
}
