package catalog

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/omnistock/omnistock-backend/pkg/db/models"
	pkgerrors "github.com/omnistock/omnistock-backend/pkg/errors"
)

// SearchItems is the free-text entry point over the scoped listing. Queries
// shorter than the configured minimum return an empty page instead of an
// error so typeahead callers can fire on every keystroke.
func (s *service) SearchItems(ctx context.Context, actor *models.VendorMembership, query string, filters ListFilters) (*ListResult, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no active membership")
	}

	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < s.cfg.SearchMinLength {
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
		return &ListResult{
			Items:    []models.CatalogItem{},
			Total:    0,
			Page:     page,
			PageSize: pageSize,
		}, nil
	}

	filters.Search = query
	return s.ListItems(ctx, actor, filters)
}
