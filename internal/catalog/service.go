package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnistock/omnistock-backend/pkg/config"
	"github.com/omnistock/omnistock-backend/pkg/db"
	"github.com/omnistock/omnistock-backend/pkg/db/models"
	"github.com/omnistock/omnistock-backend/pkg/enums"
	pkgerrors "github.com/omnistock/omnistock-backend/pkg/errors"
	"github.com/omnistock/omnistock-backend/pkg/metrics"
)

const (
	reasonInitialCreate = "initial_create"
	reasonManualUpdate  = "manual_update"
	reasonTransfer      = "transfer"
)

type storeAuthorizer interface {
	AssertStorePermission(ctx context.Context, membership *models.VendorMembership, storeID uuid.UUID) (*models.Store, error)
}

// Service is the transactional inventory write path plus scoped reads.
type Service interface {
	CreateItem(ctx context.Context, actor *models.VendorMembership, input CreateItemInput) (*ItemDetail, error)
	UpdateItem(ctx context.Context, actor *models.VendorMembership, itemID uuid.UUID, input UpdateItemInput) (*ItemDetail, error)
	DeleteItem(ctx context.Context, actor *models.VendorMembership, itemID uuid.UUID) error
	TransferStock(ctx context.Context, actor *models.VendorMembership, input TransferStockInput) (*ItemDetail, error)
	GetItem(ctx context.Context, actor *models.VendorMembership, itemID uuid.UUID) (*ItemDetail, error)
	ListItems(ctx context.Context, actor *models.VendorMembership, filters ListFilters) (*ListResult, error)
	SearchItems(ctx context.Context, actor *models.VendorMembership, query string, filters ListFilters) (*ListResult, error)
}

type service struct {
	repo       *Repository
	dbClient   *db.Client
	authorizer storeAuthorizer
	metrics    *metrics.InventoryMetrics
	cfg        config.CatalogConfig
}

// NewService builds the inventory write service.
func NewService(repo *Repository, dbClient *db.Client, authorizer storeAuthorizer, invMetrics *metrics.InventoryMetrics, cfg config.CatalogConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if authorizer == nil {
		return nil, fmt.Errorf("store authorizer required")
	}
	if cfg.MaxGallerySize <= 0 {
		cfg.MaxGallerySize = 6
	}
	if cfg.SearchMinLength <= 0 {
		cfg.SearchMinLength = 2
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 25
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	return &service{
		repo:       repo,
		dbClient:   dbClient,
		authorizer: authorizer,
		metrics:    invMetrics,
		cfg:        cfg,
	}, nil
}

func (s *service) CreateItem(ctx context.Context, actor *models.VendorMembership, input CreateItemInput) (*ItemDetail, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no active membership")
	}
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}
	if err := s.checkProductRef(ctx, input.ProductID); err != nil {
		return nil, err
	}

	store, err := s.authorizer.AssertStorePermission(ctx, actor, input.StoreID)
	if err != nil {
		return nil, err
	}

	status := enums.ItemStatusActive
	if input.Status != nil {
		status = *input.Status
	}

	item := &models.CatalogItem{
		ID:             uuid.New(),
		VendorID:       actor.VendorID,
		StoreID:        store.ID,
		ProductID:      input.ProductID,
		Name:           strings.TrimSpace(input.Name),
		SKU:            strings.TrimSpace(input.SKU),
		Description:    input.Description,
		Condition:      input.Condition,
		Category:       input.Category,
		Status:         status,
		Quantity:       input.Quantity,
		IntakePrice:    input.IntakePrice,
		Price:          input.Price,
		ProjectedPrice: input.ProjectedPrice,
		CreatedByID:    &actor.UserID,
	}
	item.SearchText = buildSearchText(item)

	start := time.Now()
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if err := txRepo.CreateItem(ctx, item); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("sku %q already exists", item.SKU))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
		}

		if input.CardDetails != nil {
			meta := &models.CardMetadata{ID: uuid.New(), ItemID: item.ID}
			applyCardMetadata(meta, input.CardDetails)
			if err := txRepo.CreateCardMetadata(ctx, meta); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create card metadata")
			}
		}

		if input.Media != nil {
			if err := s.syncMedia(ctx, txRepo, item, input.Media); err != nil {
				return err
			}
		}
		if input.Variants != nil {
			if err := s.syncVariants(ctx, txRepo, item.ID, input.Variants); err != nil {
				return err
			}
		}

		if item.Quantity > 0 {
			entry := &models.StockLedger{
				ID:              uuid.New(),
				ItemID:          &item.ID,
				TransactionType: enums.LedgerTransactionTypeAdd,
				QuantityBefore:  0,
				QuantityAfter:   item.Quantity,
				QuantityDelta:   item.Quantity,
				Reason:          strPtr(reasonInitialCreate),
				CreatedByID:     &actor.UserID,
			}
			if err := txRepo.AppendLedger(ctx, entry); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append ledger")
			}
			s.metrics.IncLedgerEntry()
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure("create_item")
		return nil, err
	}
	s.metrics.IncWrite("create_item")
	s.metrics.ObserveDuration("create_item", time.Since(start))

	return s.loadDetail(ctx, item)
}

func (s *service) UpdateItem(ctx context.Context, actor *models.VendorMembership, itemID uuid.UUID, input UpdateItemInput) (*ItemDetail, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no active membership")
	}

	item, err := s.loadScopedItem(ctx, actor, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.AssertStorePermission(ctx, actor, item.StoreID); err != nil {
		return nil, err
	}
	if err := s.checkProductRef(ctx, input.ProductID); err != nil {
		return nil, err
	}

	quantityBefore := item.Quantity
	if err := applyItemPatch(item, input); err != nil {
		return nil, err
	}
	item.SearchText = buildSearchText(item)

	start := time.Now()
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if err := txRepo.SaveItem(ctx, item); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("sku %q already exists", item.SKU))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item")
		}

		if input.CardDetails != nil {
			if err := s.upsertCardMetadata(ctx, txRepo, item.ID, input.CardDetails); err != nil {
				return err
			}
		}
		if input.Media != nil {
			if err := s.syncMedia(ctx, txRepo, item, *input.Media); err != nil {
				return err
			}
		}
		if input.Variants != nil {
			if err := s.syncVariants(ctx, txRepo, item.ID, *input.Variants); err != nil {
				return err
			}
		}

		if item.Quantity != quantityBefore {
			entry := &models.StockLedger{
				ID:              uuid.New(),
				ItemID:          &item.ID,
				TransactionType: enums.LedgerTransactionTypeAdjustment,
				QuantityBefore:  quantityBefore,
				QuantityAfter:   item.Quantity,
				QuantityDelta:   item.Quantity - quantityBefore,
				Reason:          strPtr(reasonManualUpdate),
				CreatedByID:     &actor.UserID,
			}
			if err := txRepo.AppendLedger(ctx, entry); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append ledger")
			}
			s.metrics.IncLedgerEntry()
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure("update_item")
		return nil, err
	}
	s.metrics.IncWrite("update_item")
	s.metrics.ObserveDuration("update_item", time.Since(start))

	return s.loadDetail(ctx, item)
}

func (s *service) DeleteItem(ctx context.Context, actor *models.VendorMembership, itemID uuid.UUID) error {
	if actor == nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "no active membership")
	}

	item, err := s.loadScopedItem(ctx, actor, itemID)
	if err != nil {
		return err
	}
	if _, err := s.authorizer.AssertStorePermission(ctx, actor, item.StoreID); err != nil {
		return err
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).DeleteItem(ctx, item.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete item")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure("delete_item")
		return err
	}
	s.metrics.IncWrite("delete_item")
	return nil
}

func (s *service) TransferStock(ctx context.Context, actor *models.VendorMembership, input TransferStockInput) (*ItemDetail, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no active membership")
	}

	item, err := s.loadScopedItem(ctx, actor, input.ItemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.AssertStorePermission(ctx, actor, item.StoreID); err != nil {
		return nil, err
	}
	toStore, err := s.authorizer.AssertStorePermission(ctx, actor, input.ToStoreID)
	if err != nil {
		return nil, err
	}

	if item.StoreID == toStore.ID {
		return s.loadDetail(ctx, item)
	}

	fromStoreID := item.StoreID
	reason := reasonTransfer
	if input.Reason != nil && strings.TrimSpace(*input.Reason) != "" {
		reason = strings.TrimSpace(*input.Reason)
	}

	start := time.Now()
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		item.StoreID = toStore.ID
		if err := txRepo.SaveItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "move item")
		}

		meta, err := json.Marshal(map[string]string{
			"from_store_id": fromStoreID.String(),
			"to_store_id":   toStore.ID.String(),
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode transfer metadata")
		}

		entry := &models.StockLedger{
			ID:              uuid.New(),
			ItemID:          &item.ID,
			TransactionType: enums.LedgerTransactionTypeTransfer,
			QuantityBefore:  item.Quantity,
			QuantityAfter:   item.Quantity,
			QuantityDelta:   0,
			Reason:          &reason,
			CreatedByID:     &actor.UserID,
			Metadata:        meta,
		}
		if err := txRepo.AppendLedger(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append ledger")
		}
		s.metrics.IncLedgerEntry()
		return nil
	})
	if err != nil {
		s.metrics.IncFailure("transfer_stock")
		return nil, err
	}
	s.metrics.IncWrite("transfer_stock")
	s.metrics.ObserveDuration("transfer_stock", time.Since(start))

	return s.loadDetail(ctx, item)
}

func (s *service) GetItem(ctx context.Context, actor *models.VendorMembership, itemID uuid.UUID) (*ItemDetail, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no active membership")
	}
	item, err := s.loadScopedItem(ctx, actor, itemID)
	if err != nil {
		return nil, err
	}
	return s.loadDetail(ctx, item)
}

// loadScopedItem fetches the item and hides anything outside the actor's
// vendor behind NOT_FOUND.
func (s *service) loadScopedItem(ctx context.Context, actor *models.VendorMembership, itemID uuid.UUID) (*models.CatalogItem, error) {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	if item.VendorID != actor.VendorID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return item, nil
}

// checkProductRef rejects writes pointing at a sealed-product row that does
// not exist, so the failure surfaces as input validation instead of a
// foreign-key error from the driver.
func (s *service) checkProductRef(ctx context.Context, productID *uuid.UUID) error {
	if productID == nil {
		return nil
	}
	if _, err := s.repo.FindProductByID(ctx, *productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown product reference")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return nil
}

func (s *service) loadDetail(ctx context.Context, item *models.CatalogItem) (*ItemDetail, error) {
	detail := &ItemDetail{Item: *item}

	meta, err := s.repo.FindCardMetadataByItem(ctx, item.ID)
	if err == nil {
		detail.CardMetadata = meta
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load card metadata")
	}

	media, err := s.repo.ListMediaByItem(ctx, item.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load media")
	}
	detail.Media = media

	variants, err := s.repo.ListVariantsByItem(ctx, item.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variants")
	}
	detail.Variants = variants

	return detail, nil
}

// syncMedia replaces the gallery wholesale and keeps the primary invariant:
// after a non-empty sync exactly one row is primary and item.image_url mirrors
// it; after an empty sync no rows remain and image_url is cleared.
func (s *service) syncMedia(ctx context.Context, txRepo *Repository, item *models.CatalogItem, payloads []MediaInput) error {
	if len(payloads) > s.cfg.MaxGallerySize {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("a maximum of %d images are allowed per item", s.cfg.MaxGallerySize))
	}

	if err := txRepo.DeleteMediaByItem(ctx, item.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear media")
	}

	if len(payloads) == 0 {
		item.ImageURL = nil
		if err := txRepo.SaveItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear image url")
		}
		return nil
	}

	rows := make([]models.CatalogMedia, 0, len(payloads))
	for idx, payload := range payloads {
		if err := validateImageURL(payload.URL); err != nil {
			return err
		}
		mediaType := enums.MediaTypeGallery
		if payload.MediaType != nil {
			if !payload.MediaType.IsValid() {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported media type %q", *payload.MediaType))
			}
			mediaType = *payload.MediaType
		}
		sortOrder := idx
		if payload.SortOrder != nil {
			sortOrder = *payload.SortOrder
		}
		rows = append(rows, models.CatalogMedia{
			ID:        uuid.New(),
			ItemID:    item.ID,
			URL:       payload.URL,
			MediaType: mediaType,
			SortOrder: sortOrder,
			IsPrimary: payload.IsPrimary,
			Width:     payload.Width,
			Height:    payload.Height,
			SizeKB:    payload.SizeKB,
			Metadata:  payload.Metadata,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].SortOrder < rows[j].SortOrder })

	primaryIdx := -1
	for i := range rows {
		if rows[i].IsPrimary {
			if primaryIdx == -1 {
				primaryIdx = i
			} else {
				rows[i].IsPrimary = false
			}
		}
	}
	if primaryIdx == -1 {
		rows[0].IsPrimary = true
		primaryIdx = 0
	}

	if err := txRepo.CreateMedia(ctx, rows); err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate media sort order")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create media")
	}

	item.ImageURL = &rows[primaryIdx].URL
	if err := txRepo.SaveItem(ctx, item); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mirror image url")
	}
	return nil
}

// syncVariants replaces variants wholesale. An empty slice removes all
// variants; duplicate (condition, grade) pairs are rejected up front.
func (s *service) syncVariants(ctx context.Context, txRepo *Repository, itemID uuid.UUID, payloads []VariantInput) error {
	seen := make(map[string]struct{}, len(payloads))
	for _, payload := range payloads {
		if payload.Quantity < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant quantity cannot be negative")
		}
		key := payload.Condition + "\x00" + payload.Grade
		if _, dup := seen[key]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("duplicate variant (%s, %s)", payload.Condition, payload.Grade))
		}
		seen[key] = struct{}{}
	}

	if err := txRepo.DeleteVariantsByItem(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear variants")
	}
	if len(payloads) == 0 {
		return nil
	}

	rows := make([]models.CatalogVariant, 0, len(payloads))
	for _, payload := range payloads {
		rows = append(rows, models.CatalogVariant{
			ID:              uuid.New(),
			ItemID:          itemID,
			Condition:       payload.Condition,
			Grade:           payload.Grade,
			Quantity:        payload.Quantity,
			PriceAdjustment: payload.PriceAdjustment,
		})
	}
	if err := txRepo.CreateVariants(ctx, rows); err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.New(pkgerrors.CodeConflict, "variant already exists")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create variants")
	}
	return nil
}

func (s *service) upsertCardMetadata(ctx context.Context, txRepo *Repository, itemID uuid.UUID, input *CardMetadataInput) error {
	meta, err := txRepo.FindCardMetadataByItem(ctx, itemID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load card metadata")
		}
		meta = &models.CardMetadata{ID: uuid.New(), ItemID: itemID}
		applyCardMetadata(meta, input)
		if err := txRepo.CreateCardMetadata(ctx, meta); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create card metadata")
		}
		return nil
	}

	applyCardMetadata(meta, input)
	if err := txRepo.SaveCardMetadata(ctx, meta); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update card metadata")
	}
	return nil
}

func applyCardMetadata(meta *models.CardMetadata, input *CardMetadataInput) {
	if input.PSAGrade != nil {
		meta.PSAGrade = input.PSAGrade
	}
	if input.Condition != nil {
		meta.Condition = input.Condition
	}
	if input.ExternalIDs != nil {
		meta.ExternalIDs = input.ExternalIDs
	}
	if input.LastEstimatedAt != nil {
		meta.LastEstimatedAt = input.LastEstimatedAt
	}
	if input.Language != nil {
		meta.Language = input.Language
	}
	if input.ReleaseDate != nil {
		meta.ReleaseDate = input.ReleaseDate
	}
	if input.PrintRun != nil {
		meta.PrintRun = input.PrintRun
	}
	if input.MarketRegion != nil {
		meta.MarketRegion = input.MarketRegion
	}
	if input.Notes != nil {
		meta.Notes = input.Notes
	}
	if input.SetName != nil {
		meta.SetName = input.SetName
	}
	if input.CardNumber != nil {
		meta.CardNumber = input.CardNumber
	}
	if input.Rarity != nil {
		meta.Rarity = input.Rarity
	}
	if input.Finish != nil {
		meta.Finish = input.Finish
	}
}

func validateCreateInput(input CreateItemInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if strings.TrimSpace(input.SKU) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if input.Quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if input.IntakePrice.IsNegative() || input.Price.IsNegative() || input.ProjectedPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "prices cannot be negative")
	}
	if input.Category != nil && !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid category %q", *input.Category))
	}
	if input.Status != nil && !input.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", *input.Status))
	}
	return nil
}

func applyItemPatch(item *models.CatalogItem, input UpdateItemInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "item name cannot be empty")
		}
		item.Name = name
	}
	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "sku cannot be empty")
		}
		item.SKU = sku
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.Condition != nil {
		item.Condition = input.Condition
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid category %q", *input.Category))
		}
		item.Category = input.Category
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", *input.Status))
		}
		item.Status = *input.Status
	}
	if input.ProductID != nil {
		item.ProductID = input.ProductID
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
		}
		item.Quantity = *input.Quantity
	}
	if input.IntakePrice != nil {
		if input.IntakePrice.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "intake price cannot be negative")
		}
		item.IntakePrice = *input.IntakePrice
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		item.Price = *input.Price
	}
	if input.ProjectedPrice != nil {
		if input.ProjectedPrice.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "projected price cannot be negative")
		}
		item.ProjectedPrice = *input.ProjectedPrice
	}
	return nil
}

// buildSearchText denormalizes the fields free-text search matches against.
func buildSearchText(item *models.CatalogItem) string {
	parts := []string{item.Name, item.SKU}
	if item.Description != nil {
		parts = append(parts, *item.Description)
	}
	if item.Category != nil {
		parts = append(parts, string(*item.Category))
	}
	filtered := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			filtered = append(filtered, p)
		}
	}
	return strings.Join(filtered, " ")
}

func validateImageURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid image URL")
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}
