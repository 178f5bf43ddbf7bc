package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnistock/omnistock-backend/pkg/db/models"
)

// Repository wires together all catalog persistence helpers. Listing entry
// points take the vendor id as a mandatory argument so an unscoped query is
// structurally impossible.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateItem inserts a new catalog item row.
func (r *Repository) CreateItem(ctx context.Context, item *models.CatalogItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// SaveItem persists item field changes.
func (r *Repository) SaveItem(ctx context.Context, item *models.CatalogItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// FindItemByID loads an item by primary key without satellites.
func (r *Repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes the item row. Ledger rows are detached first so the
// audit trail survives the delete on every driver.
func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Model(&models.StockLedger{}).
		Where("item_id = ?", id).
		Update("item_id", nil).Error; err != nil {
		return err
	}
	if err := tx.Where("item_id = ?", id).Delete(&models.CatalogVariant{}).Error; err != nil {
		return err
	}
	if err := tx.Where("item_id = ?", id).Delete(&models.CatalogMedia{}).Error; err != nil {
		return err
	}
	if err := tx.Where("item_id = ?", id).Delete(&models.CardMetadata{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&models.CatalogItem{}).Error
}

// DeleteMediaByItem removes every gallery row for the item.
func (r *Repository) DeleteMediaByItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Delete(&models.CatalogMedia{}).Error
}

// CreateMedia bulk-inserts gallery rows.
func (r *Repository) CreateMedia(ctx context.Context, rows []models.CatalogMedia) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// ListMediaByItem returns the gallery ordered by (sort_order, id).
func (r *Repository) ListMediaByItem(ctx context.Context, itemID uuid.UUID) ([]models.CatalogMedia, error) {
	var rows []models.CatalogMedia
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("sort_order, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteVariantsByItem removes every variant row for the item.
func (r *Repository) DeleteVariantsByItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Delete(&models.CatalogVariant{}).Error
}

// CreateVariants bulk-inserts variant rows.
func (r *Repository) CreateVariants(ctx context.Context, rows []models.CatalogVariant) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// ListVariantsByItem returns variants ordered by (condition, grade).
func (r *Repository) ListVariantsByItem(ctx context.Context, itemID uuid.UUID) ([]models.CatalogVariant, error) {
	var rows []models.CatalogVariant
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("condition, grade").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindProductByID loads a sealed-product reference row.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindCardMetadataByItem loads the optional 1:1 card attributes.
func (r *Repository) FindCardMetadataByItem(ctx context.Context, itemID uuid.UUID) (*models.CardMetadata, error) {
	var meta models.CardMetadata
	if err := r.db.WithContext(ctx).First(&meta, "item_id = ?", itemID).Error; err != nil {
		return nil, err
	}
	return &meta, nil
}

// CreateCardMetadata inserts the card attributes row.
func (r *Repository) CreateCardMetadata(ctx context.Context, meta *models.CardMetadata) error {
	return r.db.WithContext(ctx).Create(meta).Error
}

// SaveCardMetadata persists card attribute changes.
func (r *Repository) SaveCardMetadata(ctx context.Context, meta *models.CardMetadata) error {
	return r.db.WithContext(ctx).Save(meta).Error
}

// AppendLedger inserts an immutable stock ledger row.
func (r *Repository) AppendLedger(ctx context.Context, entry *models.StockLedger) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListLedgerByItem returns the item's ledger rows, oldest first.
func (r *Repository) ListLedgerByItem(ctx context.Context, itemID uuid.UUID) ([]models.StockLedger, error) {
	var rows []models.StockLedger
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
