package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/omnistock/omnistock-backend/internal/authz"
	"github.com/omnistock/omnistock-backend/internal/memberships"
	"github.com/omnistock/omnistock-backend/internal/tenants"
	"github.com/omnistock/omnistock-backend/pkg/config"
	"github.com/omnistock/omnistock-backend/pkg/db"
	"github.com/omnistock/omnistock-backend/pkg/db/models"
	"github.com/omnistock/omnistock-backend/pkg/enums"
	pkgerrors "github.com/omnistock/omnistock-backend/pkg/errors"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	vendors := `
CREATE TABLE IF NOT EXISTS vendors (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT,
  contact_info TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	stores := `
CREATE TABLE IF NOT EXISTS stores (
  id TEXT PRIMARY KEY,
  vendor_id TEXT NOT NULL,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  type TEXT,
  description TEXT,
  address TEXT,
  logo_url TEXT,
  banner_url TEXT,
  currency TEXT NOT NULL DEFAULT 'USD',
  default_tax_rate NUMERIC NOT NULL DEFAULT 0,
  metadata TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (vendor_id, slug)
);`
	membershipsDDL := `
CREATE TABLE IF NOT EXISTS vendor_memberships (
  id TEXT PRIMARY KEY,
  vendor_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  role TEXT NOT NULL,
  title TEXT,
  invite_status TEXT NOT NULL DEFAULT 'pending',
  invite_code TEXT,
  invited_by_user_id TEXT,
  invited_at DATETIME,
  responded_at DATETIME,
  revoked_at DATETIME,
  is_active INTEGER NOT NULL DEFAULT 0,
  is_primary INTEGER NOT NULL DEFAULT 0,
  active_store_id TEXT,
  metadata TEXT,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (vendor_id, user_id)
);`
	storeAccess := `
CREATE TABLE IF NOT EXISTS store_access (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  membership_id TEXT NOT NULL,
  role TEXT NOT NULL,
  permissions TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (store_id, membership_id)
);`
	items := `
CREATE TABLE IF NOT EXISTS catalog_items (
  id TEXT PRIMARY KEY,
  vendor_id TEXT NOT NULL,
  store_id TEXT NOT NULL,
  product_id TEXT,
  name TEXT NOT NULL,
  sku TEXT NOT NULL UNIQUE,
  description TEXT,
  search_text TEXT NOT NULL DEFAULT '',
  condition TEXT,
  category TEXT,
  status TEXT NOT NULL DEFAULT 'active',
  image_url TEXT,
  quantity INTEGER NOT NULL DEFAULT 0,
  intake_price NUMERIC NOT NULL DEFAULT 0,
  price NUMERIC NOT NULL DEFAULT 0,
  projected_price NUMERIC NOT NULL DEFAULT 0,
  created_by_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	cardMetadata := `
CREATE TABLE IF NOT EXISTS card_metadata (
  id TEXT PRIMARY KEY,
  item_id TEXT NOT NULL UNIQUE,
  psa_grade NUMERIC,
  condition TEXT,
  external_ids TEXT,
  last_estimated_at DATETIME,
  language TEXT,
  release_date DATETIME,
  print_run TEXT,
  market_region TEXT,
  notes TEXT,
  set_name TEXT,
  card_number TEXT,
  rarity TEXT,
  finish TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	media := `
CREATE TABLE IF NOT EXISTS catalog_media (
  id TEXT PRIMARY KEY,
  item_id TEXT NOT NULL,
  url TEXT NOT NULL,
  media_type TEXT NOT NULL DEFAULT 'gallery',
  sort_order INTEGER NOT NULL DEFAULT 0,
  is_primary INTEGER NOT NULL DEFAULT 0,
  width INTEGER,
  height INTEGER,
  size_kb INTEGER,
  metadata TEXT,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (item_id, sort_order)
);`
	variants := `
CREATE TABLE IF NOT EXISTS catalog_variants (
  id TEXT PRIMARY KEY,
  item_id TEXT NOT NULL,
  condition TEXT NOT NULL DEFAULT '',
  grade TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL DEFAULT 0,
  price_adjustment NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (item_id, condition, grade)
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  release_date DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	ledger := `
CREATE TABLE IF NOT EXISTS stock_ledger (
  id TEXT PRIMARY KEY,
  item_id TEXT,
  transaction_type TEXT NOT NULL,
  quantity_before INTEGER NOT NULL,
  quantity_after INTEGER NOT NULL,
  quantity_delta INTEGER NOT NULL,
  reason TEXT,
  created_by_id TEXT,
  metadata TEXT,
  created_at DATETIME
);`
	for _, ddl := range []string{vendors, stores, membershipsDDL, storeAccess, products, items, cardMetadata, media, variants, ledger} {
		require.NoError(t, conn.Exec(ddl).Error)
	}
	return conn
}

func newCatalogService(t *testing.T, conn *gorm.DB) (Service, *Repository) {
	t.Helper()

	client := db.FromConn(conn)
	tenantsService, err := tenants.NewService(tenants.NewRepository(conn), client)
	require.NoError(t, err)
	resolver, err := authz.NewResolver(memberships.NewRepository(conn), tenantsService, false)
	require.NoError(t, err)

	repo := NewRepository(conn)
	svc, err := NewService(repo, client, resolver, nil, config.CatalogConfig{})
	require.NoError(t, err)
	return svc, repo
}

func newVendor(t *testing.T, conn *gorm.DB, name string) *models.Vendor {
	t.Helper()

	vendor := &models.Vendor{
		ID:       uuid.New(),
		Name:     name,
		Slug:     "v-" + uuid.NewString(),
		IsActive: true,
	}
	require.NoError(t, conn.Create(vendor).Error)
	return vendor
}

func newVendorStore(t *testing.T, conn *gorm.DB, vendorID uuid.UUID, name string) *models.Store {
	t.Helper()

	store := &models.Store{
		ID:       uuid.New(),
		VendorID: vendorID,
		Name:     name,
		Slug:     "s-" + uuid.NewString(),
		Currency: "USD",
		IsActive: true,
	}
	require.NoError(t, conn.Create(store).Error)
	return store
}

func newActor(t *testing.T, conn *gorm.DB, vendorID uuid.UUID, role enums.MemberRole) *models.VendorMembership {
	t.Helper()

	membership := &models.VendorMembership{
		ID:           uuid.New(),
		VendorID:     vendorID,
		UserID:       uuid.New(),
		Role:         role,
		InviteStatus: enums.InviteStatusAccepted,
		IsActive:     true,
		IsPrimary:    true,
	}
	require.NoError(t, conn.Create(membership).Error)
	return membership
}

func sku() string {
	return "SKU-" + uuid.NewString()
}

func TestServiceCreateItem_ledgerAndPrimaryMirror(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newCatalogService(t, conn)

	vendor := newVendor(t, conn, "Ledger Vendor")
	store := newVendorStore(t, conn, vendor.ID, "Main")
	actor := newActor(t, conn, vendor.ID, enums.MemberRoleOwner)

	language := "en"
	detail, err := svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID:     store.ID,
		Name:        "Charizard Holo",
		SKU:         sku(),
		Quantity:    3,
		IntakePrice: decimal.NewFromInt(120),
		Price:       decimal.NewFromInt(250),
		CardDetails: &CardMetadataInput{Language: &language},
		Media: []MediaInput{
			{URL: "https://img.example.com/front.jpg"},
			{URL: "https://img.example.com/back.jpg", IsPrimary: true},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, detail.CardMetadata)
	assert.Equal(t, "en", *detail.CardMetadata.Language)

	require.Len(t, detail.Media, 2)
	primaries := 0
	for _, row := range detail.Media {
		if row.IsPrimary {
			primaries++
			require.NotNil(t, detail.Item.ImageURL)
			assert.Equal(t, row.URL, *detail.Item.ImageURL)
		}
	}
	assert.Equal(t, 1, primaries)
	assert.Equal(t, "https://img.example.com/back.jpg", *detail.Item.ImageURL)

	var entries []models.StockLedger
	require.NoError(t, conn.Find(&entries, "item_id = ?", detail.Item.ID).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, enums.LedgerTransactionTypeAdd, entries[0].TransactionType)
	assert.Equal(t, 0, entries[0].QuantityBefore)
	assert.Equal(t, 3, entries[0].QuantityAfter)
	assert.Equal(t, 3, entries[0].QuantityDelta)
	require.NotNil(t, entries[0].Reason)
	assert.Equal(t, "initial_create", *entries[0].Reason)
}

func TestServiceCreateItem_zeroQuantitySkipsLedger(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newCatalogService(t, conn)

	vendor := newVendor(t, conn, "Zero Qty Vendor")
	store := newVendorStore(t, conn, vendor.ID, "Main")
	actor := newActor(t, conn, vendor.ID, enums.MemberRoleOwner)

	detail, err := svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID: store.ID,
		Name:    "Empty Box",
		SKU:     sku(),
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, conn.Model(&models.StockLedger{}).Where("item_id = ?", detail.Item.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestServiceCreateItem_noPrimaryFlagPromotesFirst(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newCatalogService(t, conn)

	vendor := newVendor(t, conn, "Promote Vendor")
	store := newVendorStore(t, conn, vendor.ID, "Main")
	actor := newActor(t, conn, vendor.ID, enums.MemberRoleOwner)

	detail, err := svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID: store.ID,
		Name:    "Sleeved Deck",
		SKU:     sku(),
		Media: []MediaInput{
			{URL: "https://img.example.com/a.jpg"},
			{URL: "https://img.example.com/b.jpg"},
		},
	})
	require.NoError(t, err)

	require.Len(t, detail.Media, 2)
	assert.True(t, detail.Media[0].IsPrimary)
	assert.False(t, detail.Media[1].IsPrimary)
	require.NotNil(t, detail.Item.ImageURL)
	assert.Equal(t, "https://img.example.com/a.jpg", *detail.Item.ImageURL)
}

func TestServiceCreateItem_oversizedGalleryRollsBack(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newCatalogService(t, conn)

	vendor := newVendor(t, conn, "Rollback Vendor")
	store := newVendorStore(t, conn, vendor.ID, "Main")
	actor := newActor(t, conn, vendor.ID, enums.MemberRoleOwner)

	media := make([]MediaInput, 7)
	for i := range media {
		media[i] = MediaInput{URL: "https://img.example.com/over.jpg"}
	}

	itemSKU := sku()
	_, err := svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID:  store.ID,
		Name:     "Overloaded",
		SKU:      itemSKU,
		Quantity: 2,
		Media:    media,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	var count int64
	require.NoError(t, conn.Model(&models.CatalogItem{}).Where("sku = ?", itemSKU).Count(&count).Error)
	assert.Zero(t, count, "failed create must not leave a partial item behind")
}

func TestServiceCreateItem_duplicateSKUConflicts(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newCatalogService(t, conn)

	vendor := newVendor(t, conn, "SKU Vendor")
	store := newVendorStore(t, conn, vendor.ID, "Main")
	actor := newActor(t, conn, vendor.ID, enums.MemberRoleOwner)

	itemSKU := sku()
	_, err := svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID: store.ID,
		Name:    "First",
		SKU:     itemSKU,
	})
	require.NoError(t, err)

	_, err = svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID: store.ID,
		Name:    "Second",
		SKU:     itemSKU,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestServiceCreateItem_productReference(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newCatalogService(t, conn)

	vendor := newVendor(t, conn, "Product Ref Vendor")
	store := newVendorStore(t, conn, vendor.ID, "Main")
	actor := newActor(t, conn, vendor.ID, enums.MemberRoleOwner)

	product := &models.Product{
		ID:   uuid.New(),
		Name: "Base Set Booster Box",
		Type: enums.ProductTypeBoosterBox,
	}
	require.NoError(t, conn.Create(product).Error)

	detail, err := svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID:   store.ID,
		Name:      "Sealed Booster Box",
		SKU:       sku(),
		ProductID: &product.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, detail.Item.ProductID)
	assert.Equal(t, product.ID, *detail.Item.ProductID)

	bogus := uuid.New()
	_, err = svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID:   store.ID,
		Name:      "Dangling Reference",
		SKU:       sku(),
		ProductID: &bogus,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceUpdateItem_quantityChangeAppendsAdjustment(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newCatalogService(t, conn)

	vendor := newVendor(t, conn, "Adjust Vendor")
	store := newVendorStore(t, conn, vendor.ID, "Main")
	actor := newActor(t, conn, vendor.ID, enums.MemberRoleOwner)

	detail, err := svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID:  store.ID,
		Name:     "Booster Box",
		SKU:      sku(),
		Quantity: 3,
	})
	require.NoError(t, err)

	five := 5
	updated, err := svc.UpdateItem(context.Background(), actor, detail.Item.ID, UpdateItemInput{Quantity: &five})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Item.Quantity)

	var entries []models.StockLedger
	require.NoError(t, conn.Order("created_at").Find(&entries, "item_id = ?", detail.Item.ID).Error)
	require.Len(t, entries, 2)
	adjustment := entries[1]
	assert.Equal(t, enums.LedgerTransactionTypeAdjustment, adjustment.TransactionType)
	assert.Equal(t, 3, adjustment.QuantityBefore)
	assert.Equal(t, 5, adjustment.QuantityAfter)
	assert.Equal(t, 2, adjustment.QuantityDelta)
	require.NotNil(t, adjustment.Reason)
	assert.Equal(t, "manual_update", *adjustment.Reason)

	// a non-quantity patch must not grow the ledger
	name := "Booster Box (sealed)"
	_, err = svc.UpdateItem(context.Background(), actor, detail.Item.ID, UpdateItemInput{Name: &name})
	require.NoError(t, err)

	var count int64
	require.NoError(t, conn.Model(&models.StockLedger{}).Where("item_id = ?", detail.Item.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestServiceUpdateItem_emptyMediaClearsGallery(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newCatalogService(t, conn)

	vendor := newVendor(t, conn, "Clear Vendor")
	store := newVendorStore(t, conn, vendor.ID, "Main")
	actor := newActor(t, conn, vendor.ID, enums.MemberRoleOwner)

	detail, err := svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID: store.ID,
		Name:    "Pictured Item",
		SKU:     sku(),
		Media:   []MediaInput{{URL: "https://img.example.com/only.jpg"}},
	})
	require.NoError(t, err)
	require.NotNil(t, detail.Item.ImageURL)

	empty := []MediaInput{}
	updated, err := svc.UpdateItem(context.Background(), actor, detail.Item.ID, UpdateItemInput{Media: &empty})
	require.NoError(t, err)

	assert.Empty(t, updated.Media)
	assert.Nil(t, updated.Item.ImageURL)

	var count int64
	require.NoError(t, conn.Model(&models.CatalogMedia{}).Where("item_id = ?", detail.Item.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestServiceUpdateItem_variantSync(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newCatalogService(t, conn)

	vendor := newVendor(t, conn, "Variant Vendor")
	store := newVendorStore(t, conn, vendor.ID, "Main")
	actor := newActor(t, conn, vendor.ID, enums.MemberRoleOwner)

	detail, err := svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID: store.ID,
		Name:    "Graded Card",
		SKU:     sku(),
		Variants: []VariantInput{
			{Condition: "NM", Grade: "PSA 9", Quantity: 2},
			{Condition: "LP", Grade: "", Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, detail.Variants, 2)

	dup := []VariantInput{
		{Condition: "NM", Grade: "PSA 9", Quantity: 1},
		{Condition: "NM", Grade: "PSA 9", Quantity: 4},
	}
	_, err = svc.UpdateItem(context.Background(), actor, detail.Item.ID, UpdateItemInput{Variants: &dup})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	// the failed sync must leave the old variants intact
	var count int64
	require.NoError(t, conn.Model(&models.CatalogVariant{}).Where("item_id = ?", detail.Item.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	empty := []VariantInput{}
	updated, err := svc.UpdateItem(context.Background(), actor, detail.Item.ID, UpdateItemInput{Variants: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Variants)
}

func TestServiceTransferStock_roundTrip(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newCatalogService(t, conn)

	vendor := newVendor(t, conn, "Transfer Vendor")
	storeA := newVendorStore(t, conn, vendor.ID, "Front")
	storeB := newVendorStore(t, conn, vendor.ID, "Back")
	actor := newActor(t, conn, vendor.ID, enums.MemberRoleOwner)

	detail, err := svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID:  storeA.ID,
		Name:     "Display Case",
		SKU:      sku(),
		Quantity: 4,
	})
	require.NoError(t, err)

	moved, err := svc.TransferStock(context.Background(), actor, TransferStockInput{
		ItemID:    detail.Item.ID,
		ToStoreID: storeB.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, storeB.ID, moved.Item.StoreID)
	assert.Equal(t, 4, moved.Item.Quantity)

	back, err := svc.TransferStock(context.Background(), actor, TransferStockInput{
		ItemID:    detail.Item.ID,
		ToStoreID: storeA.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, storeA.ID, back.Item.StoreID)

	var entries []models.StockLedger
	require.NoError(t, conn.Order("created_at").
		Find(&entries, "item_id = ? AND transaction_type = ?", detail.Item.ID, enums.LedgerTransactionTypeTransfer).Error)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, 0, entry.QuantityDelta)
		assert.Equal(t, 4, entry.QuantityBefore)
		assert.Equal(t, 4, entry.QuantityAfter)
		assert.Contains(t, string(entry.Metadata), "from_store_id")
		assert.Contains(t, string(entry.Metadata), "to_store_id")
	}

	// moving to the current store is a no-op
	same, err := svc.TransferStock(context.Background(), actor, TransferStockInput{
		ItemID:    detail.Item.ID,
		ToStoreID: storeA.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, storeA.ID, same.Item.StoreID)

	var count int64
	require.NoError(t, conn.Model(&models.StockLedger{}).
		Where("item_id = ? AND transaction_type = ?", detail.Item.ID, enums.LedgerTransactionTypeTransfer).
		Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestServiceTransferStock_crossVendorStoreHidden(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newCatalogService(t, conn)

	vendor := newVendor(t, conn, "Own Vendor")
	other := newVendor(t, conn, "Other Vendor")
	storeA := newVendorStore(t, conn, vendor.ID, "Mine")
	foreign := newVendorStore(t, conn, other.ID, "Theirs")
	actor := newActor(t, conn, vendor.ID, enums.MemberRoleOwner)

	detail, err := svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID:  storeA.ID,
		Name:     "Stay Put",
		SKU:      sku(),
		Quantity: 1,
	})
	require.NoError(t, err)

	_, err = svc.TransferStock(context.Background(), actor, TransferStockInput{
		ItemID:    detail.Item.ID,
		ToStoreID: foreign.ID,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceGetItem_crossVendorHidden(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newCatalogService(t, conn)

	vendor := newVendor(t, conn, "Owner Vendor")
	intruderVendor := newVendor(t, conn, "Intruder Vendor")
	store := newVendorStore(t, conn, vendor.ID, "Main")
	owner := newActor(t, conn, vendor.ID, enums.MemberRoleOwner)
	intruder := newActor(t, conn, intruderVendor.ID, enums.MemberRoleOwner)

	detail, err := svc.CreateItem(context.Background(), owner, CreateItemInput{
		StoreID: store.ID,
		Name:    "Secret Item",
		SKU:     sku(),
	})
	require.NoError(t, err)

	_, err = svc.GetItem(context.Background(), intruder, detail.Item.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceDeleteItem_detachesLedger(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newCatalogService(t, conn)

	vendor := newVendor(t, conn, "Delete Vendor")
	store := newVendorStore(t, conn, vendor.ID, "Main")
	actor := newActor(t, conn, vendor.ID, enums.MemberRoleOwner)

	detail, err := svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID:  store.ID,
		Name:     "Doomed Item",
		SKU:      sku(),
		Quantity: 2,
		Media:    []MediaInput{{URL: "https://img.example.com/doomed.jpg"}},
		Variants: []VariantInput{{Condition: "NM", Grade: "", Quantity: 2}},
	})
	require.NoError(t, err)

	ledgerID := func() uuid.UUID {
		var entry models.StockLedger
		require.NoError(t, conn.First(&entry, "item_id = ?", detail.Item.ID).Error)
		return entry.ID
	}()

	require.NoError(t, svc.DeleteItem(context.Background(), actor, detail.Item.ID))

	var count int64
	require.NoError(t, conn.Model(&models.CatalogItem{}).Where("id = ?", detail.Item.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, conn.Model(&models.CatalogMedia{}).Where("item_id = ?", detail.Item.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, conn.Model(&models.CatalogVariant{}).Where("item_id = ?", detail.Item.ID).Count(&count).Error)
	assert.Zero(t, count)

	var survivor models.StockLedger
	require.NoError(t, conn.First(&survivor, "id = ?", ledgerID).Error)
	assert.Nil(t, survivor.ItemID, "audit history must survive the item with a detached pointer")
}
