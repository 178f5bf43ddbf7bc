package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnistock/omnistock-backend/pkg/enums"
)

func TestServiceListItems_scopesAndFilters(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newCatalogService(t, conn)

	vendor := newVendor(t, conn, "List Vendor")
	other := newVendor(t, conn, "List Outsider")
	storeA := newVendorStore(t, conn, vendor.ID, "Front")
	storeB := newVendorStore(t, conn, vendor.ID, "Back")
	foreign := newVendorStore(t, conn, other.ID, "Elsewhere")
	actor := newActor(t, conn, vendor.ID, enums.MemberRoleOwner)
	outsider := newActor(t, conn, other.ID, enums.MemberRoleOwner)

	pokemon := enums.ItemCategoryPokemonCard
	archived := enums.ItemStatusArchived

	_, err := svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID:  storeA.ID,
		Name:     "Pikachu Promo",
		SKU:      sku(),
		Category: &pokemon,
		Quantity: 1,
	})
	require.NoError(t, err)
	_, err = svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID:  storeB.ID,
		Name:     "Old Stock",
		SKU:      sku(),
		Status:   &archived,
		Quantity: 1,
	})
	require.NoError(t, err)
	_, err = svc.CreateItem(context.Background(), outsider, CreateItemInput{
		StoreID: foreign.ID,
		Name:    "Foreign Item",
		SKU:     sku(),
	})
	require.NoError(t, err)

	// the actor only ever sees their own vendor's rows
	all, err := svc.ListItems(context.Background(), actor, ListFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
	for _, item := range all.Items {
		assert.Equal(t, vendor.ID, item.VendorID)
	}

	byStore, err := svc.ListItems(context.Background(), actor, ListFilters{StoreID: &storeA.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), byStore.Total)
	assert.Equal(t, "Pikachu Promo", byStore.Items[0].Name)

	byCategory, err := svc.ListItems(context.Background(), actor, ListFilters{Category: &pokemon})
	require.NoError(t, err)
	require.Equal(t, int64(1), byCategory.Total)
	assert.Equal(t, "Pikachu Promo", byCategory.Items[0].Name)

	byStatus, err := svc.ListItems(context.Background(), actor, ListFilters{Status: &archived})
	require.NoError(t, err)
	require.Equal(t, int64(1), byStatus.Total)
	assert.Equal(t, "Old Stock", byStatus.Items[0].Name)
}

func TestServiceListItems_cardMetadataFilters(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newCatalogService(t, conn)

	vendor := newVendor(t, conn, "Card Filter Vendor")
	store := newVendorStore(t, conn, vendor.ID, "Main")
	actor := newActor(t, conn, vendor.ID, enums.MemberRoleOwner)

	english := "en"
	japanese := "jp"
	region := "NA"

	_, err := svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID:     store.ID,
		Name:        "English Card",
		SKU:         sku(),
		CardDetails: &CardMetadataInput{Language: &english, MarketRegion: &region},
	})
	require.NoError(t, err)
	_, err = svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID:     store.ID,
		Name:        "Japanese Card",
		SKU:         sku(),
		CardDetails: &CardMetadataInput{Language: &japanese},
	})
	require.NoError(t, err)
	_, err = svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID: store.ID,
		Name:    "No Metadata",
		SKU:     sku(),
	})
	require.NoError(t, err)

	upper := "EN"
	byLanguage, err := svc.ListItems(context.Background(), actor, ListFilters{Language: &upper})
	require.NoError(t, err)
	require.Equal(t, int64(1), byLanguage.Total)
	assert.Equal(t, "English Card", byLanguage.Items[0].Name)

	lowerRegion := "na"
	byRegion, err := svc.ListItems(context.Background(), actor, ListFilters{MarketRegion: &lowerRegion})
	require.NoError(t, err)
	require.Equal(t, int64(1), byRegion.Total)
	assert.Equal(t, "English Card", byRegion.Items[0].Name)
}

func TestServiceListItems_sortingAndPagination(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newCatalogService(t, conn)

	vendor := newVendor(t, conn, "Sort Vendor")
	store := newVendorStore(t, conn, vendor.ID, "Main")
	actor := newActor(t, conn, vendor.ID, enums.MemberRoleOwner)

	for _, row := range []struct {
		name  string
		price int64
	}{
		{"Alpha", 30},
		{"Bravo", 10},
		{"Charlie", 20},
	} {
		_, err := svc.CreateItem(context.Background(), actor, CreateItemInput{
			StoreID: store.ID,
			Name:    row.name,
			SKU:     sku(),
			Price:   decimal.NewFromInt(row.price),
		})
		require.NoError(t, err)
	}

	byName, err := svc.ListItems(context.Background(), actor, ListFilters{SortBy: "name", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, byName.Items, 3)
	assert.Equal(t, "Alpha", byName.Items[0].Name)
	assert.Equal(t, "Charlie", byName.Items[2].Name)

	byPrice, err := svc.ListItems(context.Background(), actor, ListFilters{SortBy: "price", SortOrder: "desc"})
	require.NoError(t, err)
	require.Len(t, byPrice.Items, 3)
	assert.Equal(t, "Alpha", byPrice.Items[0].Name)
	assert.Equal(t, "Bravo", byPrice.Items[2].Name)

	// unknown sort fields fall back instead of erroring
	fallback, err := svc.ListItems(context.Background(), actor, ListFilters{SortBy: "sku; DROP TABLE catalog_items"})
	require.NoError(t, err)
	assert.Len(t, fallback.Items, 3)

	paged, err := svc.ListItems(context.Background(), actor, ListFilters{SortBy: "name", SortOrder: "asc", Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), paged.Total)
	assert.Equal(t, 2, paged.Page)
	require.Len(t, paged.Items, 1)
	assert.Equal(t, "Charlie", paged.Items[0].Name)

	clamped, err := svc.ListItems(context.Background(), actor, ListFilters{PageSize: 10_000})
	require.NoError(t, err)
	assert.Equal(t, 100, clamped.PageSize)
}

func TestServiceSearchItems(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, _ := newCatalogService(t, conn)

	vendor := newVendor(t, conn, "Search Vendor")
	store := newVendorStore(t, conn, vendor.ID, "Main")
	actor := newActor(t, conn, vendor.ID, enums.MemberRoleOwner)

	description := "first edition shadowless print"
	exactSKU := "SRCH-" + sku()
	_, err := svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID:     store.ID,
		Name:        "Blastoise Holo",
		SKU:         exactSKU,
		Description: &description,
		Quantity:    1,
	})
	require.NoError(t, err)

	byName, err := svc.SearchItems(context.Background(), actor, "blastoise", ListFilters{})
	require.NoError(t, err)
	require.Equal(t, int64(1), byName.Total)

	byDescription, err := svc.SearchItems(context.Background(), actor, "shadowless", ListFilters{})
	require.NoError(t, err)
	require.Equal(t, int64(1), byDescription.Total)

	bySKU, err := svc.SearchItems(context.Background(), actor, exactSKU, ListFilters{})
	require.NoError(t, err)
	require.Equal(t, int64(1), bySKU.Total)

	miss, err := svc.SearchItems(context.Background(), actor, "wartortle", ListFilters{})
	require.NoError(t, err)
	assert.Zero(t, miss.Total)

	// sub-minimum queries return an empty page, not an error
	short, err := svc.SearchItems(context.Background(), actor, " b ", ListFilters{})
	require.NoError(t, err)
	assert.Zero(t, short.Total)
	assert.Empty(t, short.Items)
	assert.Equal(t, 1, short.Page)
	assert.Equal(t, 25, short.PageSize)

	// the minimum counts runes, so one multibyte character is still too short
	multibyte, err := svc.SearchItems(context.Background(), actor, "漢", ListFilters{})
	require.NoError(t, err)
	assert.Zero(t, multibyte.Total)
	assert.Empty(t, multibyte.Items)
}

func TestRepositoryListLedgerByItem_ordersOldestFirst(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc, repo := newCatalogService(t, conn)

	vendor := newVendor(t, conn, "Ledger List Vendor")
	store := newVendorStore(t, conn, vendor.ID, "Main")
	actor := newActor(t, conn, vendor.ID, enums.MemberRoleOwner)

	detail, err := svc.CreateItem(context.Background(), actor, CreateItemInput{
		StoreID:  store.ID,
		Name:     "History Item",
		SKU:      sku(),
		Quantity: 1,
	})
	require.NoError(t, err)

	seven := 7
	_, err = svc.UpdateItem(context.Background(), actor, detail.Item.ID, UpdateItemInput{Quantity: &seven})
	require.NoError(t, err)

	entries, err := repo.ListLedgerByItem(context.Background(), detail.Item.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, enums.LedgerTransactionTypeAdd, entries[0].TransactionType)
	assert.Equal(t, enums.LedgerTransactionTypeAdjustment, entries[1].TransactionType)
}
