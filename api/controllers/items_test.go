package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/omnistock/omnistock-backend/api/middleware"
	"github.com/omnistock/omnistock-backend/internal/catalog"
	"github.com/omnistock/omnistock-backend/pkg/db/models"
	"github.com/omnistock/omnistock-backend/pkg/enums"
	"github.com/omnistock/omnistock-backend/pkg/logger"
)

func TestItemCreateStoreResolution(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	userID := uuid.New()
	vendorID := uuid.New()
	bodyStoreID := uuid.New()
	claimStoreID := uuid.New()

	resolver := &stubActorResolver{membership: &models.VendorMembership{
		ID:       uuid.New(),
		VendorID: vendorID,
		UserID:   userID,
		Role:     enums.MemberRoleOwner,
		IsActive: true,
	}}

	makeRequest := func(ctx context.Context, body string) (*httptest.ResponseRecorder, *stubCatalogService) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(body))
		req = req.WithContext(ctx)
		rec := httptest.NewRecorder()
		stub := &stubCatalogService{}
		ItemCreate(stub, resolver, logg).ServeHTTP(rec, req)
		return rec, stub
	}

	t.Run("explicit store wins", func(t *testing.T) {
		ctx := middleware.WithUserID(context.Background(), userID.String())
		ctx = middleware.WithStoreID(ctx, claimStoreID.String())
		rec, stub := makeRequest(ctx, `{"store_id":"`+bodyStoreID.String()+`","name":"Charizard","sku":"SKU-1"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.created == nil || stub.created.StoreID != bodyStoreID {
			t.Fatalf("expected body store id to be used, got %+v", stub.created)
		}
	})

	t.Run("falls back to session store", func(t *testing.T) {
		ctx := middleware.WithUserID(context.Background(), userID.String())
		ctx = middleware.WithStoreID(ctx, claimStoreID.String())
		rec, stub := makeRequest(ctx, `{"name":"Charizard","sku":"SKU-2"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.created == nil || stub.created.StoreID != claimStoreID {
			t.Fatalf("expected session store id to be used, got %+v", stub.created)
		}
	})

	t.Run("missing store", func(t *testing.T) {
		ctx := middleware.WithUserID(context.Background(), userID.String())
		rec, stub := makeRequest(ctx, `{"name":"Charizard","sku":"SKU-3"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 without any store id, got %d", rec.Code)
		}
		if stub.created != nil {
			t.Fatalf("service must not be called without a store")
		}
	})

	t.Run("missing user", func(t *testing.T) {
		rec, _ := makeRequest(context.Background(), `{"name":"Charizard","sku":"SKU-4"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 without credentials, got %d", rec.Code)
		}
	})
}

type stubActorResolver struct {
	membership *models.VendorMembership
}

func (s *stubActorResolver) ResolveActiveVendor(ctx context.Context, userID uuid.UUID) (*models.VendorMembership, error) {
	return s.membership, nil
}

type stubCatalogService struct {
	created *catalog.CreateItemInput
}

func (s *stubCatalogService) CreateItem(ctx context.Context, actor *models.VendorMembership, input catalog.CreateItemInput) (*catalog.ItemDetail, error) {
	s.created = &input
	return &catalog.ItemDetail{}, nil
}

func (s *stubCatalogService) UpdateItem(ctx context.Context, actor *models.VendorMembership, itemID uuid.UUID, input catalog.UpdateItemInput) (*catalog.ItemDetail, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) DeleteItem(ctx context.Context, actor *models.VendorMembership, itemID uuid.UUID) error {
	panic("unimplemented")
}

func (s *stubCatalogService) TransferStock(ctx context.Context, actor *models.VendorMembership, input catalog.TransferStockInput) (*catalog.ItemDetail, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) GetItem(ctx context.Context, actor *models.VendorMembership, itemID uuid.UUID) (*catalog.ItemDetail, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) ListItems(ctx context.Context, actor *models.VendorMembership, filters catalog.ListFilters) (*catalog.ListResult, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) SearchItems(ctx context.Context, actor *models.VendorMembership, query string, filters catalog.ListFilters) (*catalog.ListResult, error) {
	panic("unimplemented")
}
