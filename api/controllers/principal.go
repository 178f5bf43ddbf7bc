package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/omnistock/omnistock-backend/api/middleware"
	"github.com/omnistock/omnistock-backend/pkg/db/models"
	pkgerrors "github.com/omnistock/omnistock-backend/pkg/errors"
)

type actorResolver interface {
	ResolveActiveVendor(ctx context.Context, userID uuid.UUID) (*models.VendorMembership, error)
}

// requireUserID pulls the authenticated user id from the request context.
func requireUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	return id, nil
}

// requireActor resolves the caller's primary active membership. Callers with
// no active tenant get a 403 rather than an arbitrary fallback vendor.
func requireActor(r *http.Request, resolver actorResolver) (*models.VendorMembership, error) {
	userID, err := requireUserID(r)
	if err != nil {
		return nil, err
	}
	membership, err := resolver.ResolveActiveVendor(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "no active vendor membership")
	}
	return membership, nil
}

func parsePathUUID(r *http.Request, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid identifier")
	}
	return id, nil
}
