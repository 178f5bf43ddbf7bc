package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/omnistock/omnistock-backend/api/responses"
	"github.com/omnistock/omnistock-backend/api/validators"
	"github.com/omnistock/omnistock-backend/internal/memberships"
	"github.com/omnistock/omnistock-backend/pkg/db/models"
	"github.com/omnistock/omnistock-backend/pkg/enums"
	pkgerrors "github.com/omnistock/omnistock-backend/pkg/errors"
	"github.com/omnistock/omnistock-backend/pkg/logger"
)

type inviteMemberRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Role      string  `json:"role" validate:"required"`
	Title     *string `json:"title,omitempty"`
}

type inviteMemberResponse struct {
	Membership   *models.VendorMembership `json:"membership"`
	TempPassword string                   `json:"temp_password,omitempty"`
}

type updateMemberRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type storeAccessRequest struct {
	StoreID uuid.UUID `json:"store_id" validate:"required"`
	Role    string    `json:"role" validate:"required"`
}

// MemberList returns every member of the caller's active vendor.
func MemberList(svc memberships.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		members, err := svc.ListMembers(r.Context(), actor.VendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, members)
	}
}

// MemberInvite creates or refreshes a pending membership for an email address.
func MemberInvite(svc memberships.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
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

		var body inviteMemberRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		role, err := enums.ParseMemberRole(body.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid member role"))
			return
		}

		membership, tempPassword, err := svc.Invite(r.Context(), actor.UserID, actor.VendorID, memberships.InviteInput{
			Email:     body.Email,
			FirstName: body.FirstName,
			LastName:  body.LastName,
			Role:      role,
			Title:     body.Title,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, inviteMemberResponse{
			Membership:   membership,
			TempPassword: tempPassword,
		})
	}
}

// MemberAccept accepts the caller's own pending invite.
func MemberAccept(svc memberships.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		membershipID, err := parsePathUUID(r, chi.URLParam(r, "membershipId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		membership, err := svc.Accept(r.Context(), userID, membershipID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, membership)
	}
}

// MemberDecline declines the caller's own pending invite.
func MemberDecline(svc memberships.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		membershipID, err := parsePathUUID(r, chi.URLParam(r, "membershipId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		membership, err := svc.Decline(r.Context(), userID, membershipID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, membership)
	}
}

// MemberDeactivate revokes a member of the caller's vendor.
func MemberDeactivate(svc memberships.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
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
		membershipID, err := parsePathUUID(r, chi.URLParam(r, "membershipId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		membership, err := svc.Deactivate(r.Context(), actor.VendorID, membershipID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, membership)
	}
}

// MemberUpdateRole changes a member's role within the caller's vendor.
func MemberUpdateRole(svc memberships.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
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
		membershipID, err := parsePathUUID(r, chi.URLParam(r, "membershipId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateMemberRoleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		role, err := enums.ParseMemberRole(body.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid member role"))
			return
		}

		membership, err := svc.UpdateRole(r.Context(), actor.VendorID, membershipID, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, membership)
	}
}

// MemberAssignStoreAccess grants a member access to a store.
func MemberAssignStoreAccess(svc memberships.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
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
		membershipID, err := parsePathUUID(r, chi.URLParam(r, "membershipId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body storeAccessRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		role, err := enums.ParseStoreAccessRole(body.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid store access role"))
			return
		}

		access, err := svc.AssignStoreAccess(r.Context(), actor.VendorID, membershipID, body.StoreID, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, access)
	}
}

// MemberListStoreAccess returns the store grants held by a member of the
// caller's vendor.
func MemberListStoreAccess(svc memberships.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
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
		membershipID, err := parsePathUUID(r, chi.URLParam(r, "membershipId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		grants, err := svc.ListStoreAccess(r.Context(), actor.VendorID, membershipID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, grants)
	}
}

// MemberRemoveStoreAccess revokes a member's access to a store.
func MemberRemoveStoreAccess(svc memberships.Service, resolver actorResolver, logg *logger.Logger) http.HandlerFunc {
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
		membershipID, err := parsePathUUID(r, chi.URLParam(r, "membershipId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := parsePathUUID(r, chi.URLParam(r, "storeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveStoreAccess(r.Context(), actor.VendorID, membershipID, storeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// MemberListMine returns every membership the caller holds across vendors.
func MemberListMine(svc memberships.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
