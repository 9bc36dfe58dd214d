package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/creatorvault/creatorvault-backend/api/middleware"
	"github.com/creatorvault/creatorvault-backend/api/validators"
	"github.com/creatorvault/creatorvault-backend/internal/brands"
	"github.com/creatorvault/creatorvault-backend/internal/creators"
	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	pkgerrors "github.com/creatorvault/creatorvault-backend/pkg/errors"
	"github.com/creatorvault/creatorvault-backend/pkg/pagination"
)

// listEnvelope is the shared shape for cursor-paginated collections.
type listEnvelope struct {
	Items  any    `json:"items"`
	Cursor string `json:"cursor,omitempty"`
}

func newListEnvelope(items any, next *pagination.Cursor) listEnvelope {
	envelope := listEnvelope{Items: items}
	if next != nil {
		envelope.Cursor = pagination.EncodeCursor(*next)
	}
	return envelope
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, name+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}

func pageParams(r *http.Request) (int, *pagination.Cursor, error) {
	limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
	if err != nil {
		return 0, nil, err
	}
	cursor, err := pagination.ParseCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		return 0, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	return limit, cursor, nil
}

func parseIntOrZero(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return value
}

func authedUserID(ctx context.Context) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

// requireCreator resolves the authenticated user's creator profile. Users
// without one cannot act on the creator side of the marketplace.
func requireCreator(ctx context.Context, svc creators.Service) (*models.CreatorProfile, error) {
	userID, err := authedUserID(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := svc.GetByUser(ctx, userID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "creator profile required")
		}
		return nil, err
	}
	return profile, nil
}

// requireBrand resolves the authenticated user's brand profile.
func requireBrand(ctx context.Context, svc brands.Service) (*models.BrandProfile, error) {
	userID, err := authedUserID(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := svc.GetByUser(ctx, userID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "brand profile required")
		}
		return nil, err
	}
	return profile, nil
}
