package controllers

import (
	"net/http"

	"github.com/creatorvault/creatorvault-backend/api/responses"
	"github.com/creatorvault/creatorvault-backend/api/validators"
	"github.com/creatorvault/creatorvault-backend/internal/reviews"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	pkgerrors "github.com/creatorvault/creatorvault-backend/pkg/errors"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
	"github.com/google/uuid"
)

type reviewCreateRequest struct {
	ContractID   uuid.UUID `json:"contract_id" validate:"required"`
	ReviewerRole string    `json:"reviewer_role" validate:"required"`
	Rating       int       `json:"rating" validate:"required,min=1,max=5"`
	Comment      string    `json:"comment" validate:"max=5000"`
	IsPublic     bool      `json:"is_public"`
}

// ReviewCreate posts a review against a completed contract.
func ReviewCreate(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req reviewCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		role, err := enums.ParseParticipantRole(req.ReviewerRole)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid reviewer role"))
			return
		}

		review, err := svc.Create(r.Context(), userID, reviews.CreateInput{
			ContractID:   req.ContractID,
			ReviewerRole: role,
			Rating:       req.Rating,
			Comment:      req.Comment,
			IsPublic:     req.IsPublic,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}

// ReviewListForReviewee returns the public reviews left on a profile.
func ReviewListForReviewee(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		revieweeID, err := pathUUID(r, "revieweeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, cursor, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, next, err := svc.ListForReviewee(r.Context(), revieweeID, limit, cursor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newListEnvelope(items, next))
	}
}
