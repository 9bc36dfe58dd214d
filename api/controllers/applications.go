package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/creatorvault/creatorvault-backend/api/responses"
	"github.com/creatorvault/creatorvault-backend/api/validators"
	"github.com/creatorvault/creatorvault-backend/internal/applications"
	"github.com/creatorvault/creatorvault-backend/internal/brands"
	"github.com/creatorvault/creatorvault-backend/internal/creators"
	pkgerrors "github.com/creatorvault/creatorvault-backend/pkg/errors"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
)

type applicationApplyRequest struct {
	Message      string  `json:"message" validate:"max=5000"`
	ProposedRate *string `json:"proposed_rate"`
}

// ApplicationApply submits the authenticated creator's pitch for a campaign.
func ApplicationApply(svc applications.Service, creatorSvc creators.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creator, err := requireCreator(r.Context(), creatorSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		campaignID, err := pathUUID(r, "campaignId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req applicationApplyRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := applications.ApplyInput{
			CampaignID: campaignID,
			Message:    req.Message,
		}
		if req.ProposedRate != nil {
			rate, err := decimal.NewFromString(strings.TrimSpace(*req.ProposedRate))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid proposed rate"))
				return
			}
			input.ProposedRate = &rate
		}

		application, err := svc.Apply(r.Context(), creator.ID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, application)
	}
}

// ApplicationApprove accepts a pitch and freezes a contract off the tier rate.
func ApplicationApprove(svc applications.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brand, err := requireBrand(r.Context(), brandSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		applicationID, err := pathUUID(r, "applicationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		contract, err := svc.Approve(r.Context(), brand.ID, applicationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, contract)
	}
}

// ApplicationReject declines a pending pitch.
func ApplicationReject(svc applications.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brand, err := requireBrand(r.Context(), brandSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		applicationID, err := pathUUID(r, "applicationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		application, err := svc.Reject(r.Context(), brand.ID, applicationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, application)
	}
}

// ApplicationDetail returns a single application.
func ApplicationDetail(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationID, err := pathUUID(r, "applicationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		application, err := svc.Get(r.Context(), applicationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, application)
	}
}

// ApplicationListForCampaign returns the pitches on a brand's campaign.
func ApplicationListForCampaign(svc applications.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brand, err := requireBrand(r.Context(), brandSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		campaignID, err := pathUUID(r, "campaignId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, cursor, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, next, err := svc.ListForCampaign(r.Context(), brand.ID, campaignID, limit, cursor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newListEnvelope(items, next))
	}
}

// ApplicationListMine returns the authenticated creator's pitches.
func ApplicationListMine(svc applications.Service, creatorSvc creators.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creator, err := requireCreator(r.Context(), creatorSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, cursor, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, next, err := svc.ListForCreator(r.Context(), creator.ID, limit, cursor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newListEnvelope(items, next))
	}
}
