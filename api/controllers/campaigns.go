package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/creatorvault/creatorvault-backend/api/responses"
	"github.com/creatorvault/creatorvault-backend/api/validators"
	"github.com/creatorvault/creatorvault-backend/internal/brands"
	"github.com/creatorvault/creatorvault-backend/internal/campaigns"
	pkgerrors "github.com/creatorvault/creatorvault-backend/pkg/errors"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
)

type campaignCreateRequest struct {
	Title          string     `json:"title" validate:"required,max=255"`
	Description    string     `json:"description" validate:"max=5000"`
	Budget         string     `json:"budget" validate:"required"`
	CreatorsNeeded int        `json:"creators_needed" validate:"required,min=1"`
	Requirements   string     `json:"requirements" validate:"max=5000"`
	Niche          string     `json:"niche" validate:"max=100"`
	Deadline       *time.Time `json:"deadline"`
}

type campaignUpdateRequest struct {
	Title          *string    `json:"title" validate:"omitempty,max=255"`
	Description    *string    `json:"description" validate:"omitempty,max=5000"`
	Budget         *string    `json:"budget"`
	CreatorsNeeded *int       `json:"creators_needed" validate:"omitempty,min=1"`
	Requirements   *string    `json:"requirements" validate:"omitempty,max=5000"`
	Niche          *string    `json:"niche" validate:"omitempty,max=100"`
	Deadline       *time.Time `json:"deadline"`
}

func parseBudget(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid budget")
	}
	return value, nil
}

// CampaignCreate opens a draft campaign for the authenticated brand.
func CampaignCreate(svc campaigns.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brand, err := requireBrand(r.Context(), brandSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req campaignCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		budget, err := parseBudget(req.Budget)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		campaign, err := svc.Create(r.Context(), brand.ID, campaigns.CreateInput{
			Title:          req.Title,
			Description:    req.Description,
			Budget:         budget,
			CreatorsNeeded: req.CreatorsNeeded,
			Requirements:   req.Requirements,
			Niche:          req.Niche,
			Deadline:       req.Deadline,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, campaign)
	}
}

// CampaignUpdate edits a draft campaign owned by the authenticated brand.
func CampaignUpdate(svc campaigns.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
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

		var req campaignUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := campaigns.UpdateInput{
			Title:          req.Title,
			Description:    req.Description,
			CreatorsNeeded: req.CreatorsNeeded,
			Requirements:   req.Requirements,
			Niche:          req.Niche,
			Deadline:       req.Deadline,
		}
		if req.Budget != nil {
			budget, err := parseBudget(*req.Budget)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Budget = &budget
		}

		campaign, err := svc.Update(r.Context(), brand.ID, campaignID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, campaign)
	}
}

// CampaignDepositSession mints a hosted checkout session for the deposit.
func CampaignDepositSession(svc campaigns.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
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
		url, err := svc.CreateDepositSession(r.Context(), brand.ID, campaignID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"checkout_url": url})
	}
}

// CampaignActivate funds and opens a draft campaign on the simulated path.
func CampaignActivate(svc campaigns.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
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
		campaign, err := svc.Activate(r.Context(), brand.ID, campaignID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, campaign)
	}
}

// CampaignCancel cancels a draft or active campaign and refunds its escrow.
func CampaignCancel(svc campaigns.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
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
		campaign, err := svc.Cancel(r.Context(), brand.ID, campaignID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, campaign)
	}
}

// CampaignDetail returns one campaign and bumps its view counter.
func CampaignDetail(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID, err := pathUUID(r, "campaignId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		campaign, err := svc.Get(r.Context(), campaignID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, campaign)
	}
}

// CampaignList returns the active marketplace, optionally filtered by niche.
func CampaignList(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, cursor, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		niche := validators.SanitizeString(r.URL.Query().Get("niche"), 100)

		items, next, err := svc.ListActive(r.Context(), niche, limit, cursor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newListEnvelope(items, next))
	}
}

// CampaignListMine returns the authenticated brand's campaigns.
func CampaignListMine(svc campaigns.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brand, err := requireBrand(r.Context(), brandSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, cursor, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, next, err := svc.ListForBrand(r.Context(), brand.ID, limit, cursor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newListEnvelope(items, next))
	}
}
