package controllers

import (
	"net/http"

	"github.com/creatorvault/creatorvault-backend/api/responses"
	"github.com/creatorvault/creatorvault-backend/api/validators"
	"github.com/creatorvault/creatorvault-backend/internal/brands"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
)

type brandOnboardRequest struct {
	CompanyName string `json:"company_name" validate:"required,max=255"`
	Industry    string `json:"industry" validate:"max=100"`
	Website     string `json:"website" validate:"omitempty,url,max=500"`
	Description string `json:"description" validate:"max=2000"`
}

type brandUpdateRequest struct {
	CompanyName *string `json:"company_name" validate:"omitempty,max=255"`
	Industry    *string `json:"industry" validate:"omitempty,max=100"`
	Website     *string `json:"website" validate:"omitempty,url,max=500"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Logo        *string `json:"logo" validate:"omitempty,url,max=500"`
}

// BrandOnboard creates the brand profile for the authenticated user.
func BrandOnboard(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req brandOnboardRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Onboard(r.Context(), brands.OnboardInput{
			UserID:      userID,
			CompanyName: req.CompanyName,
			Industry:    req.Industry,
			Website:     req.Website,
			Description: req.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, profile)
	}
}

// BrandMe returns the authenticated user's brand profile.
func BrandMe(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		profile, err := svc.GetByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// BrandUpdate applies partial edits to the authenticated brand's profile.
func BrandUpdate(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req brandUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), userID, brands.UpdateInput{
			CompanyName: req.CompanyName,
			Industry:    req.Industry,
			Website:     req.Website,
			Description: req.Description,
			Logo:        req.Logo,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// BrandDetail returns a brand profile by id.
func BrandDetail(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brandID, err := pathUUID(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		profile, err := svc.Get(r.Context(), brandID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// BrandStats returns the authenticated brand's dashboard numbers.
func BrandStats(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		stats, err := svc.Stats(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
