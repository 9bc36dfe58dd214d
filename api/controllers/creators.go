package controllers

import (
	"net/http"

	"github.com/creatorvault/creatorvault-backend/api/responses"
	"github.com/creatorvault/creatorvault-backend/api/validators"
	"github.com/creatorvault/creatorvault-backend/internal/creators"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	pkgerrors "github.com/creatorvault/creatorvault-backend/pkg/errors"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
)

type creatorOnboardRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	Bio       string `json:"bio" validate:"max=2000"`
	Niche     string `json:"niche" validate:"max=100"`
	Followers int    `json:"followers" validate:"required,min=0"`
}

type creatorUpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=255"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
	Niche     *string `json:"niche" validate:"omitempty,max=100"`
	Followers *int    `json:"followers" validate:"omitempty,min=0"`
}

type socialAccountRequest struct {
	Platform   string `json:"platform" validate:"required"`
	Username   string `json:"username" validate:"required,max=255"`
	ProfileURL string `json:"profile_url" validate:"omitempty,url,max=500"`
	Followers  int    `json:"followers" validate:"min=0"`
}

type payoutSetupRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// CreatorOnboard creates the creator profile for the authenticated user.
func CreatorOnboard(svc creators.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req creatorOnboardRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Onboard(r.Context(), creators.OnboardInput{
			UserID:    userID,
			Name:      req.Name,
			Bio:       req.Bio,
			Niche:     req.Niche,
			Followers: req.Followers,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, profile)
	}
}

// CreatorMe returns the authenticated user's creator profile.
func CreatorMe(svc creators.Service, logg *logger.Logger) http.HandlerFunc {
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

// CreatorUpdate applies partial edits to the authenticated creator's profile.
func CreatorUpdate(svc creators.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req creatorUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), userID, creators.UpdateInput{
			Name:      req.Name,
			Bio:       req.Bio,
			Niche:     req.Niche,
			Followers: req.Followers,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// CreatorDetail returns a creator profile by id.
func CreatorDetail(svc creators.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, err := pathUUID(r, "creatorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		profile, err := svc.Get(r.Context(), creatorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// CreatorStats returns the authenticated creator's dashboard numbers.
func CreatorStats(svc creators.Service, logg *logger.Logger) http.HandlerFunc {
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

// CreatorSocialAccounts lists the authenticated creator's linked handles.
func CreatorSocialAccounts(svc creators.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		accounts, err := svc.ListSocialAccounts(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listEnvelope{Items: accounts})
	}
}

// CreatorAddSocialAccount links a social handle and re-derives the tier.
func CreatorAddSocialAccount(svc creators.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req socialAccountRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		platform, err := enums.ParseSocialPlatform(req.Platform)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid platform"))
			return
		}

		account, err := svc.AddSocialAccount(r.Context(), userID, creators.SocialAccountInput{
			Platform:   platform,
			Username:   req.Username,
			ProfileURL: req.ProfileURL,
			Followers:  req.Followers,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, account)
	}
}

// CreatorRemoveSocialAccount unlinks a handle and re-derives the tier.
func CreatorRemoveSocialAccount(svc creators.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		accountID, err := pathUUID(r, "accountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.RemoveSocialAccount(r.Context(), userID, accountID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, nil)
	}
}

// CreatorPayoutSetup creates the connected payout account and returns the
// onboarding link.
func CreatorPayoutSetup(svc creators.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req payoutSetupRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		link, err := svc.SetupPayouts(r.Context(), userID, req.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"onboarding_url": link})
	}
}
