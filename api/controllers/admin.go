package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/creatorvault/creatorvault-backend/api/responses"
	"github.com/creatorvault/creatorvault-backend/api/validators"
	"github.com/creatorvault/creatorvault-backend/internal/admin"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
)

type verificationRequest struct {
	Verified *bool `json:"verified" validate:"required"`
}

// incomeRunner triggers one guaranteed-income sweep. Satisfied by the
// income scheduler service.
type incomeRunner interface {
	RunMonthly(ctx context.Context, period time.Time) (int, error)
}

// AdminPlatformStats returns the marketplace-wide dashboard counters.
func AdminPlatformStats(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.PlatformStats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// AdminSetCreatorVerification flips the verified badge on a creator profile.
func AdminSetCreatorVerification(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, err := pathUUID(r, "creatorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req verificationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.SetCreatorVerification(r.Context(), creatorID, *req.Verified); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"verified": *req.Verified})
	}
}

// AdminSetBrandVerification flips the verified badge on a brand profile.
func AdminSetBrandVerification(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brandID, err := pathUUID(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req verificationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.SetBrandVerification(r.Context(), brandID, *req.Verified); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"verified": *req.Verified})
	}
}

// AdminRunGuaranteedIncome kicks off the guaranteed-income sweep for the
// current month. The sweep is idempotent per period, so reruns converge.
func AdminRunGuaranteedIncome(runner incomeRunner, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minted, err := runner.RunMonthly(r.Context(), time.Now().UTC())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"minted": minted})
	}
}
