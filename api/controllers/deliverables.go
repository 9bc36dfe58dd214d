package controllers

import (
	"net/http"

	"github.com/creatorvault/creatorvault-backend/api/responses"
	"github.com/creatorvault/creatorvault-backend/api/validators"
	"github.com/creatorvault/creatorvault-backend/internal/brands"
	"github.com/creatorvault/creatorvault-backend/internal/creators"
	"github.com/creatorvault/creatorvault-backend/internal/deliverables"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
)

type deliverableSubmitRequest struct {
	Link        string `json:"link" validate:"required,url,max=2048"`
	Description string `json:"description" validate:"max=5000"`
}

type deliverableFeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required,max=5000"`
}

// DeliverableSubmit posts work against a signed contract's application.
func DeliverableSubmit(svc deliverables.Service, creatorSvc creators.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creator, err := requireCreator(r.Context(), creatorSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		applicationID, err := pathUUID(r, "applicationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req deliverableSubmitRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deliverable, err := svc.Submit(r.Context(), creator.ID, deliverables.SubmitInput{
			ApplicationID: applicationID,
			Link:          req.Link,
			Description:   req.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, deliverable)
	}
}

// DeliverableApprove accepts submitted work and queues the payout.
func DeliverableApprove(svc deliverables.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brand, err := requireBrand(r.Context(), brandSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		deliverableID, err := pathUUID(r, "deliverableId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		deliverable, err := svc.Approve(r.Context(), brand.ID, deliverableID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deliverable)
	}
}

// DeliverableReject turns down submitted work with feedback.
func DeliverableReject(svc deliverables.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brand, err := requireBrand(r.Context(), brandSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		deliverableID, err := pathUUID(r, "deliverableId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req deliverableFeedbackRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		deliverable, err := svc.Reject(r.Context(), brand.ID, deliverableID, req.Feedback)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deliverable)
	}
}

// DeliverableRequestRevision sends submitted work back for another pass.
func DeliverableRequestRevision(svc deliverables.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brand, err := requireBrand(r.Context(), brandSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		deliverableID, err := pathUUID(r, "deliverableId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req deliverableFeedbackRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		deliverable, err := svc.RequestRevision(r.Context(), brand.ID, deliverableID, req.Feedback)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deliverable)
	}
}

// DeliverableListForApplication returns the submissions on one application.
func DeliverableListForApplication(svc deliverables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationID, err := pathUUID(r, "applicationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.ListForApplication(r.Context(), applicationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}
