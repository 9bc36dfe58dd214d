package controllers

import (
	"net/http"

	"github.com/creatorvault/creatorvault-backend/api/responses"
	"github.com/creatorvault/creatorvault-backend/internal/brands"
	"github.com/creatorvault/creatorvault-backend/internal/contracts"
	"github.com/creatorvault/creatorvault-backend/internal/creators"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
)

// ContractSign records the authenticated creator's signature.
func ContractSign(svc contracts.Service, creatorSvc creators.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creator, err := requireCreator(r.Context(), creatorSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		contractID, err := pathUUID(r, "contractId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		contract, err := svc.Sign(r.Context(), creator.ID, contractID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, contract)
	}
}

// ContractDetail returns a single contract.
func ContractDetail(svc contracts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contractID, err := pathUUID(r, "contractId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		contract, err := svc.Get(r.Context(), contractID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, contract)
	}
}

// ContractList returns the caller's contracts, resolved by whichever
// profile the account carries.
func ContractList(svc contracts.Service, creatorSvc creators.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, cursor, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if creator, err := requireCreator(r.Context(), creatorSvc); err == nil {
			items, next, err := svc.ListForCreator(r.Context(), creator.ID, limit, cursor)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, newListEnvelope(items, next))
			return
		}

		brand, err := requireBrand(r.Context(), brandSvc)
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
