package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"kycshare/internal/platform/middleware"
	id "kycshare/pkg/domain"
	"kycshare/pkg/platform/httputil"
)

func (h *Handler) handleRequireUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID, err := customerIDParam(chi.URLParam(r, "customerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeJSON[requireUpdateRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}

	if err := h.update.RequireCustomerUpdate(ctx, middleware.GetCaller(ctx), customerID, req.Flag); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, okResponse)
}

func (h *Handler) handleSetUpdateFlag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID, err := customerIDParam(chi.URLParam(r, "customerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeJSON[setUpdateFlagRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	bankID, err := id.ParseBankID(req.BankID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.update.SetCustomerUpdateFlag(ctx, middleware.GetCaller(ctx), bankID, customerID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, okResponse)
}

func (h *Handler) handleUpdateDocPackage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID, err := customerIDParam(chi.URLParam(r, "customerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeJSON[updateDocPackageRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	bankID, err := id.ParseBankID(req.BankID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	err = h.update.UpdateDocPackage(ctx, middleware.GetCaller(ctx), bankID, customerID, req.NewHash, req.UpdateCost)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, okResponse)
}
