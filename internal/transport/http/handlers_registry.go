package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"kycshare/internal/platform/middleware"
	id "kycshare/pkg/domain"
	"kycshare/pkg/platform/httputil"
)

func (h *Handler) handleRegisterBank(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[registerBankRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	bankID, err := id.ParseBankID(req.BankID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.registry.RegisterBank(ctx, middleware.GetCaller(ctx), bankID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, okResponse)
}

func (h *Handler) handleGetBank(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	bankID, err := id.ParseBankID(chi.URLParam(r, "bankID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	bank, err := h.registry.GetBank(ctx, bankID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newBankResponse(bank))
}

func (h *Handler) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID, err := customerIDParam(chi.URLParam(r, "customerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	customer, err := h.registry.GetCustomer(ctx, customerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newCustomerResponse(customer))
}

func (h *Handler) handleResolveAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID, err := customerIDParam(chi.URLParam(r, "customerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.registry.ResolveAccount(ctx, middleware.GetCaller(ctx), customerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resolutionResponse{
		AccountID: res.AccountID.String(),
		Position:  res.Position,
	})
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID, err := customerIDParam(chi.URLParam(r, "customerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	list, err := h.journal.List(ctx, customerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}
