package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"kycshare/internal/platform/middleware"
	id "kycshare/pkg/domain"
	"kycshare/pkg/platform/httputil"
)

func (h *Handler) handleRateCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID, err := customerIDParam(chi.URLParam(r, "customerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeJSON[rateCustomerRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	accountID, err := id.ParseAccountID(req.AccountID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.reputation.RateCustomer(ctx, middleware.GetCaller(ctx), accountID, customerID, req.Value); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, okResponse)
}

func (h *Handler) handleCustomerRating(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID, err := customerIDParam(chi.URLParam(r, "customerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	agg, err := h.reputation.CustomerRating(ctx, customerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newRatingResponse(agg))
}

func (h *Handler) handleRateBank(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	to, err := id.ParseBankID(chi.URLParam(r, "bankID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeJSON[rateBankRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	from, err := id.ParseBankID(req.FromBankID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	customerID, err := id.ParseCustomerID(req.CustomerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.reputation.RateBank(ctx, middleware.GetCaller(ctx), to, from, customerID, req.Value); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, okResponse)
}

func (h *Handler) handleBankRating(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	bankID, err := id.ParseBankID(chi.URLParam(r, "bankID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	agg, err := h.reputation.BankRating(ctx, bankID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newRatingResponse(agg))
}
