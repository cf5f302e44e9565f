package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"kycshare/internal/platform/middleware"
	id "kycshare/pkg/domain"
	"kycshare/pkg/platform/httputil"
)

func (h *Handler) handleSettleDebt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID, err := customerIDParam(chi.URLParam(r, "customerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeJSON[settleDebtRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	debtor, err := id.ParseAccountID(req.DebtorAccountID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	creditor, err := id.ParseAccountID(req.CreditorAccountID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.debt.Settle(ctx, customerID, debtor, creditor, req.Amount); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, okResponse)
}

func (h *Handler) handleQueryDebt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID, err := customerIDParam(chi.URLParam(r, "customerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	debtor, err := id.ParseAccountID(r.URL.Query().Get("debtor"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	creditor, err := id.ParseAccountID(r.URL.Query().Get("creditor"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	value, err := h.debt.Query(ctx, customerID, debtor, creditor)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, debtResponse{
		DebtorAccountID:   debtor.String(),
		CreditorAccountID: creditor.String(),
		Value:             value,
	})
}
