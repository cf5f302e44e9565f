package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"kycshare/internal/onboarding"
	"kycshare/internal/platform/middleware"
	id "kycshare/pkg/domain"
	"kycshare/pkg/platform/httputil"
)

func (h *Handler) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[createCustomerRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	bankID, err := id.ParseBankID(req.BankID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	accountID, err := id.ParseAccountID(req.AccountID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	customerID, err := id.ParseCustomerID(req.CustomerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	err = h.onboarding.CreateCustomer(ctx, middleware.GetCaller(ctx), onboarding.CreateCustomerParams{
		BankID:            bankID,
		AccountID:         accountID,
		CustomerID:        customerID,
		KYCPrice:          req.KYCPrice,
		RepeatProbability: req.RepeatProbability,
		DocHash:           req.DocHash,
		Payment:           req.Payment,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, okResponse)
}

func (h *Handler) handleEnterOnboardedList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID, err := customerIDParam(chi.URLParam(r, "customerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeJSON[enterOnboardedListRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	bankID, err := id.ParseBankID(req.BankID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	accountID, err := id.ParseAccountID(req.AccountID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	err = h.onboarding.EnterOnboardedList(ctx, middleware.GetCaller(ctx), onboarding.EnterParams{
		CustomerID: customerID,
		AccountID:  accountID,
		BankID:     bankID,
		Payment:    req.Payment,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, okResponse)
}
