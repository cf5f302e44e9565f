package httptransport

import (
	"kycshare/internal/ledger/models"
	id "kycshare/pkg/domain"
)

type registerBankRequest struct {
	BankID string `json:"bank_id"`
}

type createCustomerRequest struct {
	BankID            string `json:"bank_id"`
	AccountID         string `json:"account_id"`
	CustomerID        string `json:"customer_id"`
	KYCPrice          int64  `json:"kyc_price"`
	RepeatProbability int    `json:"repeat_probability"`
	DocHash           string `json:"doc_hash"`
	Payment           int64  `json:"payment"`
}

type enterOnboardedListRequest struct {
	AccountID string `json:"account_id"`
	BankID    string `json:"bank_id"`
	Payment   int64  `json:"payment"`
}

type requireUpdateRequest struct {
	Flag bool `json:"flag"`
}

type setUpdateFlagRequest struct {
	BankID string `json:"bank_id"`
}

type updateDocPackageRequest struct {
	BankID     string `json:"bank_id"`
	NewHash    string `json:"new_hash"`
	UpdateCost int64  `json:"update_cost"`
}

type settleDebtRequest struct {
	DebtorAccountID   string `json:"debtor_account_id"`
	CreditorAccountID string `json:"creditor_account_id"`
	Amount            int64  `json:"amount"`
}

type rateCustomerRequest struct {
	AccountID string `json:"account_id"`
	Value     int64  `json:"value"`
}

type rateBankRequest struct {
	FromBankID string `json:"from_bank_id"`
	CustomerID string `json:"customer_id"`
	Value      int64  `json:"value"`
}

type statusResponse struct {
	Status string `json:"status"`
}

var okResponse = statusResponse{Status: "ok"}

type ratingResponse struct {
	Cumulative int64 `json:"cumulative"`
	Count      int64 `json:"count"`
	Average    int64 `json:"average"`
}

func newRatingResponse(agg models.RatingAggregate) ratingResponse {
	return ratingResponse{
		Cumulative: agg.Cumulative,
		Count:      agg.Count,
		Average:    agg.Average,
	}
}

type bankResponse struct {
	ID         string         `json:"id"`
	Registered bool           `json:"registered"`
	Rating     ratingResponse `json:"rating"`
	Customers  int            `json:"customers"`
}

func newBankResponse(b *models.Bank) bankResponse {
	return bankResponse{
		ID:         b.ID.String(),
		Registered: b.Registered,
		Rating:     newRatingResponse(b.Rating),
		Customers:  len(b.Customers),
	}
}

type accountResponse struct {
	AccountID string           `json:"account_id"`
	BankID    string           `json:"bank_id"`
	Balance   int64            `json:"balance"`
	Debts     map[string]int64 `json:"debts,omitempty"`
}

type customerResponse struct {
	ID                string            `json:"id"`
	Registered        bool              `json:"registered"`
	RequireUpdate     bool              `json:"require_update"`
	UpdateInProgress  bool              `json:"update_in_progress"`
	Balance           int64             `json:"balance"`
	KYCPrice          int64             `json:"kyc_price"`
	CumulativeKYCCost int64             `json:"cumulative_kyc_cost"`
	RepeatProbability int               `json:"repeat_probability"`
	KYCCount          int64             `json:"kyc_count"`
	NextFee           int64             `json:"next_fee"`
	Rating            ratingResponse    `json:"rating"`
	Onboarded         []accountResponse `json:"onboarded"`
}

func newCustomerResponse(c *models.Customer) customerResponse {
	onboarded := make([]accountResponse, 0, len(c.Onboarded))
	for _, a := range c.Onboarded {
		debts := make(map[string]int64, len(a.Debts))
		for creditor, value := range a.Debts {
			if value != 0 {
				debts[creditor.String()] = value
			}
		}
		onboarded = append(onboarded, accountResponse{
			AccountID: a.ID.String(),
			BankID:    a.BankID.String(),
			Balance:   a.Balance,
			Debts:     debts,
		})
	}
	return customerResponse{
		ID:                c.ID.String(),
		Registered:        c.Registered,
		RequireUpdate:     c.RequireUpdate,
		UpdateInProgress:  c.UpdateInProgress,
		Balance:           c.Balance,
		KYCPrice:          c.KYCPrice,
		CumulativeKYCCost: c.CumulativeKYCCost,
		RepeatProbability: c.RepeatProbability,
		KYCCount:          c.KYCCount,
		NextFee:           c.NextFee(),
		Rating:            newRatingResponse(c.Rating),
		Onboarded:         onboarded,
	}
}

type resolutionResponse struct {
	AccountID string `json:"account_id"`
	Position  int    `json:"position"`
}

type debtResponse struct {
	DebtorAccountID   string `json:"debtor_account_id"`
	CreditorAccountID string `json:"creditor_account_id"`
	Value             int64  `json:"value"`
}

func customerIDParam(raw string) (id.CustomerID, error) {
	return id.ParseCustomerID(raw)
}
