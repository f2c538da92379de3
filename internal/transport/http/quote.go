package http

import (
	"encoding/json"
	"net/http"

	"github.com/hyperitsme/axion-backend/internal/app"
	"github.com/hyperitsme/axion-backend/internal/domain"
)

// Quoter is the minimal interface needed to price an intent.
type Quoter interface {
	Quote(in domain.TransferIntent) (app.QuoteResult, error)
}

// HandleQuote returns an HTTP handler for pricing transfer intents.
func HandleQuote(svc Quoter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req quoteRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		result, err := svc.Quote(req.intent())
		if err != nil {
			writeValidationError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, quoteResponse{
			AmountOut:  result.AmountOut,
			FeeUSD:     result.FeeUSD,
			ETASeconds: result.ETASeconds,
		})
	}
}

type quoteRequest struct {
	FromChain string  `json:"fromChain"`
	ToChain   string  `json:"toChain"`
	Token     string  `json:"token"`
	Amount    float64 `json:"amount"`
	Type      string  `json:"type"`
}

func (r quoteRequest) intent() domain.TransferIntent {
	return domain.TransferIntent{
		FromChain: r.FromChain,
		ToChain:   r.ToChain,
		Token:     r.Token,
		Amount:    r.Amount,
		Mode:      domain.PricingMode(r.Type),
	}
}

type quoteResponse struct {
	AmountOut  float64 `json:"amountOut"`
	FeeUSD     float64 `json:"feeUsd"`
	ETASeconds int     `json:"etaSeconds"`
}

// writeValidationError maps intent and order validation failures to 400s
// with a field-identifying code; anything unmapped is a server failure.
func writeValidationError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrSrcChainRequired, domain.ErrDstChainRequired:
		writeError(w, http.StatusBadRequest, codeMissingChain, err.Error())
	case domain.ErrTokenRequired:
		writeError(w, http.StatusBadRequest, codeMissingToken, err.Error())
	case domain.ErrInvalidAmount:
		writeError(w, http.StatusBadRequest, codeInvalidAmount, err.Error())
	case domain.ErrInvalidPricingMode:
		writeError(w, http.StatusBadRequest, codeInvalidPricingMode, err.Error())
	case domain.ErrRecipientTooShort:
		writeError(w, http.StatusBadRequest, codeRecipientTooShort, err.Error())
	case domain.ErrInvalidStatus:
		writeError(w, http.StatusBadRequest, codeInvalidStatus, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
