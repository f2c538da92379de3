package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeMissingChain         = "missing_chain"
	codeMissingToken         = "missing_token"
	codeInvalidAmount        = "invalid_amount"
	codeInvalidPricingMode   = "invalid_pricing_mode"
	codeRecipientTooShort    = "recipient_too_short"
	codeInvalidStatus        = "invalid_status"
	codeOrderNotFound        = "order_not_found"
	codeTooManySubscribers   = "too_many_subscribers"
	codeStreamingUnsupported = "streaming_unsupported"
	codeForbidden            = "forbidden"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}
