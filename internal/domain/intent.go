package domain

import "strings"

type PricingMode string

const (
	PricingModeFixed PricingMode = "fixed"
	PricingModeFloat PricingMode = "float"
)

// TransferIntent describes a desired cross-chain transfer. It is input only
// and never persisted as-is; orders are derived from validated intents.
type TransferIntent struct {
	FromChain string
	ToChain   string
	Token     string
	Amount    float64
	Mode      PricingMode
}

// Validate rejects malformed intents field by field so callers can surface
// the offending field to the client.
func (in TransferIntent) Validate() error {
	if strings.TrimSpace(in.FromChain) == "" {
		return ErrSrcChainRequired
	}
	if strings.TrimSpace(in.ToChain) == "" {
		return ErrDstChainRequired
	}
	if strings.TrimSpace(in.Token) == "" {
		return ErrTokenRequired
	}
	if in.Amount <= 0 {
		return ErrInvalidAmount
	}
	if in.Mode != PricingModeFixed && in.Mode != PricingModeFloat {
		return ErrInvalidPricingMode
	}
	return nil
}
