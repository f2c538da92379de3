package domain

import "errors"

var (
	ErrSrcChainRequired   = errors.New("fromChain is required")
	ErrDstChainRequired   = errors.New("toChain is required")
	ErrTokenRequired      = errors.New("token is required")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidPricingMode = errors.New("type must be fixed or float")
	ErrRecipientTooShort  = errors.New("recipient must be at least 4 characters")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrOrderNotFound      = errors.New("order not found")
)
