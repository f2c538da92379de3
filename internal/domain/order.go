package domain

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusInitiated OrderStatus = "INITIATED"
	OrderStatusAttested  OrderStatus = "ATTESTED"
	OrderStatusFinalized OrderStatus = "FINALIZED"
)

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusFinalized
}

// ParseOrderStatus normalizes case-insensitive input to the canonical status.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case OrderStatusInitiated:
		return OrderStatusInitiated, nil
	case OrderStatusAttested:
		return OrderStatusAttested, nil
	case OrderStatusFinalized:
		return OrderStatusFinalized, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Order is a tracked cross-chain transfer with a settlement lifecycle.
// Everything except status, src_tx and dst_tx is immutable after creation;
// those three are only ever advanced by the settlement worker, and the tx
// references are set at most once.
type Order struct {
	OrderID   string
	SrcChain  string
	DstChain  string
	Token     string
	Amount    float64
	Sender    string
	Recipient string
	Status    OrderStatus
	SrcTx     *string
	DstTx     *string
	CreatedAt time.Time
}

// OrderFilter narrows an order listing. Zero values mean no constraint.
// Query matches case-sensitively as a substring of sender, recipient and
// order id. Results are newest first, capped at Limit.
type OrderFilter struct {
	Status   OrderStatus
	SrcChain string
	DstChain string
	Query    string
	Limit    int
}
