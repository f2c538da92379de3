package notify

import (
	"encoding/json"
	"time"

	"github.com/hyperitsme/axion-backend/internal/domain"
)

// orderEvent is the broker wire shape for a published snapshot.
type orderEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"orderId"`
	SrcChain  string    `json:"srcChain"`
	DstChain  string    `json:"dstChain"`
	Token     string    `json:"token"`
	Amount    float64   `json:"amount"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient"`
	Status    string    `json:"status"`
	SrcTx     *string   `json:"srcTx"`
	DstTx     *string   `json:"dstTx"`
	CreatedAt time.Time `json:"createdAt"`
}

func encodeOrderEvent(order domain.Order) ([]byte, error) {
	return json.Marshal(orderEvent{
		Type:      "order.update",
		OrderID:   order.OrderID,
		SrcChain:  order.SrcChain,
		DstChain:  order.DstChain,
		Token:     order.Token,
		Amount:    order.Amount,
		Sender:    order.Sender,
		Recipient: order.Recipient,
		Status:    string(order.Status),
		SrcTx:     order.SrcTx,
		DstTx:     order.DstTx,
		CreatedAt: order.CreatedAt,
	})
}
