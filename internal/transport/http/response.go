package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hyperitsme/axion-backend/internal/domain"
)

type orderResponse struct {
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

func toOrderResponse(order domain.Order) orderResponse {
	return orderResponse{
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
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
