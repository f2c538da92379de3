package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hyperitsme/axion-backend/internal/app"
	"github.com/hyperitsme/axion-backend/internal/domain"
)

// OrderCreator is the minimal interface needed to create an order.
type OrderCreator interface {
	CreateOrder(ctx context.Context, in app.CreateOrderInput) (app.CreateOrderResult, error)
}

// OrderGetter is the minimal interface needed to fetch one order.
type OrderGetter interface {
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
}

// HandleCreateOrder returns an HTTP handler for creating transfer orders.
func HandleCreateOrder(svc OrderCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createOrderRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		result, err := svc.CreateOrder(r.Context(), app.CreateOrderInput{
			Intent:    req.quoteRequest.intent(),
			Recipient: req.Recipient,
			Sender:    req.Sender,
		})
		if err != nil {
			writeValidationError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, createOrderResponse{
			OrderID: result.Order.OrderID,
			Deposit: depositTarget{
				Chain:   result.DepositChain,
				Address: result.DepositAddress,
			},
		})
	}
}

// HandleGetOrder returns an HTTP handler for fetching one order by id.
func HandleGetOrder(svc OrderGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		orderID, ok := parseOrderPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		order, err := svc.GetOrder(r.Context(), orderID)
		if err != nil {
			if errors.Is(err, domain.ErrOrderNotFound) {
				writeError(w, http.StatusNotFound, codeOrderNotFound, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, getOrderResponse{
			Status: string(order.Status),
			SrcTx:  order.SrcTx,
			DstTx:  order.DstTx,
			Order:  toOrderResponse(order),
		})
	}
}

func parseOrderPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return "", false
	}
	if parts[0] != "v1" || parts[1] != "orders" {
		return "", false
	}
	if parts[2] == "" {
		return "", false
	}
	return parts[2], true
}

type createOrderRequest struct {
	quoteRequest
	Recipient string `json:"recipient"`
	Sender    string `json:"sender"`
}

type depositTarget struct {
	Chain   string `json:"chain"`
	Address string `json:"address"`
}

type createOrderResponse struct {
	OrderID string        `json:"orderId"`
	Deposit depositTarget `json:"deposit"`
}

type getOrderResponse struct {
	Status string        `json:"status"`
	SrcTx  *string       `json:"srcTx"`
	DstTx  *string       `json:"dstTx"`
	Order  orderResponse `json:"order"`
}
