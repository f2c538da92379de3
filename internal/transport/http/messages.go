package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/hyperitsme/axion-backend/internal/app"
	"github.com/hyperitsme/axion-backend/internal/domain"
)

// OrderLister is the minimal interface needed to list orders.
type OrderLister interface {
	ListOrders(ctx context.Context, in app.ListOrdersInput) ([]domain.Order, error)
}

// HandleListOrders returns an HTTP handler for the filtered order listing.
// Filters come from query parameters: status (case-insensitive), src, dst,
// q (substring over sender/recipient/orderId) and limit.
func HandleListOrders(svc OrderLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		q := r.URL.Query()
		limit := 0
		if raw := q.Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err == nil {
				limit = parsed
			}
		}

		orders, err := svc.ListOrders(r.Context(), app.ListOrdersInput{
			Status:   q.Get("status"),
			SrcChain: q.Get("src"),
			DstChain: q.Get("dst"),
			Query:    q.Get("q"),
			Limit:    limit,
		})
		if err != nil {
			writeValidationError(w, err)
			return
		}

		items := make([]orderResponse, 0, len(orders))
		for _, order := range orders {
			items = append(items, toOrderResponse(order))
		}
		writeJSON(w, http.StatusOK, listOrdersResponse{Items: items})
	}
}

type listOrdersResponse struct {
	Items []orderResponse `json:"items"`
}
