package http

import (
	"context"
	"net/http"

	"github.com/hyperitsme/axion-backend/internal/domain"
)

// RouteLister is the minimal interface needed to list bridge routes.
type RouteLister interface {
	ListRoutes(ctx context.Context) ([]domain.Route, error)
}

// ValidatorLister is the minimal interface needed to list the validator set.
type ValidatorLister interface {
	ListValidators(ctx context.Context) ([]domain.Validator, error)
}

// HandleListRoutes returns an HTTP handler for the route table.
func HandleListRoutes(svc RouteLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		routes, err := svc.ListRoutes(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		items := make([]routeResponse, 0, len(routes))
		for _, route := range routes {
			items = append(items, routeResponse{
				ID:       route.ID,
				SrcChain: route.SrcChain,
				DstChain: route.DstChain,
				Token:    route.Token,
				FeeBps:   route.FeeBps,
				Paused:   route.Paused,
				P95Sec:   route.P95Sec,
			})
		}
		writeJSON(w, http.StatusOK, listRoutesResponse{Items: items})
	}
}

// HandleListValidators returns an HTTP handler for the validator set.
func HandleListValidators(svc ValidatorLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		validators, err := svc.ListValidators(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		items := make([]validatorResponse, 0, len(validators))
		for _, v := range validators {
			items = append(items, validatorResponse{
				ID:     v.ID,
				Name:   v.Name,
				Region: v.Region,
				Quorum: v.Quorum,
				Missed: v.Missed,
				Epoch:  v.Epoch,
				Health: v.Health,
			})
		}
		writeJSON(w, http.StatusOK, listValidatorsResponse{Items: items})
	}
}

type routeResponse struct {
	ID       string `json:"id"`
	SrcChain string `json:"srcChain"`
	DstChain string `json:"dstChain"`
	Token    string `json:"token"`
	FeeBps   int    `json:"feeBps"`
	Paused   bool   `json:"paused"`
	P95Sec   int    `json:"p95Sec"`
}

type listRoutesResponse struct {
	Items []routeResponse `json:"items"`
}

type validatorResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Region string  `json:"region"`
	Quorum float64 `json:"quorum"`
	Missed float64 `json:"missed"`
	Epoch  int     `json:"epoch"`
	Health string  `json:"health"`
}

type listValidatorsResponse struct {
	Items []validatorResponse `json:"items"`
}
