package http

import (
	"context"
	"net/http"

	"github.com/hyperitsme/axion-backend/internal/app"
)

// OverviewProvider is the minimal interface needed for the metrics overview.
type OverviewProvider interface {
	Overview(ctx context.Context) (app.OverviewResult, error)
}

// HandleMetricsOverview returns an HTTP handler for 24h bridge metrics.
func HandleMetricsOverview(svc OverviewProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		overview, err := svc.Overview(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, overviewResponse{
			Tx24h:       overview.Tx24h,
			SuccessRate: overview.SuccessRate,
			P50:         overview.P50,
			P95:         overview.P95,
			Alerts24h:   overview.Alerts24h,
		})
	}
}

type overviewResponse struct {
	Tx24h       int     `json:"tx24h"`
	SuccessRate float64 `json:"successRate"`
	P50         int     `json:"p50"`
	P95         int     `json:"p95"`
	Alerts24h   int     `json:"alerts24h"`
}
