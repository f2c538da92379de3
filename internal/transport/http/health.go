package http

import (
	"net/http"

	"github.com/hyperitsme/axion-backend/internal/clock"
)

// HealthHandler reports liveness and the current server time.
func HealthHandler(clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			OK: true,
			TS: clk.Now().UnixMilli(),
		})
	}
}

type healthResponse struct {
	OK bool  `json:"ok"`
	TS int64 `json:"ts"`
}
