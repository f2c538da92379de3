package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hyperitsme/axion-backend/internal/notify"
)

// HandleEvents returns a server-sent-events handler that streams every
// order state change to the client. There is no per-order filtering and no
// replay: subscribers only see events fired while they are connected.
func HandleEvents(hub *notify.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, codeStreamingUnsupported, "streaming unsupported")
			return
		}

		sub, err := hub.Subscribe()
		if err != nil {
			if errors.Is(err, notify.ErrTooManySubscribers) {
				writeError(w, http.StatusServiceUnavailable, codeTooManySubscribers, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		defer hub.Unsubscribe(sub)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		fmt.Fprint(w, "event: hello\ndata: {\"ok\":true}\n\n")
		flusher.Flush()

		for {
			select {
			case <-r.Context().Done():
				return
			case order, open := <-sub.Updates():
				if !open {
					return
				}
				payload, err := json.Marshal(toOrderResponse(order))
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: order.update\ndata: %s\n\n", payload)
				flusher.Flush()
			}
		}
	}
}
