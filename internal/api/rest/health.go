package rest

import (
	"encoding/json"
	"net/http"

	"github.com/nDmitry/rssproxy/internal/app"
)

// NewHealthHandler registers the liveness probe on mux
func NewHealthHandler(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
			app.Logger().ErrorContext(r.Context(), "failed to encode a health response", "error", err)
		}
	})
}
