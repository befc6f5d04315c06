package server

import (
	"log/slog"
	"net/http"

	"github.com/brojonat/arv-relay/rentcast"
)

// handleProbe checks RentCast connectivity with a fixed sample address. The
// relay always answers 200; the body says whether the provider did.
func handleProbe(l *slog.Logger, c rentcast.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pr := rentcast.Probe(r.Context(), c)
		if !pr.Success {
			l.Warn("rentcast probe failed",
				"status", pr.StatusCode,
				"error", pr.Error,
				"request_id", requestID(r.Context()),
			)
		}
		writeJSON(w, http.StatusOK, pr)
	}
}
