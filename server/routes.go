package server

import (
	"log/slog"
	"net/http"

	"github.com/brojonat/arv-relay/rentcast"
	"github.com/gorilla/mux"
)

func getRootHandler(l *slog.Logger, cfg Config, c rentcast.Client) http.Handler {
	r := mux.NewRouter()
	r.Use(withRequestID, logRequests(l))

	headers := []string{"Content-Type", "Authorization", "X-Requested-With", requestIDHeader}
	methods := []string{http.MethodGet, http.MethodPost, http.MethodOptions}

	// helper routes
	r.Handle("/health", adaptHandler(
		handleHealth(),
		apiMode(l, cfg.MaxBytes, headers, methods, cfg.AllowedOrigins),
	)).Methods(http.MethodGet, http.MethodOptions)
	r.Handle("/test-rentcast", adaptHandler(
		handleProbe(l, c),
		apiMode(l, cfg.MaxBytes, headers, methods, cfg.AllowedOrigins),
	)).Methods(http.MethodGet, http.MethodOptions)

	// webhook routes
	r.Handle("/get-arv", adaptHandler(
		handleGetARV(l, c),
		apiMode(l, cfg.MaxBytes, headers, methods, cfg.AllowedOrigins),
	)).Methods(http.MethodPost, http.MethodOptions)
	return r
}
