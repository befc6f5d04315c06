package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"time"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, failureResponse{Success: false, Error: msg})
}

func writeInternalError(l *slog.Logger, w http.ResponseWriter, e error) {
	var pcs [1]uintptr
	runtime.Callers(2, pcs[:]) // skip [Callers, writeInternalError]
	r := slog.NewRecord(time.Now(), slog.LevelError, e.Error(), pcs[0])
	_ = l.Handler().Handle(context.Background(), r)
	writeFailure(w, http.StatusInternalServerError, fmt.Sprintf("Internal server error: %s", e))
}

// handleHealth reports liveness only; it never touches the provider.
func handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Message: "Server is running"})
	}
}
