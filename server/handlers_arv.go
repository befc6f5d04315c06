package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/brojonat/arv-relay/rentcast"
	"github.com/brojonat/arv-relay/webhook"
)

// handleGetARV resolves the property in a CRM webhook payload, asks RentCast
// for a value estimate and returns the after repair value.
func handleGetARV(l *slog.Logger, c rentcast.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := l.With("request_id", requestID(r.Context()))

		payload, err := decodeJSONBody(r)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		l.Info("received webhook payload", "payload", payload)

		q, res, err := webhook.Extract(payload)
		if err != nil {
			var mfe *webhook.MissingFieldsError
			if errors.As(err, &mfe) {
				l.Warn("webhook payload incomplete", "missing", mfe.Missing)
			}
			status, msg := relayErrorStatus(err)
			writeJSON(w, status, validationFailureResponse{
				Success:      false,
				Error:        msg,
				ReceivedData: payload,
				Extracted:    res,
			})
			return
		}

		v, err := c.ValueEstimate(r.Context(), q)
		if err != nil {
			status, msg := relayErrorStatus(err)
			l.Error("rentcast value estimate failed", "status", status, "error", err.Error())
			writeFailure(w, status, msg)
			return
		}
		if v.Price == nil || v.Confidence == nil {
			l.Warn("rentcast response missing valuation fields",
				"has_price", v.Price != nil,
				"has_confidence", v.Confidence != nil,
			)
		}

		resp := arvResponse{
			Success:          true,
			Property:         q,
			AfterRepairValue: v.Price,
			ConfidenceScore:  v.Confidence,
			FullData:         v.Raw,
		}
		l.Info("sending response", "property", q, "arv", v.Price, "confidence", v.Confidence)
		writeJSON(w, http.StatusOK, resp)
	}
}
