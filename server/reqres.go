package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/brojonat/arv-relay/rentcast"
	"github.com/brojonat/arv-relay/webhook"
)

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type failureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type validationFailureResponse struct {
	Success      bool               `json:"success"`
	Error        string             `json:"error"`
	ReceivedData map[string]any     `json:"receivedData"`
	Extracted    webhook.Resolution `json:"extracted"`
}

type arvResponse struct {
	Success          bool                   `json:"success"`
	Property         rentcast.PropertyQuery `json:"property"`
	AfterRepairValue *float64               `json:"afterRepairValue"`
	ConfidenceScore  *float64               `json:"confidenceScore"`
	FullData         json.RawMessage        `json:"fullData"`
}

// MalformedRequest is returned by decodeJSONBody when the body cannot be read
// as a single JSON object.
type MalformedRequest struct {
	msg string
}

func (mr *MalformedRequest) Error() string { return mr.msg }

// decodeJSONBody decodes the request body into an untyped object. Numbers are
// kept as json.Number so they are echoed back exactly as received.
func decodeJSONBody(r *http.Request) (map[string]any, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		var mbe *http.MaxBytesError
		switch {
		case errors.As(err, &mbe):
			return nil, &MalformedRequest{msg: fmt.Sprintf("request body must not be larger than %d bytes", mbe.Limit)}
		case errors.Is(err, io.EOF):
			return nil, &MalformedRequest{msg: "request body must not be empty"}
		default:
			return nil, &MalformedRequest{msg: fmt.Sprintf("request body is not a valid JSON object: %s", err)}
		}
	}
	if payload == nil {
		return nil, &MalformedRequest{msg: "request body must be a JSON object"}
	}
	if dec.More() {
		return nil, &MalformedRequest{msg: "request body must only contain a single JSON object"}
	}
	return payload, nil
}
