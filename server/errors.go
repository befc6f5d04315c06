package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/brojonat/arv-relay/rentcast"
	"github.com/brojonat/arv-relay/webhook"
)

const (
	errMsgMissingFields = "Missing required fields: address, city, state, zipCode"
	errMsgTimeout       = "RentCast API request timed out"
)

// relayErrorStatus maps an error from any stage of the relay onto the status
// code and message returned to the caller.
func relayErrorStatus(err error) (int, string) {
	var (
		mfe *webhook.MissingFieldsError
		se  *rentcast.StatusError
		te  *rentcast.TransportError
	)
	switch {
	case errors.As(err, &mfe):
		return http.StatusBadRequest, errMsgMissingFields
	case errors.Is(err, rentcast.ErrTimeout):
		return http.StatusGatewayTimeout, errMsgTimeout
	case errors.As(err, &se):
		return upstreamStatus(se.StatusCode), fmt.Sprintf("RentCast API error: %s", se.Body)
	case errors.As(err, &te):
		return http.StatusInternalServerError, fmt.Sprintf("Error calling RentCast API: %s", te)
	default:
		return http.StatusInternalServerError, fmt.Sprintf("Internal server error: %s", err)
	}
}

// upstreamStatus relays the provider's code unless it is not something we can
// legally write back (e.g. a 1xx).
func upstreamStatus(code int) int {
	if code < 200 || code > 599 {
		return http.StatusBadGateway
	}
	return code
}
