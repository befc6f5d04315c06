package rentcast

import (
	"context"
	"encoding/json"
	"net/http"
)

// SampleQuery is a known-good address used to check connectivity and
// credentials without a real webhook payload.
var SampleQuery = PropertyQuery{
	Address: "5500 Grand Lake Drive",
	City:    "San Antonio",
	State:   "TX",
	ZipCode: "78244",
}

type ProbeResult struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Error      string `json:"error,omitempty"`
}

// Probe runs SampleQuery through c. It never returns an error; failures are
// reported in the result.
func Probe(ctx context.Context, c Client) ProbeResult {
	res, err := c.Fetch(ctx, SampleQuery)
	if err != nil {
		return ProbeResult{Success: false, Error: err.Error()}
	}
	pr := ProbeResult{
		Success:    res.StatusCode == http.StatusOK,
		StatusCode: res.StatusCode,
		Data:       string(res.Body),
	}
	if pr.Success {
		var body any
		if err := json.Unmarshal(res.Body, &body); err == nil {
			pr.Data = body
		}
	}
	return pr
}
