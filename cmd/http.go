package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

func getDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// PostARV sends a webhook payload to the relay's /get-arv route and returns the
// response body. Relay failures still return the body alongside an error so the
// caller can see the diagnostic fields.
func PostARV(ctx context.Context, hc *http.Client, endpoint string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s/get-arv", strings.TrimRight(endpoint, "/")),
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return b, fmt.Errorf("relay returned %s: %s", res.Status, b)
	}
	return b, nil
}
