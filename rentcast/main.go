package rentcast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL   = "https://api.rentcast.io/v1"
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "arv-relay"
)

// Client talks to the RentCast AVM endpoints.
type Client interface {
	// Fetch performs the value estimate request and returns the provider's
	// status code and body without interpreting either.
	Fetch(ctx context.Context, q PropertyQuery) (*Response, error)
	// ValueEstimate performs the value estimate request and parses a 2xx body.
	// Non-2xx responses are returned as *StatusError.
	ValueEstimate(ctx context.Context, q PropertyQuery) (*Valuation, error)
}

// Config is built once at process start and handed to NewClient.
type Config struct {
	APIKey    string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

type client struct {
	apiKey    string
	baseURL   string
	userAgent string
	hc        *http.Client
}

func NewClient(cfg Config) Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &client{
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		hc:        &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *client) doRequest(ctx context.Context, path string, params url.Values) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.URL.RawQuery = params.Encode()

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, classify(err)
	}
	return &Response{StatusCode: res.StatusCode, Body: b}, nil
}

func (c *client) Fetch(ctx context.Context, q PropertyQuery) (*Response, error) {
	return c.doRequest(ctx, "/avm/value", q.Params())
}

func (c *client) ValueEstimate(ctx context.Context, q PropertyQuery) (*Valuation, error) {
	res, err := c.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, &StatusError{StatusCode: res.StatusCode, Body: string(res.Body)}
	}
	return parseValuation(res.Body)
}

func parseValuation(b []byte) (*Valuation, error) {
	var v Valuation
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("decoding value estimate: %w", err)}
	}
	v.Raw = json.RawMessage(b)
	return &v, nil
}
