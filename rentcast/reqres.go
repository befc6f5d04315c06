package rentcast

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// PropertyQuery identifies the property to value. All four fields are required
// by the provider.
type PropertyQuery struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

func (q PropertyQuery) Params() url.Values {
	v := url.Values{}
	v.Set("address", q.Address)
	v.Set("city", q.City)
	v.Set("state", q.State)
	v.Set("zipCode", q.ZipCode)
	return v
}

// Response is the unparsed provider reply.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Valuation holds the fields the relay reads out of a value estimate. Price and
// Confidence are nil when the provider omitted them, so a missing estimate is
// never confused with a zero one. Raw is the provider body, untouched.
type Valuation struct {
	Price          *float64        `json:"price"`
	PriceRangeLow  *float64        `json:"priceRangeLow"`
	PriceRangeHigh *float64        `json:"priceRangeHigh"`
	Confidence     *float64        `json:"confidence"`
	Raw            json.RawMessage `json:"-"`
}
