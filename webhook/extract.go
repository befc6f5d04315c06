package webhook

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/brojonat/arv-relay/rentcast"
	"github.com/jmespath/go-jmespath"
)

// Lookup chains, in precedence order. The first source yielding a usable value
// wins. Keys are quoted so they are taken literally.
var (
	addressSources = mustCompile(`"address"`, `"customData"."address"`, `"contact"."address1"`, `"address1"`)
	citySources    = mustCompile(`"city"`, `"customData"."city"`, `"contact"."city"`)
	stateSources   = mustCompile(`"state"`, `"customData"."state"`, `"contact"."state"`)
	zipSources     = mustCompile(`"zipCode"`, `"postal_code"`, `"customData"."zipCode"`, `"contact"."postal_code"`)
)

func mustCompile(exprs ...string) []*jmespath.JMESPath {
	res := []*jmespath.JMESPath{}
	for _, e := range exprs {
		res = append(res, jmespath.MustCompile(e))
	}
	return res
}

// Resolution is the outcome of extraction. A nil field did not resolve and
// serializes as null.
type Resolution struct {
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`
}

// Complete reports whether every field resolved.
func (r Resolution) Complete() bool {
	return r.Address != nil && r.City != nil && r.State != nil && r.ZipCode != nil
}

func (r Resolution) missing() []string {
	m := []string{}
	if r.Address == nil {
		m = append(m, "address")
	}
	if r.City == nil {
		m = append(m, "city")
	}
	if r.State == nil {
		m = append(m, "state")
	}
	if r.ZipCode == nil {
		m = append(m, "zipCode")
	}
	return m
}

// MissingFieldsError is returned by Extract when at least one field is
// unresolved. Resolution carries whatever did resolve.
type MissingFieldsError struct {
	Missing    []string
	Resolution Resolution
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Resolve runs every lookup chain against the decoded payload.
func Resolve(payload map[string]any) Resolution {
	// jmespath only walks map[string]interface{} and []interface{}, which is
	// exactly what encoding/json produces.
	var data interface{} = payload
	return Resolution{
		Address: firstUsable(addressSources, data),
		City:    firstUsable(citySources, data),
		State:   firstUsable(stateSources, data),
		ZipCode: firstUsable(zipSources, data),
	}
}

// Extract resolves the payload into a PropertyQuery. It fails as a whole when
// any field is missing.
func Extract(payload map[string]any) (rentcast.PropertyQuery, Resolution, error) {
	r := Resolve(payload)
	if !r.Complete() {
		return rentcast.PropertyQuery{}, r, &MissingFieldsError{Missing: r.missing(), Resolution: r}
	}
	return rentcast.PropertyQuery{
		Address: *r.Address,
		City:    *r.City,
		State:   *r.State,
		ZipCode: *r.ZipCode,
	}, r, nil
}

func firstUsable(sources []*jmespath.JMESPath, data interface{}) *string {
	for _, s := range sources {
		// a search error means an intermediate node had the wrong shape
		// (e.g. "contact" is a string); that source simply has no value
		v, err := s.Search(data)
		if err != nil {
			continue
		}
		if sv, ok := usable(v); ok {
			return &sv
		}
	}
	return nil
}

// usable converts a looked-up JSON value to the string sent upstream. Empty
// strings, zero, null, booleans and containers are not usable.
func usable(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		if t == 0 || math.IsNaN(t) || math.IsInf(t, 0) {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		f, err := t.Float64()
		if err != nil || f == 0 {
			return "", false
		}
		return t.String(), true
	default:
		return "", false
	}
}
