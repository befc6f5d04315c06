package webhook

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestExtractPrefersRootLevel(t *testing.T) {
	p := decode(t, `{
		"address": "1 Root St",
		"city": "Rootville",
		"state": "TX",
		"zipCode": "78244",
		"customData": {"address": "2 Custom St", "city": "Customville", "state": "CA", "zipCode": "90001"},
		"contact": {"address1": "3 Contact St", "city": "Contactville", "state": "NY", "postal_code": "10001"}
	}`)

	q, _, err := Extract(p)
	require.NoError(t, err)
	assert.Equal(t, "1 Root St", q.Address)
	assert.Equal(t, "Rootville", q.City)
	assert.Equal(t, "TX", q.State)
	assert.Equal(t, "78244", q.ZipCode)
}

func TestExtractFallbackChains(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    [4]string
	}{
		{
			name:    "custom data",
			payload: `{"customData": {"address": "2 Custom St", "city": "Austin", "state": "TX", "zipCode": "73301"}, "contact": {"address1": "x", "city": "y", "state": "z", "postal_code": "w"}}`,
			want:    [4]string{"2 Custom St", "Austin", "TX", "73301"},
		},
		{
			name:    "standard contact webhook",
			payload: `{"contact": {"address1": "3 Contact St", "city": "Dallas", "state": "TX", "postal_code": "75001"}}`,
			want:    [4]string{"3 Contact St", "Dallas", "TX", "75001"},
		},
		{
			name:    "flat address1 and postal_code",
			payload: `{"address1": "4 Flat St", "city": "Waco", "state": "TX", "postal_code": "76701", "customData": {"zipCode": "11111"}}`,
			want:    [4]string{"4 Flat St", "Waco", "TX", "76701"},
		},
		{
			name:    "contact address1 beats root address1",
			payload: `{"address1": "root", "contact": {"address1": "contact"}, "city": "a", "state": "b", "zipCode": "c"}`,
			want:    [4]string{"contact", "a", "b", "c"},
		},
		{
			name:    "empty values fall through",
			payload: `{"address": "", "city": null, "state": "  ", "zipCode": 0, "customData": {"address": "5 Next St", "city": "Plano", "state": "TX", "zipCode": "75023"}}`,
			want:    [4]string{"5 Next St", "Plano", "TX", "75023"},
		},
		{
			name:    "numeric zip",
			payload: `{"address": "6 Num St", "city": "San Antonio", "state": "TX", "zipCode": 78244}`,
			want:    [4]string{"6 Num St", "San Antonio", "TX", "78244"},
		},
		{
			name:    "non object containers are ignored",
			payload: `{"contact": "nope", "customData": [1, 2], "address": "7 Odd St", "city": "Tyler", "state": "TX", "zipCode": "75701"}`,
			want:    [4]string{"7 Odd St", "Tyler", "TX", "75701"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, _, err := Extract(decode(t, tc.payload))
			require.NoError(t, err)
			assert.Equal(t, tc.want, [4]string{q.Address, q.City, q.State, q.ZipCode})
		})
	}
}

func TestExtractMissingField(t *testing.T) {
	p := decode(t, `{"address": "1 Main St", "customData": {"city": "Austin"}, "contact": {"state": "TX"}}`)

	_, res, err := Extract(p)
	var mfe *MissingFieldsError
	require.ErrorAs(t, err, &mfe)
	assert.Equal(t, []string{"zipCode"}, mfe.Missing)
	assert.False(t, res.Complete())
	require.NotNil(t, res.Address)
	assert.Equal(t, "1 Main St", *res.Address)
	assert.Equal(t, "Austin", *res.City)
	assert.Equal(t, "TX", *res.State)
	assert.Nil(t, res.ZipCode)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"address":"1 Main St","city":"Austin","state":"TX","zipCode":null}`, string(b))
}

func TestExtractEmptyPayload(t *testing.T) {
	_, res, err := Extract(map[string]any{})
	var mfe *MissingFieldsError
	require.ErrorAs(t, err, &mfe)
	assert.Equal(t, []string{"address", "city", "state", "zipCode"}, mfe.Missing)
	assert.Equal(t, Resolution{}, res)
}

func TestUsable(t *testing.T) {
	tests := []struct {
		in   any
		want string
		ok   bool
	}{
		{"abc", "abc", true},
		{" abc ", "abc", true},
		{"", "", false},
		{nil, "", false},
		{0.0, "", false},
		{78244.0, "78244", true},
		{json.Number("05408"), "05408", true},
		{json.Number("0"), "", false},
		{true, "", false},
		{map[string]any{"a": "b"}, "", false},
		{[]any{"a"}, "", false},
	}
	for _, tc := range tests {
		got, ok := usable(tc.in)
		assert.Equal(t, tc.ok, ok, "%v", tc.in)
		assert.Equal(t, tc.want, got, "%v", tc.in)
	}
}
