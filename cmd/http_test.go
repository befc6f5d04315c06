package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostARV(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/get-arv", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		if string(b) != `{"address":"x"}` {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false}`))
			return
		}
		w.Write([]byte(`{"success":true}`))
	}))
	defer ts.Close()
	hc := getDefaultHTTPClient(time.Second)

	b, err := PostARV(context.Background(), hc, ts.URL+"/", []byte(`{"address":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"success":true}`, string(b))

	b, err = PostARV(context.Background(), hc, ts.URL, []byte(`{}`))
	require.Error(t, err)
	assert.Equal(t, `{"success":false}`, string(b))
}
