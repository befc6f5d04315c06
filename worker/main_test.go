package worker

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brojonat/arv-relay/rentcast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWorkerFuncRunsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var n atomic.Int32
	f := func(context.Context, *slog.Logger) {
		if n.Add(1) == 3 {
			cancel()
		}
	}

	err := RunWorkerFunc(ctx, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), time.Millisecond, f)
	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, n.Load(), int32(3))
}

func TestMakeProbeWorkerFuncLogsOutcome(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
		w.Write([]byte(`{"price":1}`))
	}))
	defer ts.Close()
	c := rentcast.NewClient(rentcast.Config{BaseURL: ts.URL, Timeout: time.Second})
	f := MakeProbeWorkerFunc(c)

	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil))
	f(context.Background(), l)
	require.Contains(t, buf.String(), "rentcast probe ok")

	buf.Reset()
	status.Store(http.StatusForbidden)
	f(context.Background(), l)
	assert.Contains(t, buf.String(), "rentcast probe failed")
	assert.Contains(t, buf.String(), `"status":403`)
}
