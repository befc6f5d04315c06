package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/brojonat/arv-relay/rentcast"
)

// RunWorkerFunc is a general purpose entry point for running cancelable
// periodic worker functions on some interval. Callers simply supply an interval
// and their worker function. The first run happens immediately.
func RunWorkerFunc(
	ctx context.Context,
	logger *slog.Logger,
	interval time.Duration,
	f func(context.Context, *slog.Logger),
) error {
	f(ctx, logger)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			f(ctx, logger)
		case <-ctx.Done():
			logger.Info("worker context cancelled, returning context err")
			return ctx.Err()
		}
	}
}

// MakeProbeWorkerFunc returns a worker that checks RentCast connectivity and
// credentials with the sample property and logs the outcome.
func MakeProbeWorkerFunc(c rentcast.Client) func(context.Context, *slog.Logger) {
	f := func(ctx context.Context, l *slog.Logger) {
		l.Info("running rentcast probe")
		pr := rentcast.Probe(ctx, c)
		if !pr.Success {
			l.Error("rentcast probe failed", "status", pr.StatusCode, "error", pr.Error, "data", pr.Data)
			return
		}
		l.Info("rentcast probe ok", "status", pr.StatusCode)
	}
	return f
}
