package metrics

import (
	"context"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

var (
	pushRetries      = 3
	pushRetryWaitMin = 500 * time.Millisecond
)

// A wrapper around zap.Logger to make it compatible with
// retryablehttp.LeveledLogger interface.
type retryableHTTPLogger struct {
	inner *zap.Logger
}

func (r retryableHTTPLogger) Error(format string, args ...any) {
	r.inner.Sugar().Errorw(format, args...)
}

func (r retryableHTTPLogger) Info(format string, args ...any) {
	r.inner.Sugar().Infow(format, args...)
}

func (r retryableHTTPLogger) Warn(format string, args ...any) {
	r.inner.Sugar().Warnw(format, args...)
}

func (r retryableHTTPLogger) Debug(format string, args ...any) {
	r.inner.Sugar().Debugw(format, args...)
}

// StartPushingMetrics pushes metrics to the gateway at url every period
// until ctx is canceled. Metrics are grouped by the run identifier.
// A final push is made on cancellation, so short runs are not lost.
func StartPushingMetrics(ctx context.Context, url string, period time.Duration, runID string, logger *zap.Logger) <-chan struct{} {
	client := &retryablehttp.Client{
		RetryMax:     pushRetries,
		RetryWaitMin: pushRetryWaitMin,
		RetryWaitMax: 2 * pushRetryWaitMin,
		Backoff:      retryablehttp.LinearJitterBackoff,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
		Logger:       retryableHTTPLogger{inner: logger},
	}
	pusher := push.New(url, Namespace).
		Client(client.StandardClient()).
		Gatherer(prometheus.DefaultGatherer).
		Grouping("run", runID)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				if err := pusher.Push(); err != nil {
					logger.Warn("failed to push metrics", zap.Error(err))
				}
				return
			case <-ticker.C:
				if err := pusher.Push(); err != nil {
					logger.Warn("failed to push metrics", zap.Error(err))
				}
			}
		}
	}()
	return done
}
