package generator

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/spacemeshos/go-txfactory/metrics"
)

const subsystem = "generator"

var (
	generated = metrics.NewCounter(
		"generated_total",
		subsystem,
		"number of produced extrinsics",
		[]string{"step"},
	)

	blocks = metrics.NewCounter(
		"blocks_total",
		subsystem,
		"number of blocks sealed by workers",
		[]string{},
	).WithLabelValues()

	keyLookups = metrics.NewCounter(
		"key_cache_total",
		subsystem,
		"lookups in derived keys cache",
		[]string{"outcome"},
	)
	keyCacheHits   = keyLookups.WithLabelValues("hit")
	keyCacheMisses = keyLookups.WithLabelValues("miss")

	sinkLatency = metrics.NewHistogramWithBuckets(
		"sink_write_seconds",
		subsystem,
		"time to write a block of extrinsics to the sink",
		[]string{},
		prometheus.ExponentialBuckets(1e-5, 4, 10),
	).WithLabelValues()
)
