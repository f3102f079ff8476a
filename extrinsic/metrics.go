package extrinsic

import "github.com/spacemeshos/go-txfactory/metrics"

const subsystem = "extrinsic"

var (
	signingPayloads = metrics.NewCounter(
		"signing_payloads_total",
		subsystem,
		"number of signed payloads by the way they were signed",
		[]string{"input"},
	)
	rawPayloads    = signingPayloads.WithLabelValues("raw")
	hashedPayloads = signingPayloads.WithLabelValues("hashed")

	signDuration = metrics.NewHistogramWithBuckets(
		"sign_duration_seconds",
		subsystem,
		"time to sign an extrinsic including the round trip check",
		[]string{},
		metrics.DurationBuckets,
	).WithLabelValues()
)
