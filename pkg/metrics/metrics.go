// Package metrics exposes Prometheus counters for the share-link flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LinksGenerated counts generated share links by terminal mode
	// ("inline" or "reference").
	LinksGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dutchpay_links_generated_total",
		Help: "Share links generated, by persistence mode",
	}, []string{"mode"})

	// StoreFailures counts failed store-by-reference attempts that fell
	// back to inline encoding.
	StoreFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dutchpay_payload_store_failures_total",
		Help: "Failed payload store attempts",
	})

	// PayloadFetches counts fetch-by-id results ("hit", "cache_hit",
	// "not_found", "error").
	PayloadFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dutchpay_payload_fetches_total",
		Help: "Payload fetches by id, by result",
	}, []string{"result"})
)
