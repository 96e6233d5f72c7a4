package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Операции кэша результатов (метка op).
const (
	OpHit         = "hit"
	OpMiss        = "miss"
	OpStale       = "stale"
	OpCorrupt     = "corrupt"
	OpEvicted     = "evicted"
	OpEvictFailed = "evict_failed"
)

// Исходы вызова order_find (метка outcome).
const (
	OutcomeOK             = "ok"
	OutcomeAPIError       = "api_error"
	OutcomeTransportError = "transport_error"
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Result cache operations",
		},
		[]string{"op"}, // hit|miss|stale|corrupt|evicted|evict_failed
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of entries in the result cache namespace after the last eviction pass",
		},
	)
)

var (
	OrderSearchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_search_requests_total",
			Help: "Calls to the remote order_find operation",
		},
		[]string{"outcome"},
	)
	OrderSearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_search_request_duration_seconds",
			Help:    "Latency of order_find calls",
			Buckets: prometheus.DefBuckets,
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в глобальном реестре; повторные вызовы ничего не делают.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(CacheOps, CacheSize, OrderSearchRequests, OrderSearchDuration)
	})
}
