package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the trends service
type Metrics struct {
	TrendingQueries   *prometheus.CounterVec
	QueryDuration     *prometheus.HistogramVec
	SecretsIngested   prometheus.Counter
	SnapshotRefreshes prometheus.Counter
}

// New creates and registers the service metrics on the default registry
func New() *Metrics {
	return &Metrics{
		TrendingQueries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "supasecret_trending_queries_total",
			Help: "Trending API queries by endpoint and status",
		}, []string{"endpoint", "status"}),
		QueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "supasecret_query_duration_seconds",
			Help:    "Trending API query duration by endpoint",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		SecretsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "supasecret_secrets_ingested_total",
			Help: "Secrets ingested from the feed",
		}),
		SnapshotRefreshes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "supasecret_snapshot_refreshes_total",
			Help: "Debounced trending snapshot recomputations",
		}),
	}
}
