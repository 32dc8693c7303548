package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart mutation and persistence outcomes.
type CartMetrics struct {
	mutations      *prometheus.CounterVec
	persistFailure prometheus.Counter
	persistLatency prometheus.Histogram
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations applied, labelled by operation.",
	}, []string{"op"})
	persistFailure := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_persist_failures_total",
		Help: "Write-through persistence failures.",
	})
	persistLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cart_persist_duration_seconds",
		Help:    "Duration of cart blob writes in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(mutations, persistFailure, persistLatency)
	return &CartMetrics{
		mutations:      mutations,
		persistFailure: persistFailure,
		persistLatency: persistLatency,
	}
}

// IncMutation increments the mutation counter for the named operation.
func (c *CartMetrics) IncMutation(op string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncPersistFailure counts a failed write-through.
func (c *CartMetrics) IncPersistFailure() {
	if c == nil || c.persistFailure == nil {
		return
	}
	c.persistFailure.Inc()
}

// ObservePersistDuration records the latency of one blob write.
func (c *CartMetrics) ObservePersistDuration(duration time.Duration) {
	if c == nil || c.persistLatency == nil {
		return
	}
	c.persistLatency.Observe(duration.Seconds())
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
