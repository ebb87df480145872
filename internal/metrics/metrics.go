// Package metrics exposes run counters as Prometheus metrics plus a small
// health snapshot for the /health endpoint.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ItemsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vetwatch_items_processed_total",
		Help: "Raw items examined by the event assembler.",
	})
	ItemsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vetwatch_items_dropped_total",
		Help: "Raw items dropped because no country or disease resolved.",
	})
	DuplicatesFiltered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vetwatch_duplicates_filtered_total",
		Help: "Raw items suppressed by the seen-set.",
	})
	EventsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vetwatch_events_emitted_total",
		Help: "New events produced across runs.",
	})
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vetwatch_messages_sent_total",
		Help: "Messages delivered to the notification channel.",
	})
	SourceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vetwatch_source_failures_total",
		Help: "Fetch failures per source adapter.",
	}, []string{"source"})
	SeenSetSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vetwatch_seen_set_size",
		Help: "Fingerprints held in the persisted seen-set.",
	})
	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vetwatch_run_duration_seconds",
		Help:    "Wall time of one monitoring run.",
		Buckets: prometheus.DefBuckets,
	})
)

// Health tracks the last run outcome for the /health endpoint.
type Health struct {
	mu sync.RWMutex

	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Health{IsHealthy: true}

func (h *Health) SetLastRun() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastRunTime = time.Now()
	h.IsHealthy = true
}

func (h *Health) SetError(err string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastError = err
	h.LastErrorTime = time.Now()
	h.IsHealthy = false
}

func (h *Health) Snapshot() map[string]interface{} {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return map[string]interface{}{
		"last_run_time":   h.LastRunTime.Format(time.RFC3339),
		"last_error_time": h.LastErrorTime.Format(time.RFC3339),
		"last_error":      h.LastError,
		"is_healthy":      h.IsHealthy,
	}
}
