// Package metrics exports the bot's Prometheus collectors.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every collector name.
const DefaultNamespace = "paperbot"

// Metrics groups the bot collectors. A nil *Metrics records nothing.
type Metrics struct {
	handled         *prometheus.CounterVec
	handlerDuration *prometheus.HistogramVec
	searches        *prometheus.CounterVec
	papersAdded     prometheus.Counter
	catalogPapers   prometheus.Gauge
	keepAlive       *prometheus.CounterVec
	sends           *prometheus.CounterVec
}

// New registers the bot collectors on reg.
func New(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		handled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "telegram",
			Name:      "updates_handled_total",
			Help:      "Updates handled per handler and status.",
		}, []string{"handler", "status"}),
		handlerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "telegram",
			Name:      "handler_duration_seconds",
			Help:      "Time spent handling one update.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "searches_total",
			Help:      "Search queries by result (hit or miss).",
		}, []string{"result"}),
		papersAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "papers_added_total",
			Help:      "Papers added or replaced through the admin command.",
		}),
		catalogPapers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "papers",
			Help:      "Papers currently in the catalog.",
		}),
		keepAlive: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "keepalive",
			Name:      "pings_total",
			Help:      "Keep-alive pings by result.",
		}, []string{"result"}),
		sends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "telegram",
			Name:      "sends_total",
			Help:      "Outbound messages by action and result.",
		}, []string{"action", "result"}),
	}
	collectors := []prometheus.Collector{
		m.handled, m.handlerDuration, m.searches, m.papersAdded, m.catalogPapers, m.keepAlive, m.sends,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}
	return m, nil
}

// RegisterSessions exposes the number of tracked user sessions.
func RegisterSessions(namespace string, reg prometheus.Registerer, count func() int) error {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "telegram",
		Name:      "sessions",
		Help:      "User sessions held in memory.",
	}, func() float64 { return float64(count()) })
	if err := reg.Register(g); err != nil {
		return fmt.Errorf("metrics: register sessions: %w", err)
	}
	return nil
}

// ObserveHandler records one handled update.
func (m *Metrics) ObserveHandler(handler, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.handled.WithLabelValues(handler, status).Inc()
	m.handlerDuration.WithLabelValues(handler).Observe(d.Seconds())
}

// ObserveSearch records a search and whether it matched anything.
func (m *Metrics) ObserveSearch(results int) {
	if m == nil {
		return
	}
	result := "hit"
	if results == 0 {
		result = "miss"
	}
	m.searches.WithLabelValues(result).Inc()
}

// PaperAdded records an admin insert and the resulting catalog size.
func (m *Metrics) PaperAdded(catalogSize int) {
	if m == nil {
		return
	}
	m.papersAdded.Inc()
	m.catalogPapers.Set(float64(catalogSize))
}

// SetCatalogSize records the catalog size, used after seeding.
func (m *Metrics) SetCatalogSize(n int) {
	if m == nil {
		return
	}
	m.catalogPapers.Set(float64(n))
}

// ObserveKeepAlive records the result of one keep-alive ping.
func (m *Metrics) ObserveKeepAlive(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "fail"
	}
	m.keepAlive.WithLabelValues(result).Inc()
}

// ObserveSend records the outcome of one queued outbound message.
func (m *Metrics) ObserveSend(action, result string) {
	if m == nil {
		return
	}
	m.sends.WithLabelValues(action, result).Inc()
}
