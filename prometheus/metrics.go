// Package prometheus exports crawl progress as Prometheus metrics.
package prometheus

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/bfscrawl"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ensure Metrics implements bfscrawl.Observer at compile time.
var _ bfscrawl.Observer = (*Metrics)(nil)

// Metrics is a crawl observer backed by its own registry, so several
// crawls in one process do not share counters.
type Metrics struct {
	registry *prometheus.Registry

	pagesVisited  *prometheus.CounterVec
	fetchFailures *prometheus.CounterVec
	linksAdmitted *prometheus.CounterVec
	linksRejected *prometheus.CounterVec
	level         prometheus.Gauge
}

// NewMetrics creates the crawl collectors on a new registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		pagesVisited: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bfscrawl_pages_visited_total",
				Help: "Total number of pages popped from the frontier and fetched, labeled by host.",
			},
			[]string{"host"},
		),
		fetchFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bfscrawl_fetch_failures_total",
				Help: "Total number of page fetches that failed, labeled by host.",
			},
			[]string{"host"},
		),
		linksAdmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bfscrawl_links_admitted_total",
				Help: "Total number of links admitted to the frontier, labeled by BFS level.",
			},
			[]string{"level"},
		),
		linksRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bfscrawl_links_rejected_total",
				Help: "Total number of links rejected by admission, labeled by reason.",
			},
			[]string{"reason"},
		),
		level: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bfscrawl_level",
				Help: "BFS level currently being crawled.",
			},
		),
	}
	for _, reason := range bfscrawl.Reasons {
		m.linksRejected.WithLabelValues(string(reason))
	}
	return m
}

// Registry returns the registry holding the crawl collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) LevelStarted(level int) {
	m.level.Set(float64(level))
}

func (m *Metrics) PageVisited(rawURL string, _ int) {
	m.pagesVisited.WithLabelValues(SanitizeHost(rawURL)).Inc()
}

func (m *Metrics) FetchFailed(rawURL string, _ error) {
	m.fetchFailures.WithLabelValues(SanitizeHost(rawURL)).Inc()
}

func (m *Metrics) LinkAdmitted(_ string, level int) {
	m.linksAdmitted.WithLabelValues(fmt.Sprint(level)).Inc()
}

func (m *Metrics) LinkRejected(reason bfscrawl.Reason) {
	m.linksRejected.WithLabelValues(string(reason)).Inc()
}

// WriteTextfile writes the current metrics in the text exposition format,
// for collection by a node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// SanitizeHost extracts a lowercase hostname from a URL.
// It returns "unknown" if the URL is invalid.
func SanitizeHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.ToLower(u.Hostname())
}
