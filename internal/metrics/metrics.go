// ABOUTME: Prometheus counters for console activity
// ABOUTME: A nil *Metrics is valid and records nothing

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the console's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	mutations  *prometheus.CounterVec
	rejections *prometheus.CounterVec
	mounts     *prometheus.CounterVec
	workspaces prometheus.Gauge
	logins     *prometheus.CounterVec
}

// New registers the console collectors plus Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tymex_console_record_mutations_total",
			Help: "Committed record changes by screen and action",
		}, []string{"screen", "action"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tymex_console_validation_failures_total",
			Help: "Dialog submissions rejected by validation",
		}, []string{"screen"}),
		mounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tymex_console_screen_mounts_total",
			Help: "Screens mounted from seed data",
		}, []string{"screen"}),
		workspaces: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tymex_console_workspaces",
			Help: "Live browser workspaces",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tymex_console_logins_total",
			Help: "Session logins by method",
		}, []string{"method"}),
	}

	m.registry.MustRegister(
		m.mutations, m.rejections, m.mounts, m.workspaces, m.logins,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveMutation(screen, action string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(screen, action).Inc()
}

func (m *Metrics) ObserveRejection(screen string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(screen).Inc()
}

func (m *Metrics) ObserveMount(screen string) {
	if m == nil {
		return
	}
	m.mounts.WithLabelValues(screen).Inc()
}

func (m *Metrics) ObserveLogin(method string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(method).Inc()
}

func (m *Metrics) SetWorkspaces(n int) {
	if m == nil {
		return
	}
	m.workspaces.Set(float64(n))
}
