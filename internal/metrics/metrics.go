package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wifiwarden/internal/detect"
)

// Metrics exposes the window counters and alert totals as Prometheus series.
type Metrics struct {
	registry *prometheus.Registry

	framesObserved *prometheus.CounterVec
	alertsTotal    *prometheus.CounterVec
	uniqueAddrs    prometheus.Gauge
	windowsTotal   prometheus.Counter
}

// New builds and registers the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		framesObserved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wifiwarden_frames_total",
			Help: "Management frames observed, by classification",
		}, []string{"class"}),
		alertsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wifiwarden_alerts_total",
			Help: "Alerts emitted, by kind",
		}, []string{"kind"}),
		uniqueAddrs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wifiwarden_unique_addresses",
			Help: "Unique source addresses seen in the last window",
		}),
		windowsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wifiwarden_windows_total",
			Help: "Detection windows evaluated",
		}),
	}
	m.registry.MustRegister(m.framesObserved, m.alertsTotal, m.uniqueAddrs, m.windowsTotal)
	return m
}

// ObserveWindow records one closed detection window. Wired as the evaluator's
// window sink. Alerts are counted separately through ObserveAlert so evil-twin
// findings, which bypass the window path, are not missed.
func (m *Metrics) ObserveWindow(summary detect.WindowSummary, _ []detect.Alert) {
	m.framesObserved.WithLabelValues("deauth").Add(float64(summary.Deauth))
	m.framesObserved.WithLabelValues("beacon").Add(float64(summary.Beacon))
	m.framesObserved.WithLabelValues("probe").Add(float64(summary.Probe))
	m.framesObserved.WithLabelValues("hidden_ssid").Add(float64(summary.Hidden))
	m.uniqueAddrs.Set(float64(summary.UniqueAddresses))
	m.windowsTotal.Inc()
}

// ObserveAlert counts one emitted alert. Wired as the alert log sink.
func (m *Metrics) ObserveAlert(alert detect.Alert) {
	m.alertsTotal.WithLabelValues(string(alert.Kind)).Inc()
}

// Serve exposes /metrics on addr. Blocks; run in a goroutine.
func (m *Metrics) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	return http.ListenAndServe(addr, mux)
}
