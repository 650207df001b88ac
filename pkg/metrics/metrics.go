package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ledmatrix/pkg/proto"
)

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// Metrics observes both single transfers and whole broadcasts.
type Metrics struct {
	Devices   prometheus.Gauge
	Results   *prometheus.CounterVec   // labels: op, result
	Transfers *prometheus.CounterVec   // labels: cmd, result
	Bytes     prometheus.Counter
	Latency   *prometheus.HistogramVec // labels: cmd
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Devices: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ledmatrix_devices",
			Help: "LED matrix panels found by the last discovery.",
		}),
		Results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledmatrix_operations_total",
			Help: "Per-device broadcast outcomes.",
		}, []string{"op", "result"}),
		Transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledmatrix_transfers_total",
			Help: "Serial frame transfers by command.",
		}, []string{"cmd", "result"}),
		Bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledmatrix_bytes_sent_total",
			Help: "Bytes written to panels.",
		}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledmatrix_transfer_seconds",
			Help:    "Open, write and close time of one frame.",
			Buckets: []float64{.001, .0025, .005, .01, .02, .05, .1},
		}, []string{"cmd"}),
	}

	reg.MustRegister(m.Devices, m.Results, m.Transfers, m.Bytes, m.Latency)
	return m
}

func (m *Metrics) ObserveDevices(n int) {
	m.Devices.Set(float64(n))
}

func (m *Metrics) ObserveResult(op, _ string, err error) {
	m.Results.WithLabelValues(op, result(err)).Inc()
}

func (m *Metrics) ObserveTransfer(_ string, code proto.Code, n int, cost time.Duration, err error) {
	m.Transfers.WithLabelValues(code.String(), result(err)).Inc()
	m.Bytes.Add(float64(n))
	m.Latency.WithLabelValues(code.String()).Observe(cost.Seconds())
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case proto.IsPermissionDenied(err):
		return "permission_denied"
	default:
		return "error"
	}
}
