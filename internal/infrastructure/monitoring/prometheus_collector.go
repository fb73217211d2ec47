package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusCollector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	streamsTotal        prometheus.Gauge
	loginsTotal         *prometheus.CounterVec
}

func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "streamvault_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "streamvault_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		}, []string{"method", "path"}),

		streamsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "streamvault_streams_total",
			Help: "Number of stream records in the store",
		}),

		loginsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "streamvault_logins_total",
			Help: "Total number of login attempts",
		}, []string{"outcome"}),
	}
}

func (p *PrometheusCollector) ObserveRequest(method, path string, status int, duration time.Duration) {
	p.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	p.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (p *PrometheusCollector) SetStreamsTotal(n int) {
	p.streamsTotal.Set(float64(n))
}

func (p *PrometheusCollector) RecordLogin(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	p.loginsTotal.WithLabelValues(outcome).Inc()
}
