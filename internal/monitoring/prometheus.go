package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "calm"

// PrometheusCollectors holds the service collectors on a private registry.
type PrometheusCollectors struct {
	Registry         *prometheus.Registry
	Assessments      *prometheus.CounterVec
	DegradedDefaults *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

// NewPrometheusCollectors registers the service collectors plus the Go
// runtime and process collectors.
func NewPrometheusCollectors() *PrometheusCollectors {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &PrometheusCollectors{
		Registry: reg,
		Assessments: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Scored assessments by primary archetype and confidence tier.",
		}, []string{"archetype", "confidence"}),
		DegradedDefaults: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_defaults_total",
			Help:      "Context fields replaced by a default during cost estimation.",
		}, []string{"field"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (p *PrometheusCollectors) observeHTTP(method, route string, statusCode int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	p.RequestDuration.WithLabelValues(method, route, strconv.Itoa(statusCode)).Observe(duration.Seconds())
}

// Handler exposes the registry in the text exposition format
func (p *PrometheusCollectors) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
