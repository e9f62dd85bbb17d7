package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	StoresCreated     prometheus.Counter
	ReviewsCreated    prometheus.Counter
	GeocodeUnresolved prometheus.Counter
	HTTPRequests      *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		StoresCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aremaru_stores_created_total",
			Help: "Total number of stores registered",
		}),
		ReviewsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aremaru_reviews_created_total",
			Help: "Total number of reviews posted",
		}),
		GeocodeUnresolved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aremaru_geocode_unresolved_total",
			Help: "Total number of store addresses that could not be geocoded",
		}),
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aremaru_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
	}
}
