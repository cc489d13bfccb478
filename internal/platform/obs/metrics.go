package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LegLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flightroute_leg_lookups_total",
		Help: "Leg price lookups by outcome (hit, fetched, unavailable)",
	}, []string{"outcome"})
	FareRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flightroute_fare_requests_total",
		Help: "Requests sent to the fare API by HTTP status class",
	}, []string{"status"})
	FareRequestDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "flightroute_fare_request_duration_ms",
		Help:    "Fare API call duration in milliseconds",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 15000},
	})
	RateLimitWaitMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "flightroute_rate_limit_wait_ms",
		Help:    "Time callers spent blocked on the fare API rate limiter",
		Buckets: []float64{0, 10, 50, 100, 250, 500, 1000, 2000},
	})
	SearchPermutationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "flightroute_search_permutations_total",
		Help: "Stop orderings evaluated by route searches",
	})
	SearchDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "flightroute_search_duration_ms",
		Help:    "Route search duration in milliseconds",
		Buckets: []float64{10, 100, 500, 1000, 5000, 10000, 30000, 60000, 120000},
	})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flightroute_http_requests_total",
		Help: "Inbound HTTP requests by method and status",
	}, []string{"method", "status"})
)

func init() {
	prometheus.MustRegister(LegLookupsTotal)
	prometheus.MustRegister(FareRequestsTotal)
	prometheus.MustRegister(FareRequestDurationMs)
	prometheus.MustRegister(RateLimitWaitMs)
	prometheus.MustRegister(SearchPermutationsTotal)
	prometheus.MustRegister(SearchDurationMs)
	prometheus.MustRegister(HTTPRequestsTotal)
}

// MetricsHandler exposes registered metrics for Prometheus scraping.
func MetricsHandler() http.Handler { return promhttp.Handler() }
