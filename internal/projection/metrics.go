package projection

import "github.com/prometheus/client_golang/prometheus"

var cacheRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "calculation_cache_requests_total",
		Help: "How many calculations were requested, partitioned by cache hit or miss.",
	},
	[]string{"result"},
)

var sweptCalculations = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "calculation_cache_swept_total",
		Help: "How many expired calculations were deleted by the sweeper.",
	},
)

// Collectors returns the Prometheus collectors of the package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		cacheRequests,
		sweptCalculations,
	}
}
