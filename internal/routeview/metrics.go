package routeview

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeLoaded    = "loaded"
	outcomeFailed    = "failed"
	outcomeDiscarded = "discarded"
)

// Metrics counts view fetch outcomes.
type Metrics struct {
	fetches  *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics registers the view collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "route_view_fetches_total",
				Help: "Route configuration fetches issued by views, by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "route_view_fetch_duration_seconds",
			Help:    "Time from mount until the route configuration fetch settled.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{m.fetches, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}
