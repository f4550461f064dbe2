// Package metrics exposes Prometheus collectors for page builds.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Chart outcomes.
const (
	OutcomeShown   = "shown"
	OutcomeEmpty   = "empty"
	OutcomeSkipped = "skipped"
)

var (
	chartsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flightplots",
			Name:      "charts_total",
			Help:      "Charts considered during page builds, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	pageBuildSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "flightplots",
			Name:      "page_build_seconds",
			Help:      "Chart page build latency in seconds.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)

	toggleClicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "flightplots",
			Name:      "param_toggle_clicks_total",
			Help:      "Parameter-change toggle clicks.",
		},
	)
)

// Register attaches flightplots collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		chartsTotal,
		pageBuildSeconds,
		toggleClicksTotal,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObservePageBuild records a page build duration and its chart outcomes.
func ObservePageBuild(duration time.Duration, shown, empty, skipped int) {
	chartsTotal.WithLabelValues(OutcomeShown).Add(float64(shown))
	chartsTotal.WithLabelValues(OutcomeEmpty).Add(float64(empty))
	chartsTotal.WithLabelValues(OutcomeSkipped).Add(float64(skipped))
	if duration < 0 {
		duration = 0
	}
	pageBuildSeconds.Observe(duration.Seconds())
}

// ObserveToggleClick counts one parameter toggle click.
func ObserveToggleClick() {
	toggleClicksTotal.Inc()
}
