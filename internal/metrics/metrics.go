package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline metrics
var (
	// ResolutionsTotal counts per-item metadata resolutions by outcome:
	// "resolved" (canonical record found), "fallback" (lookup failed or
	// returned nothing, raw fields used), "skipped" (unknown id class,
	// no lookup attempted).
	ResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "item_resolutions_total",
			Help: "Total number of per-item metadata resolutions by outcome.",
		},
		[]string{"status"},
	)

	// SourceFetchesTotal counts catalog list fetches by source adapter and outcome.
	SourceFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_fetches_total",
			Help: "Total number of catalog list fetches by source and outcome.",
		},
		[]string{"source", "status"},
	)

	// WidgetRequestsTotal counts widget module invocations by outcome.
	WidgetRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "widget_requests_total",
			Help: "Total number of widget module invocations.",
		},
		[]string{"widget", "module", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		ResolutionsTotal,
		SourceFetchesTotal,
		WidgetRequestsTotal,
	)
}
