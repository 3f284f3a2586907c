package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BuildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vendorrisk_build_info",
		Help: "Build information of the vendor risk engine",
	}, []string{"version", "commit", "date"})

	RecordsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vendorrisk_records_loaded", Help: "Delivery records held by the record store.",
	})

	ReportsBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vendorrisk_reports_built_total", Help: "Risk reports built, by result.",
	}, []string{"result"})
	EmptyViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vendorrisk_empty_views_total", Help: "Filter selections that matched no delivery records.",
	})
	DrillDowns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vendorrisk_drilldowns_total", Help: "Vendor distributions estimated.",
	})
	ReportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vendorrisk_report_duration_seconds",
		Help:    "Time to filter, aggregate and estimate one report.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})

	ReportCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vendorrisk_report_cache_lookups_total", Help: "Dashboard report cache lookups, by outcome.",
	}, []string{"outcome"})
)
