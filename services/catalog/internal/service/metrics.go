package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_records_loaded",
		Help: "Number of SKU records in the active catalog snapshot.",
	})

	catalogGroups = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_groups_loaded",
		Help: "Number of product groups in the active catalog snapshot.",
	})

	catalogReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_reloads_total",
		Help: "Catalog reload attempts by result.",
	}, []string{"result"})

	catalogReloadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_reload_duration_seconds",
		Help:    "Time spent loading and indexing the catalog.",
		Buckets: prometheus.DefBuckets,
	})

	catalogLastReload = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_last_reload_timestamp_seconds",
		Help: "Unix time of the last successful reload.",
	})
)
