package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coursehub_catalog_cache_hits_total",
		Help: "Catalog cache hits, partitioned by view.",
	}, []string{"view"})

	catalogCacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coursehub_catalog_cache_misses_total",
		Help: "Catalog cache misses, partitioned by view.",
	}, []string{"view"})

	enrollmentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coursehub_enrollments_total",
		Help: "Successful course enrollments.",
	})

	unenrollmentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coursehub_unenrollments_total",
		Help: "Successful course unenrollments.",
	})
)

// IncListHit records a cache hit on a course list view.
func IncListHit() { catalogCacheHits.WithLabelValues("list").Inc() }

// IncListMiss records a cache miss on a course list view.
func IncListMiss() { catalogCacheMisses.WithLabelValues("list").Inc() }

// IncDetailHit records a cache hit on a course detail view.
func IncDetailHit() { catalogCacheHits.WithLabelValues("detail").Inc() }

// IncDetailMiss records a cache miss on a course detail view.
func IncDetailMiss() { catalogCacheMisses.WithLabelValues("detail").Inc() }

// IncEnrollments records a successful enrollment.
func IncEnrollments() { enrollmentsTotal.Inc() }

// IncUnenrollments records a successful unenrollment.
func IncUnenrollments() { unenrollmentsTotal.Inc() }
