// Package observability holds the Prometheus collectors of the exporter.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	platformQueryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "health_exporter",
		Subsystem: "store",
		Name:      "platform_query_duration_seconds",
		Help:      "Time spent serving one platform query against the health store.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"kind", "outcome"})

	queriesStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "health_exporter",
		Subsystem: "query",
		Name:      "started_total",
		Help:      "Number of sample queries moved to QUERYING.",
	})

	queriesCompleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "health_exporter",
		Subsystem: "query",
		Name:      "completed_total",
		Help:      "Number of sample queries that reached DONE, labeled by outcome.",
	}, []string{"outcome"})

	objectsIngested = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "health_exporter",
		Subsystem: "aggregator",
		Name:      "objects_total",
		Help:      "Raw health objects fed to aggregators, labeled by whether they were kept.",
	}, []string{"status"})

	mailResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "health_exporter",
		Subsystem: "mail",
		Name:      "results_total",
		Help:      "Report mail outcomes.",
	}, []string{"result"})

	eventsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "health_exporter",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Export events handed to the event publisher, labeled by outcome.",
	}, []string{"type", "outcome"})
)

func init() {
	prometheus.MustRegister(platformQueryDuration, queriesStarted, queriesCompleted, objectsIngested, mailResults, eventsPublished)
}

func ObservePlatformQuery(kind string, d time.Duration, err error) {
	platformQueryDuration.WithLabelValues(kind, outcome(err)).Observe(d.Seconds())
}

func RecordQueryStarted() { queriesStarted.Inc() }

func RecordQueryCompleted(err error) { queriesCompleted.WithLabelValues(outcome(err)).Inc() }

func RecordObjects(kept, skipped int) {
	if kept > 0 {
		objectsIngested.WithLabelValues("kept").Add(float64(kept))
	}
	if skipped > 0 {
		objectsIngested.WithLabelValues("skipped").Add(float64(skipped))
	}
}

func RecordMailResult(result string) { mailResults.WithLabelValues(result).Inc() }

func RecordEvent(eventType string, err error) {
	eventsPublished.WithLabelValues(eventType, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
