package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Enrollments counts enrollment attempts by outcome
	// (created, duplicate_face, duplicate_email, no_face, error)
	Enrollments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventface",
		Name:      "enrollments_total",
		Help:      "Total number of enrollment attempts by outcome",
	}, []string{"outcome"})

	// Verifications counts verification attempts by outcome
	// (matched, no_match, no_enrollments, no_face, error)
	Verifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventface",
		Name:      "verifications_total",
		Help:      "Total number of verification attempts by outcome",
	}, []string{"outcome"})

	FacesDetected = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "eventface",
		Name:      "faces_per_image",
		Help:      "Number of faces the detector found per uploaded image",
		Buckets:   []float64{0, 1, 2, 3, 5, 8},
	})

	DetectionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eventface",
		Name:      "detection_duration_seconds",
		Help:      "Duration of face detector calls",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{"detector"})

	MatchingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eventface",
		Name:      "matching_duration_seconds",
		Help:      "Duration of in-memory descriptor comparison",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
	}, []string{"operation"})

	RecordsCompared = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eventface",
		Name:      "records_compared",
		Help:      "Number of enrolled records loaded for one comparison",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	}, []string{"operation"})

	EventLocksHeld = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "eventface",
		Name:      "event_locks_held",
		Help:      "Number of events with an enrollment lock currently held or awaited",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eventface",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
