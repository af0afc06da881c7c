// Package metrics defines all custom Prometheus metrics for the face
// enrollment service. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "faceenroll"

// EnrollmentsTotal counts enrollment attempts by terminal result.
// Label:
//   - result: "created", "duplicate_face", "duplicate_phone",
//     "validation_error", "image_error", or "error"
var EnrollmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_total",
		Help:      "Total number of enrollment attempts, by result.",
	},
	[]string{"result"},
)

// EnrollmentDuration measures how long one enrollment attempt takes,
// including the full duplicate scan.
// Label:
//   - result: same values as EnrollmentsTotal
var EnrollmentDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "enrollment_duration_seconds",
		Help:      "Duration of enrollment attempts including the duplicate scan.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{"result"},
)

// ComparatorChecksTotal counts individual face comparisons during duplicate
// scans.
// Label:
//   - result: "match", "no_match", or "error" (per-pair failures are
//     non-fatal to the scan but still counted here)
var ComparatorChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comparator_checks_total",
		Help:      "Total number of face comparison calls, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
