package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "driverbox_submissions_total",
			Help: "Receipt and occurrence submissions by outcome",
		},
		[]string{"kind", "outcome"},
	)

	ValidationRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "driverbox_validation_rejected_total",
			Help: "Form submissions rejected locally, by missing field",
		},
		[]string{"kind", "field"},
	)

	CameraPermissionDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "driverbox_camera_permission_denied_total",
			Help: "Camera open attempts refused by the device",
		},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "driverbox_active_sessions",
			Help: "Driver sessions held in memory",
		},
	)

	StoredSubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "driverbox_stored_submissions_total",
			Help: "Submissions persisted by the worker",
		},
		[]string{"kind"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "driverbox_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)
)

// Register registers every collector on reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		SubmissionsTotal,
		ValidationRejectedTotal,
		CameraPermissionDeniedTotal,
		ActiveSessions,
		StoredSubmissionsTotal,
		HTTPRequestDuration,
	)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Instrument records request duration. route must be a low-cardinality name.
func Instrument(route func(r *http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			HTTPRequestDuration.
				WithLabelValues(route(r), r.Method, strconv.Itoa(sw.status)).
				Observe(time.Since(start).Seconds())
		})
	}
}
