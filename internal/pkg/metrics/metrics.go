// Package metrics exposes Prometheus collectors for attendance, leave and
// payroll events and for the HTTP layer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "officehr"

// ─── Attendance ─────────────────────────────────────────────────────────────

// CheckIns counts recorded check-ins by classified status.
var CheckIns = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "attendance",
	Name:      "check_ins_total",
	Help:      "Total check-ins by status (present, late).",
}, []string{"status"})

// CheckOuts counts completed check-outs.
var CheckOuts = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "attendance",
	Name:      "check_outs_total",
	Help:      "Total completed check-outs.",
})

// AbsencesMarked counts absent records created by absent marking.
var AbsencesMarked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "attendance",
	Name:      "absences_marked_total",
	Help:      "Total absent records created.",
})

// ─── Leave ──────────────────────────────────────────────────────────────────

// LeaveDecisions counts approvals and rejections by leave type.
var LeaveDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "leave",
	Name:      "decisions_total",
	Help:      "Total leave decisions by outcome and leave type.",
}, []string{"decision", "leave_type"})

// ─── Payroll ────────────────────────────────────────────────────────────────

// SalariesGenerated counts generated salary records.
var SalariesGenerated = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "payroll",
	Name:      "salaries_generated_total",
	Help:      "Total salary records generated.",
})

// SalariesPaid counts salary records marked paid.
var SalariesPaid = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "payroll",
	Name:      "salaries_paid_total",
	Help:      "Total salary records marked paid.",
})

// ─── HTTP ───────────────────────────────────────────────────────────────────

// RequestDuration tracks handler latency by route pattern.
var RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency by method, route and status code.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route", "code"})

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records RequestDuration. The route label is the chi pattern so
// path parameters do not explode the label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		RequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
