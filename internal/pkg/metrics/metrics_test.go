package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.CollectAndCount(RequestDuration)

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	// Three different paths share one series
	assert.Equal(t, before+1, testutil.CollectAndCount(RequestDuration))
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(CheckIns.WithLabelValues("late"))
	CheckIns.WithLabelValues("late").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(CheckIns.WithLabelValues("late")))

	before = testutil.ToFloat64(SalariesPaid)
	SalariesPaid.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(SalariesPaid))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	SalariesGenerated.Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "officehr_payroll_salaries_generated_total"))
}
