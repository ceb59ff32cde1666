package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	c := New()
	c.Record(http.MethodGet, "/api/employees", 200, 15*time.Millisecond)
	c.Record(http.MethodPost, "/api/employees", 429, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", "/api/employees", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rateLimited))
}

func TestOperationsAndHandler(t *testing.T) {
	c := New()
	c.Operation("create", "ok")
	c.Operation("create", "ok")
	c.DateCoerced("workHistory")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.operations.WithLabelValues("create", "ok")))

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "employee_onboarding_profile_operations_total")
	assert.Contains(t, rec.Body.String(), `child="workHistory"`)
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.Record("GET", "/", 200, time.Millisecond)
		c.Operation("delete", "error")
		c.DateCoerced("education")
	})
}
