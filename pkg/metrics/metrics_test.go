package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, "test")

	m.ObserveHTTPRequest("GET", "/api/v1/x", 200, 10*time.Millisecond)
	m.ObserveDBQuery("select", nil, time.Millisecond)
	m.ObserveDBQuery("insert", errors.New("boom"), time.Millisecond)
	m.SetDBPoolStats("postgres", 5, 2, 3)
	m.ObserveAdmission("admitted")
	m.ObserveAdmission("admitted")
	m.ObserveTransition("pending", "confirmed")
	m.ObserveRateLimited("/api/v1/x")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.admissionsTotal.WithLabelValues("admitted")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.dbQueriesTotal.WithLabelValues("insert", "error")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.dbInUse.WithLabelValues("postgres")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
	m.ObserveDBQuery("select", nil, time.Millisecond)
	m.SetDBPoolStats("postgres", 1, 1, 0)
	m.ObserveAdmission("admitted")
	m.ObserveTransition("pending", "cancelled")
	m.ObserveRateLimited("/")
}
