package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector() *Collector {
	reg := prometheus.NewRegistry()
	return NewCollector(reg, reg)
}

func TestCollector_AlertGenerated(t *testing.T) {
	c := newTestCollector()

	c.AlertGenerated(4)
	c.AlertGenerated(4)
	c.AlertGenerated(1)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.alertsGenerated.WithLabelValues("4")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.alertsGenerated.WithLabelValues("1")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.alertsGenerated.WithLabelValues("2")))
}

func TestCollector_StatusChanged(t *testing.T) {
	c := newTestCollector()

	c.StatusChanged("resuelta", true)
	c.StatusChanged("resuelta", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.statusChanges.WithLabelValues("resuelta", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.statusChanges.WithLabelValues("resuelta", "error")))
}

func TestCollector_RecordRequest(t *testing.T) {
	c := newTestCollector()

	c.RecordRequest("GET", "/api/alertas", 200, 15*time.Millisecond)
	c.RecordRequest("GET", "/api/alertas", 404, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("GET", "/api/alertas", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("GET", "/api/alertas", "4xx")))
}

func TestCollector_Handler(t *testing.T) {
	c := newTestCollector()
	c.AlertGenerated(3)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `safealert_alertas_generadas_total{prioridad="3"} 1`)
}

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, "2xx", classifyStatus(201))
	assert.Equal(t, "3xx", classifyStatus(304))
	assert.Equal(t, "4xx", classifyStatus(405))
	assert.Equal(t, "5xx", classifyStatus(503))
	assert.Equal(t, "unknown", classifyStatus(99))
}
