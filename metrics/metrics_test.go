package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	t.Parallel()

	m := New()
	m.Attempt("IOC", "rejected")
	m.Attempt("FOK", "rejected")
	m.Attempt("RETURN", "accepted")
	m.Execution("filled")
	m.LotSize(0.2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.attempts.WithLabelValues("IOC", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.attempts.WithLabelValues("RETURN", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.executions.WithLabelValues("filled")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.attempts))
}

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.Attempt("IOC", "accepted")
		m.Execution("filled")
		m.LotSize(1)
	})
}

func TestHandler(t *testing.T) {
	t.Parallel()

	m := New()
	m.Execution("exhausted")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `fxtrigger_executions_total{result="exhausted"} 1`)
}
