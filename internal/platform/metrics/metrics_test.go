package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.AuditsTotal.WithLabelValues(OutcomeSuccess).Inc()
	m.AuditDuration.Observe(1.5)
	m.LinkChecks.WithLabelValues("broken").Add(2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `aeo_audits_total{outcome="success"} 1`)
	assert.Contains(t, body, "aeo_audit_duration_seconds_count 1")
	assert.Contains(t, body, `aeo_link_checks_total{result="broken"} 2`)
	assert.Contains(t, body, "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.AuditsTotal.WithLabelValues(OutcomeError).Inc()

	assert.InDelta(t, 1, testutil.ToFloat64(a.AuditsTotal.WithLabelValues(OutcomeError)), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.AuditsTotal.WithLabelValues(OutcomeError)), 0)
}
