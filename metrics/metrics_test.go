package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollectorExposesRecordedMetrics(t *testing.T) {
	collector := NewPrometheusCollector()

	collector.RecordProvisioning(PathOAuth, OutcomeCreated)
	collector.RecordProvisioning(PathOAuth, OutcomeExisting)
	collector.RecordProvisioning(PathRegister, OutcomeFailed)
	collector.RecordProvisioningDuration(150 * time.Millisecond)
	collector.RecordLogin("success")

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `teamspace_provisioning_total{outcome="created",path="oauth"} 1`)
	assert.Contains(t, body, `teamspace_provisioning_total{outcome="existing",path="oauth"} 1`)
	assert.Contains(t, body, `teamspace_provisioning_total{outcome="failed",path="register"} 1`)
	assert.Contains(t, body, `teamspace_logins_total{outcome="success"} 1`)
	assert.Contains(t, body, "teamspace_provisioning_duration_seconds_count 1")
}

func TestCollectorsAreIndependent(t *testing.T) {
	first := NewPrometheusCollector()
	second := NewPrometheusCollector()

	first.RecordLogin("success")

	rec := httptest.NewRecorder()
	second.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.NotContains(t, rec.Body.String(), `teamspace_logins_total{outcome="success"} 1`)
}
