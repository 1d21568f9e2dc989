package metrics_test

import (
	"net/http/httptest"
	"testing"

	"github.com/larivierec/cloudflare-ddns-sync/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gotest.tools/v3/assert"
)

func TestInitMetrics_Idempotent(t *testing.T) {
	metrics.InitMetrics()
	metrics.InitMetrics()
}

func TestObserveUpdate(t *testing.T) {
	before := testutil.ToFloat64(metrics.DNSUpdates.WithLabelValues(metrics.UpdateSuccess))
	rejected := testutil.ToFloat64(metrics.DNSUpdates.WithLabelValues(metrics.UpdateRejected))

	metrics.ObserveUpdate(metrics.UpdateSuccess)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.DNSUpdates.WithLabelValues(metrics.UpdateSuccess)))
	assert.Equal(t, rejected, testutil.ToFloat64(metrics.DNSUpdates.WithLabelValues(metrics.UpdateRejected)))
	assert.Assert(t, testutil.ToFloat64(metrics.LastUpdate) > 0)
}

func TestIncrementReqs(t *testing.T) {
	before := testutil.ToFloat64(metrics.TotalRequests.WithLabelValues("/health/alive"))
	metrics.IncrementReqs(httptest.NewRequest("GET", "/health/alive", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.TotalRequests.WithLabelValues("/health/alive")))
}
