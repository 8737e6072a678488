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

func TestRecordCacheLookup(t *testing.T) {
	before := testutil.ToFloat64(cacheLookups.WithLabelValues("7d", "hit"))
	RecordCacheLookup("7d", true)
	RecordCacheLookup("7d", false)
	assert.Equal(t, before+1, testutil.ToFloat64(cacheLookups.WithLabelValues("7d", "hit")))
}

func TestSetCachedSeries(t *testing.T) {
	SetCachedSeries(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(cachedSeries))
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordTick("ethereum-usd-coin")
	ObserveHTTP(http.MethodGet, "/api/tokens", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "pricechart_feed_ticks_total")
	assert.Contains(t, body, "pricechart_http_requests_total")
}
