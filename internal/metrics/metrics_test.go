package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveCheck(true, nil)
	m.ObserveCheck(false, nil)
	m.ObserveCheck(false, errors.New("db down"))
	m.ObserveIncrement(nil)
	m.ObserveIncrement(errors.New("db down"))
	m.ObserveSubscription("checkout", nil)
	m.ObserveHTTP("/functions/v1/check-usage", http.MethodPost, http.StatusOK, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.usageChecks.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.usageChecks.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.quotaExhausted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.usageIncrements.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.usageIncrements.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.subscription.WithLabelValues("checkout", "ok")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.httpDuration))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveCheck(true, nil)
		m.ObserveIncrement(nil)
		m.ObserveSubscription("check", nil)
		m.ObserveHTTP("/", http.MethodGet, http.StatusOK, time.Millisecond)
	})
}
