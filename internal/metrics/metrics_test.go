package metrics_test

import (
	"testing"
	"time"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()

	appMetrics := metrics.NewMetrics(reg)

	require.NotNil(t, appMetrics)
	appMetrics.EmployeesCreated.Inc()
	assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.EmployeesCreated), 0)
}

func TestObserveQuery(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)

	appMetrics.ObserveQuery("find_all", time.Now().Add(-time.Millisecond))

	assert.Equal(t, 1, testutil.CollectAndCount(appMetrics.DBQueryDuration, "hestia_db_query_duration_seconds"))
}

func TestNewMetrics_DoubleRegistrationPanics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_ = metrics.NewMetrics(reg)

	assert.Panics(t, func() {
		_ = metrics.NewMetrics(reg)
	})
}
