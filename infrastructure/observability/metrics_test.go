package observability

import (
	"context"
	"testing"
	"time"

	"dahcoins/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumOf(t *testing.T, data metricdata.Aggregation) int64 {
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "expected an int64 sum, got %T", data)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestMetricsProvider_Records(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp, err := NewMetricsProviderWithReader(config.NewTestConfig(), reader)
	require.NoError(t, err)
	defer mp.Shutdown(context.Background())

	mp.RecordCoinsIssued("post_created", 16)
	mp.RecordCoinsIssued("like_given", 2)
	mp.RecordCoinsIssued("like_given", 0)
	mp.RecordEarnBlocked("daily_limit")
	mp.RecordRedemption(ResultFailure, "insufficient_funds")
	mp.RecordStakeTransition("completed", 3)
	mp.RecordHTTPRequest("/wallets/{username}", "GET", 200, 5*time.Millisecond)

	done := mp.MeasureOperation("earnCoins")
	done(ResultSuccess)

	metrics := collect(t, reader)

	assert.Equal(t, int64(18), sumOf(t, metrics[CoinsIssuedTotal]))
	assert.Equal(t, int64(1), sumOf(t, metrics[EarnBlockedTotal]))
	assert.Equal(t, int64(1), sumOf(t, metrics[RedemptionsTotal]))
	assert.Equal(t, int64(3), sumOf(t, metrics[StakeTransitionsTotal]))
	assert.Equal(t, int64(1), sumOf(t, metrics[HTTPRequestsTotal]))
	assert.Equal(t, int64(1), sumOf(t, metrics[OperationsTotal]))
	assert.Contains(t, metrics, OperationDuration)
}

func TestMetricsProvider_DisabledIsSilent(t *testing.T) {
	var nilProvider *MetricsProvider
	assert.NotPanics(t, func() {
		nilProvider.RecordCoinsIssued("post_created", 10)
		nilProvider.MeasureOperation("earnCoins")(ResultSuccess)
	})

	cfg := config.NewTestConfig()
	cfg.OTelEnabled = false
	mp := NewMetricsProvider(cfg)
	require.NoError(t, mp.Initialize(context.Background()))

	assert.NotPanics(t, func() {
		mp.RecordEarnBlocked("cooldown")
		mp.RecordNATSMessagePublished("notification")
	})
}
