package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marcelsud/formie-filemaker/filemaker"
	"github.com/marcelsud/formie-filemaker/report/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	byName := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			byName[m.Name] = m
		}
	}
	return byName
}

func TestOTelExporter_RecordOperation(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	oe, err := newExporter(nil, reader)
	require.NoError(t, err)

	oe.RecordOperation(ctx, filemaker.OpSendPayload, true, 120*time.Millisecond)
	oe.RecordOperation(ctx, filemaker.OpSendPayload, true, 80*time.Millisecond)
	oe.RecordOperation(ctx, filemaker.OpSendPayload, false, time.Second)

	got := collect(t, reader)

	ops, ok := got["filemaker.operations"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	counts := make(map[string]int64)
	for _, dp := range ops.DataPoints {
		outcome, _ := dp.Attributes.Value(attribute.Key("outcome"))
		op, _ := dp.Attributes.Value(attribute.Key("operation"))
		assert.Equal(t, "send_payload", op.AsString())
		counts[outcome.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"success": 2, "failure": 1}, counts)

	hist, ok := got["filemaker.operation.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var total uint64
	for _, dp := range hist.DataPoints {
		total += dp.Count
	}
	assert.Equal(t, uint64(3), total)

	_, hasGauge := got["filemaker.reports"]
	assert.False(t, hasGauge)
}

func TestOTelExporter_RecordAuthFailure(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	oe, err := newExporter(nil, reader)
	require.NoError(t, err)

	oe.RecordAuthFailure(context.Background(), filemaker.AuthTokenMissing)

	failures, ok := collect(t, reader)["filemaker.auth.failures"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, failures.DataPoints, 1)
	kind, _ := failures.DataPoints[0].Attributes.Value(attribute.Key("error.kind"))
	assert.Equal(t, "auth_token_missing", kind.AsString())
	assert.Equal(t, int64(1), failures.DataPoints[0].Value)
}

func TestOTelExporter_ReportsGauge(t *testing.T) {
	t.Run("observes stored report counts", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("CountByKind", mock.Anything).Return(map[string]int64{"webhook_transport": 3}, nil)

		reader := sdkmetric.NewManualReader()
		_, err := newExporter(NewReportCollector(repo), reader)
		require.NoError(t, err)

		gauge, ok := collect(t, reader)["filemaker.reports"].Data.(metricdata.Gauge[int64])
		require.True(t, ok)
		require.Len(t, gauge.DataPoints, 1)
		assert.Equal(t, int64(3), gauge.DataPoints[0].Value)
	})

	t.Run("collector error skips the gauge", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("CountByKind", mock.Anything).Return(nil, errors.New("redis down"))

		reader := sdkmetric.NewManualReader()
		_, err := newExporter(NewReportCollector(repo), reader)
		require.NoError(t, err)

		var rm metricdata.ResourceMetrics
		_ = reader.Collect(context.Background(), &rm)
		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				if m.Name != "filemaker.reports" {
					continue
				}
				gauge, _ := m.Data.(metricdata.Gauge[int64])
				assert.Empty(t, gauge.DataPoints)
			}
		}
	})
}

func TestReportCollector_Collect(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	t.Run("sums counts", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("CountByKind", ctx).Return(map[string]int64{"auth_transport": 2, "response_parse": 1}, nil).Once()

		c := NewReportCollector(repo)
		c.now = func() time.Time { return now }

		m, err := c.Collect(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), m.Total)
		assert.Equal(t, now, m.Timestamp)
		assert.Len(t, m.ReportCounts, 2)
	})

	t.Run("error wrapped", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("CountByKind", ctx).Return(nil, errors.New("redis down")).Once()

		_, err := NewReportCollector(repo).Collect(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting report counts")
	})
}
