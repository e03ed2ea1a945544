package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/marcelsud/formie-filemaker/filemaker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "formie-filemaker"

// OTelExporter records dispatcher outcomes as OpenTelemetry instruments and
// exposes them in Prometheus format. It implements filemaker.Recorder.
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector

	meter        metric.Meter
	operations   metric.Int64Counter
	duration     metric.Float64Histogram
	authFailures metric.Int64Counter
	reportsGauge metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	oe, err := newExporter(collector, exporter)
	if err != nil {
		return nil, err
	}
	otel.SetMeterProvider(oe.meterProvider)
	return oe, nil
}

func newExporter(collector Collector, reader sdkmetric.Reader) (*OTelExporter, error) {
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		meter: meterProvider.Meter(
			meterName,
			metric.WithInstrumentationVersion("1.0.0"),
		),
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}
	return oe, nil
}

func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.operations, err = oe.meter.Int64Counter(
		"filemaker.operations",
		metric.WithDescription("Integration operations by outcome"),
		metric.WithUnit("{operations}"),
	)
	if err != nil {
		return fmt.Errorf("creating operations counter: %w", err)
	}

	oe.duration, err = oe.meter.Float64Histogram(
		"filemaker.operation.duration",
		metric.WithDescription("Duration of integration operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("creating duration histogram: %w", err)
	}

	oe.authFailures, err = oe.meter.Int64Counter(
		"filemaker.auth.failures",
		metric.WithDescription("Failed token requests by error kind"),
		metric.WithUnit("{failures}"),
	)
	if err != nil {
		return fmt.Errorf("creating auth failures counter: %w", err)
	}

	if oe.collector == nil {
		return nil
	}
	oe.reportsGauge, err = oe.meter.Int64ObservableGauge(
		"filemaker.reports",
		metric.WithDescription("Number of stored error reports by kind"),
		metric.WithUnit("{reports}"),
		metric.WithInt64Callback(oe.observeReports),
	)
	if err != nil {
		return fmt.Errorf("creating reports gauge: %w", err)
	}
	return nil
}

// RecordOperation implements filemaker.Recorder
func (oe *OTelExporter) RecordOperation(ctx context.Context, operation string, ok bool, duration time.Duration) {
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	)
	oe.operations.Add(ctx, 1, attrs)
	oe.duration.Record(ctx, duration.Seconds(), attrs)
}

// RecordAuthFailure implements filemaker.Recorder
func (oe *OTelExporter) RecordAuthFailure(ctx context.Context, kind filemaker.ErrorKind) {
	oe.authFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("error.kind", kind.String()),
	))
}

// observeReports is a callback that reports stored failures by kind
func (oe *OTelExporter) observeReports(ctx context.Context, observer metric.Int64Observer) error {
	counts, err := oe.collector.GetReportCounts(ctx)
	if err != nil {
		return err
	}

	for kind, n := range counts {
		observer.Observe(n, metric.WithAttributes(
			attribute.String("error.kind", kind),
		))
	}
	return nil
}

// ServeHTTP serves Prometheus-formatted metrics on the given HTTP handler
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.Handler()
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
