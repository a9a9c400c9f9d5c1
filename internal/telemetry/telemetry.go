package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Telemetry holds the app's metric instruments. A zero Telemetry (or a nil
// pointer) records nothing. Exercise server requests are measured by otelhttp
// on the same meter provider.
type Telemetry struct {
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter

	downloadsTotal   metric.Int64Counter
	downloadsActive  metric.Int64UpDownCounter
	downloadDuration metric.Float64Histogram

	pollsTotal       metric.Int64Counter
	batchesCompleted metric.Int64Counter
}

// Config holds telemetry configuration.
type Config struct {
	Enabled     bool
	ServiceName string
}

// New creates a new telemetry instance backed by a Prometheus exporter.
func New(cfg Config) (*Telemetry, error) {
	if !cfg.Enabled {
		return &Telemetry{}, nil
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	otel.SetMeterProvider(meterProvider)

	t := &Telemetry{
		meterProvider: meterProvider,
		meter:         meterProvider.Meter(cfg.ServiceName),
	}

	if err := t.initializeMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	if err := runtime.Start(runtime.WithMeterProvider(meterProvider)); err != nil {
		return nil, fmt.Errorf("failed to start runtime metrics: %w", err)
	}

	return t, nil
}

func (t *Telemetry) initializeMetrics() error {
	var err error

	if t.downloadsTotal, err = t.meter.Int64Counter("downloads_total",
		metric.WithDescription("Finished downloads by final status")); err != nil {
		return err
	}

	if t.downloadsActive, err = t.meter.Int64UpDownCounter("downloads_active",
		metric.WithDescription("Transfers currently running")); err != nil {
		return err
	}

	if t.downloadDuration, err = t.meter.Float64Histogram("download_duration_seconds",
		metric.WithDescription("Time from first attempt to final status"),
		metric.WithUnit("s")); err != nil {
		return err
	}

	if t.pollsTotal, err = t.meter.Int64Counter("progress_polls_total",
		metric.WithDescription("Download-status polls by outcome")); err != nil {
		return err
	}

	if t.batchesCompleted, err = t.meter.Int64Counter("download_batches_completed_total",
		metric.WithDescription("Download batches that reached overall completion")); err != nil {
		return err
	}

	return nil
}

// Enabled reports whether metrics are being recorded.
func (t *Telemetry) Enabled() bool {
	return t != nil && t.meterProvider != nil
}

// MeterProvider returns the provider backing the instruments, nil when disabled.
func (t *Telemetry) MeterProvider() *sdkmetric.MeterProvider {
	if !t.Enabled() {
		return nil
	}
	return t.meterProvider
}

// Handler returns the Prometheus scrape handler.
func (t *Telemetry) Handler() http.Handler {
	return promhttp.Handler()
}

// Shutdown flushes and stops the meter provider.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if !t.Enabled() {
		return nil
	}
	return t.meterProvider.Shutdown(ctx)
}

// RecordDownload records a download reaching its final status.
func (t *Telemetry) RecordDownload(status string, duration time.Duration) {
	if !t.Enabled() {
		return
	}

	attrs := metric.WithAttributes(attribute.String("status", status))
	t.downloadsTotal.Add(context.Background(), 1, attrs)
	t.downloadDuration.Record(context.Background(), duration.Seconds(), attrs)
}

// IncrementActiveDownloads increments the running transfers gauge.
func (t *Telemetry) IncrementActiveDownloads() {
	if t.Enabled() {
		t.downloadsActive.Add(context.Background(), 1)
	}
}

// DecrementActiveDownloads decrements the running transfers gauge.
func (t *Telemetry) DecrementActiveDownloads() {
	if t.Enabled() {
		t.downloadsActive.Add(context.Background(), -1)
	}
}

// RecordPoll records one status poll; outcome is "ok" or "error".
func (t *Telemetry) RecordPoll(outcome string) {
	if t.Enabled() {
		t.pollsTotal.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

// RecordBatchCompleted records a batch reaching overall completion.
func (t *Telemetry) RecordBatchCompleted(size int) {
	if t.Enabled() {
		t.batchesCompleted.Add(context.Background(), 1,
			metric.WithAttributes(attribute.Int("size", size)))
	}
}
