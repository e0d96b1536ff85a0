package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "toolbox.kvstore"

const (
	resultOK       = "ok"
	resultNotFound = "not_found"
	resultError    = "error"
)

// InstrumentedBackend records the count and latency of every backend
// operation, labeled by operation and result.
type InstrumentedBackend struct {
	next       Backend
	operations metric.Int64Counter
	duration   metric.Float64Histogram
}

// NewInstrumentedBackend wraps next. A nil meter uses the global meter
// provider.
func NewInstrumentedBackend(next Backend, meter metric.Meter) (*InstrumentedBackend, error) {
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(meterName)
	}
	operations, err := meter.Int64Counter(
		"toolbox_kvstore_operations_total",
		metric.WithDescription("Key-value store operations by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("kvstore: init operations counter: %w", err)
	}
	duration, err := meter.Float64Histogram(
		"toolbox_kvstore_operation_duration_seconds",
		metric.WithDescription("Latency of key-value store operations"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1),
	)
	if err != nil {
		return nil, fmt.Errorf("kvstore: init duration histogram: %w", err)
	}
	return &InstrumentedBackend{next: next, operations: operations, duration: duration}, nil
}

func (b *InstrumentedBackend) record(ctx context.Context, op string, start time.Time, err error) {
	result := resultOK
	switch {
	case errors.Is(err, ErrNotFound):
		result = resultNotFound
	case err != nil:
		result = resultError
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("result", result),
	)
	b.operations.Add(ctx, 1, attrs)
	b.duration.Record(ctx, time.Since(start).Seconds(), attrs)
}

func (b *InstrumentedBackend) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	v, err := b.next.Get(ctx, key)
	b.record(ctx, "get", start, err)
	return v, err
}

func (b *InstrumentedBackend) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := b.next.Set(ctx, key, value)
	b.record(ctx, "set", start, err)
	return err
}

func (b *InstrumentedBackend) SetNX(ctx context.Context, key string, value []byte) (bool, error) {
	start := time.Now()
	ok, err := b.next.SetNX(ctx, key, value)
	b.record(ctx, "setnx", start, err)
	return ok, err
}

func (b *InstrumentedBackend) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := b.next.Delete(ctx, key)
	b.record(ctx, "delete", start, err)
	return err
}

func (b *InstrumentedBackend) Clear(ctx context.Context) error {
	start := time.Now()
	err := b.next.Clear(ctx)
	b.record(ctx, "clear", start, err)
	return err
}

func (b *InstrumentedBackend) Close() error {
	return b.next.Close()
}
