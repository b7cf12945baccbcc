package catalog

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/rezkam/catalog/internal/domain"
)

const instrumentationName = "github.com/rezkam/catalog/internal/application/catalog"

// operations counts catalog operations by kind, operation and outcome.
type operations struct {
	counter metric.Int64Counter
}

func newOperations(meter metric.Meter) *operations {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}
	counter, err := meter.Int64Counter("catalog.operations",
		metric.WithDescription("Catalog operations by kind, operation and outcome"),
		metric.WithUnit("{operation}"))
	if err != nil {
		// The API returns a usable no-op instrument alongside the error.
		slog.Warn("failed to create catalog.operations counter", "error", err)
	}
	return &operations{counter: counter}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrMoveBoundary):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrCheatExists):
		return "conflict"
	default:
		return "error"
	}
}

func (o *operations) record(ctx context.Context, kind, op string, err error) {
	if o == nil || o.counter == nil {
		return
	}
	o.counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("op", op),
		attribute.String("outcome", outcome(err)),
	))
}
