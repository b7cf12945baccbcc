// Package observability sets up OpenTelemetry tracing, metrics and logging.
//
// Exporters speak OTLP over gRPC and are configured through the standard
// OTEL_EXPORTER_OTLP_* environment variables. When disabled, providers are
// created without exporters and logs go to stdout as JSON.
package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	// DefaultServiceName is used when Config.ServiceName is empty.
	DefaultServiceName = "catalog"

	exportTimeout = 10 * time.Second
)

// Config holds observability configuration.
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
}

func (c Config) serviceName() string {
	if c.ServiceName == "" {
		return DefaultServiceName
	}
	return c.ServiceName
}

// parseOTLPHeaders parses OTEL_EXPORTER_OTLP_HEADERS and URL-decodes values.
// Some backends hand out headers URL-encoded (e.g. Basic%20token).
func parseOTLPHeaders(raw string) map[string]string {
	if raw == "" {
		return nil
	}

	headers := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if decoded, err := url.QueryUnescape(value); err == nil {
			value = decoded
		}
		headers[strings.TrimSpace(key)] = value
	}
	return headers
}

// newResource merges the service attributes with the SDK defaults and
// OTEL_RESOURCE_ATTRIBUTES. Partial resources are non-fatal.
func newResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	attrs := []resource.Option{
		resource.WithFromEnv(),
		resource.WithSchemaURL(semconv.SchemaURL),
		resource.WithAttributes(semconv.ServiceName(cfg.serviceName())),
	}
	if cfg.ServiceVersion != "" {
		attrs = append(attrs, resource.WithAttributes(semconv.ServiceVersion(cfg.ServiceVersion)))
	}
	serviceResource, err := resource.New(ctx, attrs...)
	if err != nil {
		return nil, fmt.Errorf("failed to create service resource: %w", err)
	}

	res, err := resource.Merge(resource.Default(), serviceResource)
	if err != nil {
		if errors.Is(err, resource.ErrPartialResource) || errors.Is(err, resource.ErrSchemaURLConflict) {
			return res, nil
		}
		return nil, fmt.Errorf("failed to merge resources: %w", err)
	}
	return res, nil
}

// InitTracerProvider installs the global tracer provider and the W3C
// trace context and baggage propagators.
func InitTracerProvider(ctx context.Context, cfg Config) (*sdktrace.TracerProvider, error) {
	if !cfg.Enabled {
		tp := sdktrace.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return tp, nil
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithTimeout(exportTimeout)}
	if headers := parseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")); headers != nil {
		opts = append(opts, otlptracegrpc.WithHeaders(headers))
	}
	// Exporters get a background context so shutdown does not hang on a
	// cancelled startup context.
	exporter, err := otlptracegrpc.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp, nil
}

// InitMeterProvider installs the global meter provider.
func InitMeterProvider(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	if !cfg.Enabled {
		mp := sdkmetric.NewMeterProvider()
		otel.SetMeterProvider(mp)
		return mp, nil
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithTimeout(exportTimeout)}
	if headers := parseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")); headers != nil {
		opts = append(opts, otlpmetricgrpc.WithHeaders(headers))
	}
	exporter, err := otlpmetricgrpc.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(15*time.Second))),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// InitLogger returns a logger provider and a slog logger bridged to it.
// When disabled the logger writes JSON to stdout.
func InitLogger(ctx context.Context, cfg Config) (*log.LoggerProvider, *slog.Logger, error) {
	if !cfg.Enabled {
		return log.NewLoggerProvider(), slog.New(slog.NewJSONHandler(os.Stdout, nil)), nil
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := []otlploggrpc.Option{otlploggrpc.WithTimeout(exportTimeout)}
	if headers := parseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")); headers != nil {
		opts = append(opts, otlploggrpc.WithHeaders(headers))
	}
	exporter, err := otlploggrpc.New(context.Background(), opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create log exporter: %w", err)
	}

	lp := log.NewLoggerProvider(
		log.WithProcessor(log.NewBatchProcessor(exporter, log.WithExportTimeout(5*time.Second))),
		log.WithResource(res),
	)
	logger := otelslog.NewLogger(cfg.serviceName(), otelslog.WithLoggerProvider(lp))
	return lp, logger, nil
}

// Providers groups the providers created by Setup.
type Providers struct {
	Tracer *sdktrace.TracerProvider
	Meter  *sdkmetric.MeterProvider
	Logger *log.LoggerProvider
}

// Setup initializes tracing, metrics and logging and installs the logger as
// the slog default.
func Setup(ctx context.Context, cfg Config) (*Providers, error) {
	tp, err := InitTracerProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}
	mp, err := InitMeterProvider(ctx, cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("failed to initialize meter: %w", err)
	}
	lp, logger, err := InitLogger(ctx, cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	slog.SetDefault(logger)
	return &Providers{Tracer: tp, Meter: mp, Logger: lp}, nil
}

// Shutdown flushes and stops every provider.
func (p *Providers) Shutdown(ctx context.Context) error {
	return errors.Join(
		p.Tracer.Shutdown(ctx),
		p.Meter.Shutdown(ctx),
		p.Logger.Shutdown(ctx),
	)
}
