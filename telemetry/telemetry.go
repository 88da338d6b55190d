package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"photoshare-api/config"
	"photoshare-api/logging"
)

const instrumentationName = "photoshare-api"

var (
	tracer trace.Tracer

	instrumentsOnce   sync.Once
	reactionCounter   metric.Int64Counter
	friendshipCounter metric.Int64Counter
)

// Init initializes OpenTelemetry with Jaeger and Prometheus exporters
func Init(cfg *config.TelemetryConfig) (func(), error) {
	if !cfg.Enabled {
		logging.GetLogger().Info("Telemetry disabled")
		return func() {}, nil
	}

	ctx := context.Background()

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var shutdownFuncs []func(context.Context) error

	if cfg.JaegerURL != "" {
		jaegerExporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerURL)))
		if err != nil {
			return nil, fmt.Errorf("failed to create Jaeger exporter: %w", err)
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(jaegerExporter),
			sdktrace.WithResource(res),
		)

		otel.SetTracerProvider(tp)
		shutdownFuncs = append(shutdownFuncs, tp.Shutdown)

		logging.GetLogger().Info("Jaeger exporter initialized", zap.String("url", cfg.JaegerURL))
	}

	if cfg.PrometheusEnabled {
		exporter, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(exporter),
			sdkmetric.WithResource(res),
		)

		otel.SetMeterProvider(mp)
		shutdownFuncs = append(shutdownFuncs, mp.Shutdown)

		logging.GetLogger().Info("Prometheus exporter initialized")
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	tracer = otel.Tracer(cfg.ServiceName)

	shutdown := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		for _, fn := range shutdownFuncs {
			if err := fn(shutdownCtx); err != nil {
				logging.GetLogger().Error("Error shutting down telemetry", zap.Error(err))
			}
		}
	}

	return shutdown, nil
}

// Tracer returns the global tracer
func Tracer() trace.Tracer {
	if tracer == nil {
		return otel.Tracer(instrumentationName)
	}
	return tracer
}

// StartSpan starts a new span
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, opts...)
}

// MetricsHandler serves the Prometheus registry the exporter writes to.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

func initInstruments() {
	meter := otel.Meter(instrumentationName)

	var err error
	reactionCounter, err = meter.Int64Counter("photoshare.reactions",
		metric.WithDescription("Reaction mutations by action and type"))
	if err != nil {
		logging.GetLogger().Warn("Failed to create reaction counter", zap.Error(err))
	}
	friendshipCounter, err = meter.Int64Counter("photoshare.friendships",
		metric.WithDescription("Friendship transitions by status"))
	if err != nil {
		logging.GetLogger().Warn("Failed to create friendship counter", zap.Error(err))
	}
}

// RecordReaction counts one reaction mutation.
func RecordReaction(ctx context.Context, action, reactionType string) {
	instrumentsOnce.Do(initInstruments)
	if reactionCounter == nil {
		return
	}
	reactionCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("type", reactionType),
	))
}

// RecordFriendship counts one friendship transition.
func RecordFriendship(ctx context.Context, status string) {
	instrumentsOnce.Do(initInstruments)
	if friendshipCounter == nil {
		return
	}
	friendshipCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}
