// Package observability wires the structured logger, tracer provider,
// Prometheus registry, and the metrics/health HTTP endpoint.
package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config controls observability initialization.
type Config struct {
	ServiceName    string
	Environment    string
	Version        string
	MetricsAddress string // empty disables the metrics endpoint
	OTLPEndpoint   string // empty disables tracing export
	OTLPInsecure   bool
	SampleRate     float64
}

// ReadyFunc reports process readiness for the health endpoint.
type ReadyFunc func() bool

// Observability bundles the logger, tracer provider and metrics registry.
type Observability struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	Registry       *prometheus.Registry

	server   *http.Server
	shutdown func(context.Context) error
}

// Init builds the observability stack. The metrics server is started in the
// background when MetricsAddress is set; ready feeds /healthz.
func Init(ctx context.Context, cfg Config, ready ReadyFunc) (*Observability, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevelFromEnv(),
	})).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)

	obs := &Observability{
		Logger:         logger,
		TracerProvider: noop.NewTracerProvider(),
		Registry:       prometheus.NewRegistry(),
		shutdown:       func(context.Context) error { return nil },
	}
	obs.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if cfg.OTLPEndpoint != "" {
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.OTLPEndpoint)}
		if cfg.OTLPInsecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		exporter, err := otlptracehttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
		}
		res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.Version),
			semconv.DeploymentEnvironment(cfg.Environment),
		))
		if err != nil {
			return nil, fmt.Errorf("failed to build trace resource: %w", err)
		}
		sampleRate := cfg.SampleRate
		if sampleRate <= 0 {
			sampleRate = 0.1
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate))),
		)
		obs.TracerProvider = tp
		obs.shutdown = tp.Shutdown
	}

	if cfg.MetricsAddress != "" {
		r := chi.NewRouter()
		r.Use(chimiddleware.Recoverer)
		r.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			if ready != nil && !ready() {
				http.Error(w, "starting", http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})

		obs.server = &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := obs.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server stopped", slog.Any("error", err))
			}
		}()
	}

	return obs, nil
}

// Close flushes traces and stops the metrics server.
func (o *Observability) Close(ctx context.Context) error {
	var firstErr error
	if o.server != nil {
		if err := o.server.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if err := o.shutdown(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func logLevelFromEnv() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
