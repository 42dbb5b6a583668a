// Package telemetry wires OpenTelemetry tracing, metrics and logs plus
// Pyroscope continuous profiling.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"github.com/grafana/pyroscope-go"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pimify/backend/internal/infrastructure/config"
)

const (
	serviceVersion  = "1.0.0"
	metricsInterval = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Providers owns every telemetry pipeline started for the process.
// The zero value (telemetry disabled) is usable and every method is a no-op.
type Providers struct {
	cfg      config.TelemetryConfig
	logger   *zap.Logger
	tracer   *sdktrace.TracerProvider
	meter    *sdkmetric.MeterProvider
	logs     *sdklog.LoggerProvider
	profiler *pyroscope.Profiler
}

// Setup starts the pipelines enabled in cfg and registers them as the
// global OpenTelemetry providers.
func Setup(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*Providers, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Providers{cfg: cfg, logger: logger}
	if !cfg.Enabled {
		logger.Info("Telemetry disabled")
		return p, nil
	}

	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	if err := p.startTracing(ctx, res); err != nil {
		return nil, err
	}
	if cfg.MetricsEnabled {
		if err := p.startMetrics(ctx, res); err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
	}
	if cfg.LogsEnabled {
		if err := p.startLogs(ctx, res); err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
	}
	if cfg.ProfilingEnabled {
		if err := p.startProfiler(); err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
	}

	logger.Info("Telemetry initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Float64("sampling_ratio", cfg.SamplingRatio),
		zap.Bool("metrics", cfg.MetricsEnabled),
		zap.Bool("logs", cfg.LogsEnabled),
		zap.Bool("profiling", cfg.ProfilingEnabled),
	)
	return p, nil
}

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// Sampler maps a ratio onto the matching sdk sampler.
func Sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.AlwaysSample()
	case ratio <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}

func (p *Providers) startTracing(ctx context.Context, res *resource.Resource) error {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(p.cfg.CollectorEndpoint)}
	if p.cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	p.tracer = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(Sampler(p.cfg.SamplingRatio)),
	)
	otel.SetTracerProvider(p.tracer)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return nil
}

func (p *Providers) startMetrics(ctx context.Context, res *resource.Resource) error {
	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(p.cfg.CollectorEndpoint)}
	if p.cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create OTLP metric exporter: %w", err)
	}

	p.meter = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(metricsInterval))),
	)
	otel.SetMeterProvider(p.meter)
	return nil
}

func (p *Providers) startLogs(ctx context.Context, res *resource.Resource) error {
	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(p.cfg.CollectorEndpoint)}
	if p.cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create OTLP logs exporter: %w", err)
	}

	p.logs = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)
	global.SetLoggerProvider(p.logs)
	return nil
}

func (p *Providers) startProfiler() error {
	if p.cfg.PyroscopeAddress == "" {
		return errors.New("pyroscope address is required when profiling is enabled")
	}

	tags := map[string]string{}
	if hostname, err := os.Hostname(); err == nil {
		tags["hostname"] = hostname
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: p.cfg.ServiceName,
		ServerAddress:   p.cfg.PyroscopeAddress,
		Logger:          pyroscopeLogger{p.logger.Sugar()},
		Tags:            tags,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start pyroscope profiler: %w", err)
	}
	p.profiler = profiler

	// span_id labels link CPU samples to traces; needs the profiler running first
	if p.tracer != nil {
		otel.SetTracerProvider(otelpyroscope.NewTracerProvider(p.tracer))
	}
	return nil
}

// Logger returns base teed into the OTLP logs pipeline when it is running.
func (p *Providers) Logger(base *zap.Logger) *zap.Logger {
	if p == nil || p.logs == nil {
		return base
	}
	otelCore := otelzap.NewCore(p.cfg.ServiceName, otelzap.WithLoggerProvider(p.logs))
	return base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, otelCore)
	}))
}

// Enabled reports whether any pipeline is running.
func (p *Providers) Enabled() bool {
	return p != nil && (p.tracer != nil || p.meter != nil || p.logs != nil || p.profiler != nil)
}

// Shutdown flushes and stops every running pipeline.
func (p *Providers) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var errs []error
	if p.profiler != nil {
		errs = append(errs, p.profiler.Stop())
		p.profiler = nil
	}
	if p.tracer != nil {
		errs = append(errs, p.tracer.Shutdown(ctx))
		p.tracer = nil
	}
	if p.meter != nil {
		errs = append(errs, p.meter.Shutdown(ctx))
		p.meter = nil
	}
	if p.logs != nil {
		errs = append(errs, p.logs.Shutdown(ctx))
		p.logs = nil
	}
	if err := errors.Join(errs...); err != nil {
		p.logger.Error("Telemetry shutdown failed", zap.Error(err))
		return err
	}
	return nil
}

type pyroscopeLogger struct {
	s *zap.SugaredLogger
}

func (l pyroscopeLogger) Infof(format string, args ...any)  { l.s.Debugf(format, args...) }
func (l pyroscopeLogger) Debugf(format string, args ...any) { l.s.Debugf(format, args...) }
func (l pyroscopeLogger) Errorf(format string, args ...any) { l.s.Errorf(format, args...) }
