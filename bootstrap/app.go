package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/maxfl/SelectorFramework/config"
	"github.com/maxfl/SelectorFramework/logger"
	"github.com/maxfl/SelectorFramework/observability"
	"github.com/maxfl/SelectorFramework/pipeline"
	"github.com/maxfl/SelectorFramework/version"
)

// App wires configuration, logging and telemetry around one finite
// pipeline run. Unlike a long-running service, the lifecycle ends when
// the pipeline's readers are exhausted: startup, process, shutdown.
type App struct {
	Cfg      *config.Config
	Registry *pipeline.Registry
	Logger   *logger.Logger

	gracefulTimeout time.Duration
	tracerProvider  *sdktrace.TracerProvider
	meterProvider   *sdkmetric.MeterProvider
}

// New creates an application from a typed config and a factory registry.
// It applies defaults, validates the config, and initializes the logger.
func New(cfg *config.Config, registry *pipeline.Registry) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	logger.Init(cfg.Logging)

	return &App{
		Cfg:             cfg,
		Registry:        registry,
		Logger:          logger.GetGlobalLogger().WithComponent(cfg.Name),
		gracefulTimeout: 15 * time.Second,
	}, nil
}

// Run executes the configured pipeline once: init telemetry, load the
// definition, assemble, process all sources, close. SIGINT/SIGTERM cancel
// the run between cycles.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.startTelemetry(ctx); err != nil {
		return err
	}
	defer a.stopTelemetry()

	loader := pipeline.NewFileDefinitionLoader(a.Cfg.Pipeline.Dirs...)
	def, err := loader.Load(a.Cfg.Pipeline.Definition)
	if err != nil {
		return fmt.Errorf("loading definition %q: %w", a.Cfg.Pipeline.Definition, err)
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(a.Logger.WithComponent("pipeline")),
	}
	if a.meterProvider != nil {
		metrics, err := observability.NewMetrics(observability.Meter(a.Cfg.Name))
		if err != nil {
			return fmt.Errorf("creating metrics: %w", err)
		}
		opts = append(opts, pipeline.WithMetrics(metrics))
	}

	p, err := pipeline.Assemble(def, a.Registry, opts...)
	if err != nil {
		return fmt.Errorf("assembling pipeline %q: %w", def.Name, err)
	}

	sources := def.Sources
	if len(a.Cfg.Pipeline.Sources) > 0 {
		sources = a.Cfg.Pipeline.Sources
	}

	a.Logger.Info("pipeline run starting", logger.Fields(
		"pipeline", def.Name,
		"sources", len(sources),
		"version", version.Get().String(),
	))

	processErr := p.Process(ctx, sources)
	if closeErr := p.Close(); closeErr != nil && processErr == nil {
		processErr = closeErr
	}
	return processErr
}

func (a *App) startTelemetry(ctx context.Context) error {
	if a.Cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, a.Cfg.Tracing)
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		a.tracerProvider = tp
	}
	if a.Cfg.Metrics.Enabled {
		mp, err := observability.InitMeter(ctx, a.Cfg.Metrics)
		if err != nil {
			return fmt.Errorf("init meter: %w", err)
		}
		a.meterProvider = mp
	}
	return nil
}

func (a *App) stopTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			a.Logger.Warn("tracer shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}
	if a.meterProvider != nil {
		if err := a.meterProvider.Shutdown(ctx); err != nil {
			a.Logger.Warn("meter shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}
}
