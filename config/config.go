package config

import (
	"fmt"

	"github.com/maxfl/SelectorFramework/logger"
	"github.com/maxfl/SelectorFramework/observability"
)

// Config is the run configuration for a pipeline process.
type Config struct {
	// Name identifies the process in logs and telemetry.
	Name string `yaml:"name" mapstructure:"name"`
	// Environment is the deployment environment.
	Environment string `yaml:"environment" mapstructure:"environment"`

	Logging logger.Config              `yaml:"logging" mapstructure:"logging"`
	Tracing observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`

	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
}

// PipelineConfig selects which pipeline definition to run and on what.
type PipelineConfig struct {
	// Definition is the name of the pipeline definition to load.
	Definition string `yaml:"definition" mapstructure:"definition"`
	// Dirs lists directories searched for definition files.
	Dirs []string `yaml:"dirs" mapstructure:"dirs"`
	// Sources overrides the definition's input source list when set.
	Sources []string `yaml:"sources" mapstructure:"sources"`
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Logging.ApplyDefaults()
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = c.Name
	}
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = "localhost:4318"
	}
	if c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = 1.0
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = c.Name
	}
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = "localhost:4318"
	}
	if len(c.Pipeline.Dirs) == 0 {
		c.Pipeline.Dirs = []string{".", "pipelines"}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if c.Pipeline.Definition == "" {
		return fmt.Errorf("config.pipeline.definition is required")
	}
	return nil
}
