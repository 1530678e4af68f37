package operations

import (
	"time"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/config"
)

// Config represents the batch execution configuration
type Config struct {
	// Execution mode (sequential or parallel)
	ExecutionMode ExecutionMode `json:"execution_mode"`

	// Maximum concurrent steps (for parallel execution)
	MaxConcurrency int `json:"max_concurrency"`

	// Per-step timeout; zero means no limit
	StepTimeout time.Duration `json:"step_timeout"`

	// Step-specific timeouts
	StepTimeouts map[string]time.Duration `json:"step_timeouts"`
}

// NewConfig returns the default batch configuration
func NewConfig() *Config {
	return &Config{
		ExecutionMode:  ExecutionModeSequential,
		MaxConcurrency: DefaultMaxConcurrency,
		StepTimeouts:   make(map[string]time.Duration),
	}
}

// ConfigFromBatch maps the application batch settings onto a Config
func ConfigFromBatch(batch config.BatchConfig) *Config {
	b := NewConfigBuilder().WithDefaultTimeout(batch.Timeout)
	if batch.Parallel {
		b.WithExecutionMode(ExecutionModeParallel)
	}
	if batch.Workers > 0 {
		b.WithMaxConcurrency(batch.Workers)
	}
	for id, timeout := range batch.Timeouts {
		b.WithStepTimeout(id, timeout)
	}
	return b.Build()
}

// GetStepTimeout returns the timeout for a specific Step
func (c *Config) GetStepTimeout(stepID string) time.Duration {
	if timeout, ok := c.StepTimeouts[stepID]; ok {
		return timeout
	}
	return c.StepTimeout
}

// SetStepTimeout sets the timeout for a specific Step
func (c *Config) SetStepTimeout(stepID string, timeout time.Duration) {
	if c.StepTimeouts == nil {
		c.StepTimeouts = make(map[string]time.Duration)
	}
	c.StepTimeouts[stepID] = timeout
}

// ConfigBuilder provides a fluent interface for building batch configurations
type ConfigBuilder struct {
	config *Config
}

// NewConfigBuilder creates a new configuration builder
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: NewConfig(),
	}
}

// WithExecutionMode sets the execution mode
func (b *ConfigBuilder) WithExecutionMode(mode ExecutionMode) *ConfigBuilder {
	b.config.ExecutionMode = mode
	return b
}

// WithMaxConcurrency sets the maximum concurrency
func (b *ConfigBuilder) WithMaxConcurrency(maxConcurrency int) *ConfigBuilder {
	b.config.MaxConcurrency = maxConcurrency
	return b
}

// WithDefaultTimeout sets the timeout of steps without their own
func (b *ConfigBuilder) WithDefaultTimeout(timeout time.Duration) *ConfigBuilder {
	b.config.StepTimeout = timeout
	return b
}

// WithStepTimeout sets the timeout for a Step
func (b *ConfigBuilder) WithStepTimeout(stepID string, timeout time.Duration) *ConfigBuilder {
	b.config.SetStepTimeout(stepID, timeout)
	return b
}

// Build returns the built configuration
func (b *ConfigBuilder) Build() *Config {
	return b.config
}
