package config

import (
	"fmt"

	"github.com/kula-app/newton-sqrt/internal/solver"
)

// Config represents the run configuration of the sqrt command
type Config struct {
	// MaxIterations bounds the Newton iteration per solve
	MaxIterations int `json:"maxIterations" validate:"required,min=1"`

	// Precision is the convergence threshold: iteration stops once two
	// consecutive approximations differ by less than this
	Precision float64 `json:"precision" validate:"required,gt=0"`

	// DecimalPlaces is how many fractional digits the result is printed with
	DecimalPlaces int `json:"decimalPlaces" validate:"required,min=0"`

	// Verbose enables debug logging of every intermediate approximation
	Verbose bool `json:"verbose"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		MaxIterations: solver.DefaultMaxIterations,
		Precision:     solver.DefaultPrecision,
		DecimalPlaces: 12,
		Verbose:       false,
	}
}

// Validate checks the configuration for values the solver cannot work with
func (c *Config) Validate() error {
	if c.MaxIterations < 1 {
		return fmt.Errorf("max iterations must be at least 1, got %d", c.MaxIterations)
	}
	if c.Precision <= 0 {
		return fmt.Errorf("precision must be positive, got %g", c.Precision)
	}
	if c.DecimalPlaces < 0 {
		return fmt.Errorf("decimal places must not be negative, got %d", c.DecimalPlaces)
	}
	return nil
}
