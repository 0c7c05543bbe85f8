package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Dallionking/alpha-decay/internal/sim"
)

// ValidationError describes a single config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface for a single validation error.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// Validate checks the Config for completeness and consistency. It returns a
// slice of all discovered issues rather than stopping at the first one.
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	// --- Simulation parameters ---
	if err := cfg.Simulation.Validate(); err != nil {
		var perrs sim.ParamErrors
		if errors.As(err, &perrs) {
			for _, pe := range perrs {
				errs = append(errs, ValidationError{Field: "simulation." + pe.Field, Message: pe.Message})
			}
		} else {
			errs = append(errs, ValidationError{Field: "simulation", Message: err.Error()})
		}
	}

	// --- Benchmark ---
	switch cfg.Benchmark.Source {
	case SourceAuto, SourcePython:
	case SourceCSV:
		if cfg.Benchmark.CSVPath == "" {
			errs = append(errs, ValidationError{
				Field:   "benchmark.csvPath",
				Message: `required when benchmark.source is "csv"`,
			})
		}
	default:
		errs = append(errs, ValidationError{
			Field:   "benchmark.source",
			Message: fmt.Sprintf("must be one of auto, csv, python; got %q", cfg.Benchmark.Source),
		})
	}
	if cfg.Benchmark.CSVPath != "" {
		if _, err := os.Stat(cfg.Benchmark.CSVPath); err != nil {
			errs = append(errs, ValidationError{
				Field:   "benchmark.csvPath",
				Message: fmt.Sprintf("file not found: %s", cfg.Benchmark.CSVPath),
			})
		}
	}

	// --- Display ---
	if cfg.Display.Window < 0 {
		errs = append(errs, ValidationError{
			Field:   "display.window",
			Message: fmt.Sprintf("must be >= 0, got %d", cfg.Display.Window),
		})
	}
	if cfg.Display.MaxPoints < 0 {
		errs = append(errs, ValidationError{
			Field:   "display.maxPoints",
			Message: fmt.Sprintf("must be >= 0, got %d", cfg.Display.MaxPoints),
		})
	}
	if cfg.Display.Interval < time.Millisecond {
		errs = append(errs, ValidationError{
			Field:   "display.interval",
			Message: fmt.Sprintf("must be at least 1ms, got %s", cfg.Display.Interval),
		})
	}

	// --- Logging ---
	switch strings.ToLower(cfg.Log.Level) {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("unknown level %q", cfg.Log.Level),
		})
	}

	return errs
}
