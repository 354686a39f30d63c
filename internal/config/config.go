// Package config provides configuration for the pgn-san tools.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/lgbarn/pgn-san-go/internal/errors"
	"github.com/lgbarn/pgn-san-go/internal/oracle"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=game count, 2=running commentary
	LogLevel  string

	// Oracle selects the move-generation backend for imports.
	Oracle oracle.Kind

	// Processing
	Workers    int // 0 means one per CPU
	ExportMode bool

	// Output
	JSONFormat     bool
	Compress       bool
	OutputFilename string

	Export *ExportConfig
	Server *ServerConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		LogLevel:   "info",
		Oracle:     oracle.DefaultKind,
		Export:     NewExportConfig(),
		Server:     NewServerConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output stream.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if _, err := oracle.ParseKind(string(c.Oracle)); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level %q: %w", c.LogLevel, errors.ErrInvalidConfig)
	}
	if c.Export != nil {
		if err := c.Export.Validate(); err != nil {
			return err
		}
	}
	if c.Server != nil {
		if err := c.Server.Validate(); err != nil {
			return err
		}
	}
	return nil
}
