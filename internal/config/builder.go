package config

import (
	"io"

	"github.com/lgbarn/pgn-san-go/internal/oracle"
)

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the configured Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithOracle sets the move-generation backend for imports and exports.
func (b *ConfigBuilder) WithOracle(kind string) *ConfigBuilder {
	b.cfg.Oracle = oracleKind(kind)
	b.cfg.Export.Oracle = b.cfg.Oracle
	b.cfg.Server.Oracle = b.cfg.Oracle
	return b
}

// WithMaxLineLength sets the maximum exported line length.
func (b *ConfigBuilder) WithMaxLineLength(length uint) *ConfigBuilder {
	b.cfg.Export.MaxLineLength = length
	return b
}

// WithJSONOutput enables or disables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.JSONFormat = enabled
	return b
}

// WithWorkers sets the number of replay workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithExportMode switches from importing PGN to exporting histories.
func (b *ConfigBuilder) WithExportMode(enabled bool) *ConfigBuilder {
	b.cfg.ExportMode = enabled
	return b
}

// WithCompression enables zstd-compressed output.
func (b *ConfigBuilder) WithCompression(enabled bool) *ConfigBuilder {
	b.cfg.Compress = enabled
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

// WithLogLevel sets the zerolog level name.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.LogLevel = level
	return b
}

// KeepResults sets whether exported movetext ends with the result token.
func (b *ConfigBuilder) KeepResults(keep bool) *ConfigBuilder {
	b.cfg.Export.KeepResults = keep
	return b
}

// oracleKind normalises a backend name, keeping unknown names as given so
// Validate can report them.
func oracleKind(name string) oracle.Kind {
	kind, err := oracle.ParseKind(name)
	if err != nil {
		return oracle.Kind(name)
	}
	return kind
}
