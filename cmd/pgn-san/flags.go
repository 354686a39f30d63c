// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/pgn-san-go/internal/config"
	"github.com/lgbarn/pgn-san-go/internal/oracle"
)

var (
	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	jsonOutput = flag.Bool("J", false, "Output replayed games as JSON")
	compress   = flag.Bool("zstd", false, "Compress output with zstd (implied by a .zst output name)")
	lineLength = flag.Uint("w", 0, "Maximum exported line length (0 = no wrapping)")
	noResults  = flag.Bool("noresults", false, "Don't end exported movetext with the result")

	// Processing options
	exportMode = flag.Bool("export", false, "Read coordinate histories, one game per line, and write PGN")
	workers    = flag.Int("j", 0, "Replay workers (0 = one per CPU)")
	oracleName = flag.String("oracle", string(oracle.DefaultKind), "Move generator: dragontooth or mailbox")

	// Logging
	logLevel = flag.String("loglevel", "info", "Log level: debug, info, warn, error")
	logFile  = flag.String("l", "", "Write log to file instead of stderr")
	quiet    = flag.Bool("s", false, "Silent mode: no statistics")

	// Help
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// configFromFlags builds the configuration from command-line flags.
func configFromFlags() *config.Config {
	cfg := config.NewConfigBuilder().
		WithOracle(*oracleName).
		WithJSONOutput(*jsonOutput).
		WithCompression(*compress).
		WithMaxLineLength(*lineLength).
		KeepResults(!*noResults).
		WithExportMode(*exportMode).
		WithWorkers(*workers).
		WithLogLevel(*logLevel).
		Build()
	cfg.OutputFilename = *outputFile
	if *quiet {
		cfg.Verbosity = 0
	}
	return cfg
}
