// pgn-san replays PGN games into coordinate moves and exports coordinate
// move histories as PGN.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/pgn-san-go/internal/config"
	"github.com/lgbarn/pgn-san-go/internal/input"
	"github.com/lgbarn/pgn-san-go/internal/logx"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("pgn-san version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := configFromFlags()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	setupLogFile(cfg)

	log, err := logx.NewLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	out, err := input.Create(cfg.OutputFilename, cfg.Compress)
	if err != nil {
		log.Fatal().Err(err).Msg("create output")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{input.Stdio}
	}

	var st stats
	if cfg.ExportMode {
		st, err = runExport(cfg, log, paths, out)
	} else {
		st, err = runImport(ctx, cfg, log, paths, out)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}

	if cfg.Verbosity > 0 {
		reportStatistics(cfg, st)
	}
	if st.failed > 0 {
		os.Exit(1)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// reportStatistics prints the final statistics to the log stream.
func reportStatistics(cfg *config.Config, st stats) {
	fmt.Fprintf(cfg.LogFile, "%d game(s) translated, %d failed, out of %d.\n", st.ok, st.failed, st.ok+st.failed)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: pgn-san [options] [input-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Translates chess games between PGN and coordinate notation.\n\n")
	fmt.Fprintf(os.Stderr, "By default each input is read as PGN (\"-\" for stdin, .zst decompressed)\n")
	fmt.Fprintf(os.Stderr, "and every game is written as one line of coordinate moves. With -export\n")
	fmt.Fprintf(os.Stderr, "each input line is a coordinate history and is written as a PGN game.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
