// pgn-san-api serves the SAN translator over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/pgn-san-go/internal/config"
	"github.com/lgbarn/pgn-san-go/internal/httpapi"
	"github.com/lgbarn/pgn-san-go/internal/logx"
	"github.com/lgbarn/pgn-san-go/internal/oracle"
)

var (
	addr       = flag.String("addr", "", "Listen address (overrides "+config.EnvAddr+")")
	oracleName = flag.String("oracle", "", "Move generator: dragontooth or mailbox (overrides "+config.EnvOracle+")")
	logLevel   = flag.String("loglevel", "info", "Log level: debug, info, warn, error")
	jsonLogs   = flag.Bool("jsonlog", false, "Log JSON lines instead of console output")
)

// loadConfig builds the server configuration: defaults, then the
// environment, then flags.
func loadConfig(lookup func(string) (string, bool)) (*config.ServerConfig, error) {
	cfg := config.NewServerConfig()
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *oracleName != "" {
		kind, err := oracle.ParseKind(*oracleName)
		if err != nil {
			return nil, err
		}
		cfg.Oracle = kind
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	flag.Parse()

	cfg, err := loadConfig(os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	newLogger := logx.NewLogger
	if *jsonLogs {
		newLogger = logx.NewJSONLogger
	}
	log, err := newLogger(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	app := httpapi.New(cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("oracle", string(cfg.Oracle)).Msg("listening")
		errc <- app.Listen(cfg.Addr)
	}()

	select {
	case err := <-errc:
		log.Fatal().Err(err).Msg("listen")
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("shutdown")
		os.Exit(1)
	}
}
