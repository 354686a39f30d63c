package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lgbarn/pgn-san-go/internal/errors"
	"github.com/lgbarn/pgn-san-go/internal/oracle"
)

// Environment variables read by ServerConfig.ApplyEnv.
const (
	EnvAddr      = "PGNSAN_ADDR"
	EnvOracle    = "PGNSAN_ORACLE"
	EnvBodyLimit = "PGNSAN_BODY_LIMIT"
)

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Addr string

	// Oracle backs every request
	Oracle oracle.Kind

	// BodyLimit caps request bodies in bytes
	BodyLimit int

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:            ":8080",
		Oracle:          oracle.DefaultKind,
		BodyLimit:       4 << 20,
		ShutdownTimeout: 10 * time.Second,
	}
}

// ApplyEnv overrides settings from the environment. lookup has the
// signature of os.LookupEnv.
func (s *ServerConfig) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAddr); ok && v != "" {
		s.Addr = v
	}
	if v, ok := lookup(EnvOracle); ok && v != "" {
		kind, err := oracle.ParseKind(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvOracle, err)
		}
		s.Oracle = kind
	}
	if v, ok := lookup(EnvBodyLimit); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvBodyLimit, v, errors.ErrInvalidConfig)
		}
		s.BodyLimit = n
	}
	return nil
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	if s.Addr == "" {
		return fmt.Errorf("empty listen address: %w", errors.ErrInvalidConfig)
	}
	if s.BodyLimit <= 0 {
		return fmt.Errorf("body limit must be positive, got %d: %w", s.BodyLimit, errors.ErrInvalidConfig)
	}
	if _, err := oracle.ParseKind(string(s.Oracle)); err != nil {
		return err
	}
	return nil
}
