package config

import (
	"fmt"

	"github.com/lgbarn/pgn-san-go/internal/errors"
	"github.com/lgbarn/pgn-san-go/internal/oracle"
)

// minWrappedLineLength is the shortest line length that still fits a move
// number and a SAN token.
const minWrappedLineLength = 10

// ExportConfig holds settings for writing coordinate histories as PGN.
type ExportConfig struct {
	// MaxLineLength wraps movetext lines; 0 disables wrapping
	MaxLineLength uint

	// KeepResults appends the Result tag value to the movetext
	KeepResults bool

	// Oracle replays the history being exported
	Oracle oracle.Kind
}

// NewExportConfig creates an ExportConfig with default values.
func NewExportConfig() *ExportConfig {
	return &ExportConfig{
		KeepResults: true,
		Oracle:      oracle.DefaultKind,
	}
}

// Validate checks that the export configuration is valid.
func (e *ExportConfig) Validate() error {
	if e.MaxLineLength != 0 && e.MaxLineLength < minWrappedLineLength {
		return fmt.Errorf("line length %d is below %d: %w",
			e.MaxLineLength, minWrappedLineLength, errors.ErrInvalidConfig)
	}
	if _, err := oracle.ParseKind(string(e.Oracle)); err != nil {
		return err
	}
	return nil
}
