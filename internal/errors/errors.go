// Package errors provides sentinel errors and error types for the notation
// translator. It defines common error conditions and structured error types
// that preserve context while allowing inspection with errors.Is() and
// errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrMalformedSquare indicates a square string that is not [a-h][1-8].
	ErrMalformedSquare = errors.New("malformed square")

	// ErrMalformedMove indicates a move string that fits no known shape.
	ErrMalformedMove = errors.New("malformed move")

	// ErrNoMovetextSection indicates a transcript without a blank line
	// separating the header block from the movetext.
	ErrNoMovetextSection = errors.New("no movetext section")

	// ErrNoMatchingMove indicates no legal move matches a plain SAN token.
	ErrNoMatchingMove = errors.New("no matching move")

	// ErrNoMatchingCapture indicates no legal capture matches a SAN token.
	ErrNoMatchingCapture = errors.New("no matching capture")

	// ErrNoMatchingPromotion indicates no legal promotion matches a SAN token.
	ErrNoMatchingPromotion = errors.New("no matching promotion")

	// ErrAmbiguousMove indicates several legal moves match a SAN token and
	// its disambiguation does not single one out.
	ErrAmbiguousMove = errors.New("ambiguous move")

	// ErrIllegalMove indicates a coordinate move that is not legal in the
	// position it is applied to.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ReplayError reports the ply at which a replay or export stopped.
// It implements the error interface and supports unwrapping via
// errors.Is() and errors.As().
type ReplayError struct {
	Err   error  // The underlying error
	Ply   int    // 1-based ply at which the error occurred
	Token string // The SAN token or coordinate move that failed
	Game  int    // 1-based game number in a multi-game file (0 if not applicable)
}

// Error returns a formatted error message including all available context.
func (e *ReplayError) Error() string {
	var parts []string

	if e.Game > 0 {
		parts = append(parts, fmt.Sprintf("game %d", e.Game))
	}
	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.Token != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.Token))
	}

	context := strings.Join(parts, ", ")
	if context == "" {
		context = "replay"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the ReplayError wrapper.
func (e *ReplayError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
