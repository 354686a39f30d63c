package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors_Distinct verifies that no two sentinels compare equal
func TestSentinelErrors_Distinct(t *testing.T) {
	sentinels := []error{
		ErrMalformedSquare,
		ErrMalformedMove,
		ErrNoMovetextSection,
		ErrNoMatchingMove,
		ErrNoMatchingCapture,
		ErrNoMatchingPromotion,
		ErrAmbiguousMove,
		ErrIllegalMove,
		ErrInvalidFEN,
		ErrInvalidConfig,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = true, want false", a, b)
			}
		}
	}
}

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("decoding %q: %w", "Qhd4", ErrAmbiguousMove)

	if !errors.Is(wrapped, ErrAmbiguousMove) {
		t.Errorf("errors.Is(wrapped, ErrAmbiguousMove) = false, want true")
	}
}

// TestReplayError_Error verifies the error message format
func TestReplayError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ReplayError
		contains []string
	}{
		{
			name: "full context",
			err: &ReplayError{
				Err:   ErrNoMatchingCapture,
				Ply:   12,
				Token: "Nxe5",
				Game:  5,
			},
			contains: []string{"game 5", "ply 12", "Nxe5", "no matching capture"},
		},
		{
			name:     "minimal context",
			err:      &ReplayError{Err: ErrNoMovetextSection},
			contains: []string{"replay", "no movetext section"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("ReplayError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestReplayError_As verifies that errors.As and errors.Is work through the wrapper
func TestReplayError_As(t *testing.T) {
	replayErr := &ReplayError{
		Err:   ErrNoMatchingMove,
		Ply:   24,
		Token: "Ke3",
	}
	wrapped := fmt.Errorf("import failed: %w", replayErr)

	var extracted *ReplayError
	if !errors.As(wrapped, &extracted) {
		t.Fatal("errors.As() could not extract ReplayError")
	}
	if extracted.Ply != 24 || extracted.Token != "Ke3" {
		t.Errorf("extracted = (%d, %q), want (24, %q)", extracted.Ply, extracted.Token, "Ke3")
	}
	if !errors.Is(wrapped, ErrNoMatchingMove) {
		t.Error("errors.Is(wrapped, ErrNoMatchingMove) = false, want true")
	}
}

// TestWrap verifies the Wrap helpers
func TestWrap(t *testing.T) {
	if Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	wrapped := Wrapf(ErrIllegalMove, "ply %d", 15)
	if !errors.Is(wrapped, ErrIllegalMove) {
		t.Error("Wrapf should preserve the underlying error")
	}
	if !containsIgnoreCase(wrapped.Error(), "ply 15") {
		t.Errorf("Wrapf should include formatted context, got %q", wrapped.Error())
	}
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
