// Package oracle defines the board capability the notation translator
// consumes and provides two implementations: a bitboard generator backed by
// dragontoothmg and the mailbox generator in internal/engine.
package oracle

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/lgbarn/pgn-san-go/internal/chess"
	"github.com/lgbarn/pgn-san-go/internal/engine"
	"github.com/lgbarn/pgn-san-go/internal/errors"
)

// Position is a mutable chess position that can enumerate its legal moves
// and play them.
type Position interface {
	// LegalMoves returns the legal moves of the side to move.
	LegalMoves() []chess.LegalMove
	// PieceAt returns the piece and colour on sq; ok is false when empty.
	PieceAt(sq chess.Square) (piece chess.Piece, colour chess.Colour, ok bool)
	// Apply plays a legal move and returns a function restoring the
	// position to what it was before the call.
	Apply(m chess.LegalMove) (undo func(), err error)
	InCheck() bool
	IsCheckmate() bool
	Turn() chess.Colour
	FEN() string
}

// Kind names a Position implementation.
type Kind string

const (
	KindDragontooth Kind = "dragontooth"
	KindMailbox     Kind = "mailbox"
)

// DefaultKind is used when no kind is configured.
const DefaultKind = KindDragontooth

// Kinds lists every supported implementation.
var Kinds = []Kind{KindDragontooth, KindMailbox}

// ParseKind parses an implementation name, case-insensitively. The empty
// string selects DefaultKind.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return DefaultKind, nil
	}
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Kinds, k) {
		return "", fmt.Errorf("unknown oracle %q: %w", s, errors.ErrInvalidConfig)
	}
	return k, nil
}

// New creates a position of the given kind from a FEN string. Missing
// trailing FEN fields take their starting-position defaults. Castling
// rights and en passant targets the placement cannot support are dropped
// before either backend sees them.
func New(kind Kind, fen string) (Position, error) {
	fen, err := engine.CanonicalFEN(normalizeFEN(fen))
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindDragontooth, "":
		return newDragontooth(fen)
	case KindMailbox:
		return newMailbox(fen)
	default:
		return nil, fmt.Errorf("unknown oracle %q: %w", kind, errors.ErrInvalidConfig)
	}
}

// NewStart creates a position of the given kind at the standard start.
func NewStart(kind Kind) Position {
	pos, err := New(kind, engine.InitialFEN)
	if err != nil {
		pos, _ = New(DefaultKind, engine.InitialFEN)
	}
	return pos
}

// normalizeFEN pads a FEN string to its six fields.
func normalizeFEN(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return fen
	}
	defaults := []string{"", "w", "-", "-", "0", "1"}
	for len(fields) < len(defaults) {
		fields = append(fields, defaults[len(fields)])
	}
	return strings.Join(fields, " ")
}

// Find returns the move in moves matching from, to and promo.
func Find(moves []chess.LegalMove, from, to chess.Square, promo chess.Piece) (chess.LegalMove, bool) {
	i := slices.IndexFunc(moves, func(m chess.LegalMove) bool {
		return m.Matches(from, to, promo)
	})
	if i < 0 {
		return chess.LegalMove{}, false
	}
	return moves[i], true
}

// ApplyCoordinate plays a coordinate move such as "e2e4" or "e7e8q" on pos
// and returns the legal move it resolved to.
func ApplyCoordinate(pos Position, coord string) (chess.LegalMove, error) {
	from, to, promo, err := chess.ParseCoordinate(coord)
	if err != nil {
		return chess.LegalMove{}, err
	}
	m, ok := Find(pos.LegalMoves(), from, to, promo)
	if !ok {
		return chess.LegalMove{}, fmt.Errorf("%s in %s: %w", coord, pos.FEN(), errors.ErrIllegalMove)
	}
	if _, err := pos.Apply(m); err != nil {
		return chess.LegalMove{}, err
	}
	return m, nil
}

// StatusAfter plays m, reports whether the opponent is then in check or
// checkmate, and restores the position.
func StatusAfter(pos Position, m chess.LegalMove) (chess.CheckStatus, error) {
	undo, err := pos.Apply(m)
	if err != nil {
		return chess.NoCheck, err
	}
	defer undo()
	switch {
	case pos.IsCheckmate():
		return chess.Checkmate, nil
	case pos.InCheck():
		return chess.Check, nil
	}
	return chess.NoCheck, nil
}
