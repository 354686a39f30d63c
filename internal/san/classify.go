// Package san converts between coordinate notation and Standard Algebraic
// Notation. Every function works on the legal move list of a single
// position and holds no state between calls.
package san

import (
	"fmt"
	"strings"

	"github.com/lgbarn/pgn-san-go/internal/chess"
	"github.com/lgbarn/pgn-san-go/internal/errors"
)

// Shape names the syntactic form of a SAN token.
type Shape int

const (
	PlainMove Shape = iota
	Castle
	Promotion
	PieceCapture
	PawnCapture
)

// String returns the name of the shape.
func (s Shape) String() string {
	switch s {
	case PlainMove:
		return "PlainMove"
	case Castle:
		return "Castle"
	case Promotion:
		return "Promotion"
	case PieceCapture:
		return "PieceCapture"
	case PawnCapture:
		return "PawnCapture"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Token is a classified SAN token.
type Token struct {
	Text  string // the token as written
	Shape Shape

	// Piece is the moving piece: Pawn when no letter is given, King for
	// castling.
	Piece chess.Piece

	// FromCol and FromRank hold the disambiguating source file and rank,
	// or 0 when the token gives none.
	FromCol  chess.Col
	FromRank chess.Rank

	// To is NoSquare for castling.
	To chess.Square

	// Promoted is Empty unless Shape is Promotion.
	Promoted chess.Piece

	Capture  bool
	Kingside bool
}

// stripSuffixes removes check, mate and annotation marks and an en passant
// suffix.
func stripSuffixes(token string) string {
	s := strings.TrimRight(token, "+#!?")
	for _, ep := range []string{"e.p.", "ep"} {
		if strings.HasSuffix(s, ep) && len(s) > len(ep) {
			s = strings.TrimSpace(s[:len(s)-len(ep)])
			break
		}
	}
	return strings.TrimRight(s, "+#!?")
}

// Classify names the shape of a SAN token and extracts its fields.
func Classify(token string) (Token, error) {
	s := stripSuffixes(strings.TrimSpace(token))
	tok := Token{Text: token, To: chess.NoSquare, Promoted: chess.Empty}

	switch s {
	case "O-O", "0-0":
		tok.Shape, tok.Piece, tok.Kingside = Castle, chess.King, true
		return tok, nil
	case "O-O-O", "0-0-0":
		tok.Shape, tok.Piece = Castle, chess.King
		return tok, nil
	}

	if eq := strings.IndexByte(s, '='); eq >= 0 {
		if eq != len(s)-2 {
			return tok, malformed(token)
		}
		promoted, ok := chess.ParsePromotionLetter(s[eq+1])
		if !ok {
			return tok, malformed(token)
		}
		if err := parseBody(&tok, s[:eq]); err != nil || tok.Piece != chess.Pawn {
			return tok, malformed(token)
		}
		lastRank := tok.To.Rank()
		if lastRank != '8' && lastRank != '1' {
			return tok, malformed(token)
		}
		tok.Shape = Promotion
		tok.Promoted = promoted
		return tok, nil
	}

	if err := parseBody(&tok, s); err != nil {
		return tok, malformed(token)
	}
	switch {
	case tok.Capture && tok.Piece == chess.Pawn:
		tok.Shape = PawnCapture
	case tok.Capture:
		tok.Shape = PieceCapture
	default:
		tok.Shape = PlainMove
	}
	return tok, nil
}

// parseBody parses [piece][file][rank][x]square into tok.
func parseBody(tok *Token, s string) error {
	if len(s) < 2 {
		return errors.ErrMalformedMove
	}
	tok.Piece = chess.Pawn
	if p, ok := chess.LetterToPiece(s[0]); ok {
		tok.Piece = p
		s = s[1:]
	}
	if len(s) < 2 {
		return errors.ErrMalformedMove
	}

	to, err := chess.ParseSquare(s[len(s)-2:])
	if err != nil {
		return err
	}
	tok.To = to

	rest := s[:len(s)-2]
	if strings.HasSuffix(rest, "x") {
		tok.Capture = true
		rest = rest[:len(rest)-1]
	}
	if len(rest) > 0 && chess.Col(rest[0]).IsValid() {
		tok.FromCol = chess.Col(rest[0])
		rest = rest[1:]
	}
	if len(rest) > 0 && chess.Rank(rest[0]).IsValid() {
		tok.FromRank = chess.Rank(rest[0])
		rest = rest[1:]
	}
	if rest != "" {
		return errors.ErrMalformedMove
	}

	if tok.Piece == chess.Pawn {
		// Pawns name their source only when capturing, and only by file.
		if tok.FromRank != 0 || tok.Capture != (tok.FromCol != 0) {
			return errors.ErrMalformedMove
		}
	}
	return nil
}

func malformed(token string) error {
	return fmt.Errorf("%q: %w", token, errors.ErrMalformedMove)
}
