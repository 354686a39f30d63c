package chess

import (
	"fmt"

	"github.com/lgbarn/pgn-san-go/internal/errors"
)

// Square is a board square index in 0..63, rank-major with a1 = 0,
// h1 = 7 and a8 = 56.
type Square int

// NoSquare marks an unset square.
const NoSquare Square = -1

// MakeSquare builds a square from its file and rank characters.
func MakeSquare(col Col, rank Rank) Square {
	if !col.IsValid() || !rank.IsValid() {
		return NoSquare
	}
	return Square(int(rank-RankBase)*BoardSize + int(col-ColBase))
}

// IsValid reports whether sq lies on the board.
func (sq Square) IsValid() bool {
	return sq >= 0 && sq < BoardSize*BoardSize
}

// Col returns the file character of the square.
func (sq Square) Col() Col {
	return Col(ColBase + int(sq)%BoardSize)
}

// Rank returns the rank character of the square.
func (sq Square) Rank() Rank {
	return Rank(RankBase + int(sq)/BoardSize)
}

// String returns the two-character form, e.g. "e4".
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte(sq.Col()), byte(sq.Rank())})
}

// SquareToString returns the canonical file+rank form of sq.
func SquareToString(sq Square) string {
	return sq.String()
}

// ParseSquare parses a two-character square such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || !Col(s[0]).IsValid() || !Rank(s[1]).IsValid() {
		return NoSquare, fmt.Errorf("%q: %w", s, errors.ErrMalformedSquare)
	}
	return MakeSquare(Col(s[0]), Rank(s[1])), nil
}

// PieceLetter returns the SAN letter of a piece. Pawns have no letter.
func PieceLetter(p Piece) (byte, bool) {
	switch p {
	case Knight, Bishop, Rook, Queen, King:
		return p.Letter(), true
	}
	return 0, false
}

// LetterToPiece is the inverse of PieceLetter.
func LetterToPiece(c byte) (Piece, bool) {
	switch c {
	case 'N':
		return Knight, true
	case 'B':
		return Bishop, true
	case 'R':
		return Rook, true
	case 'Q':
		return Queen, true
	case 'K':
		return King, true
	}
	return Empty, false
}

// PromotionLetter returns the lowercase coordinate-notation suffix for a
// promotion piece, or 0 when p cannot be promoted to.
func PromotionLetter(p Piece) byte {
	switch p {
	case Queen:
		return 'q'
	case Rook:
		return 'r'
	case Bishop:
		return 'b'
	case Knight:
		return 'n'
	}
	return 0
}

// ParsePromotionLetter parses a promotion letter in either case.
func ParsePromotionLetter(c byte) (Piece, bool) {
	switch c {
	case 'q', 'Q':
		return Queen, true
	case 'r', 'R':
		return Rook, true
	case 'b', 'B':
		return Bishop, true
	case 'n', 'N':
		return Knight, true
	}
	return Empty, false
}

// ParseCoordinate splits a coordinate move such as "e2e4" or "e7e8q".
// promo is Empty when there is no promotion suffix.
func ParseCoordinate(s string) (from, to Square, promo Piece, err error) {
	promo = Empty
	if len(s) != 4 && len(s) != 5 {
		return NoSquare, NoSquare, promo, fmt.Errorf("%q: %w", s, errors.ErrMalformedMove)
	}
	if from, err = ParseSquare(s[0:2]); err != nil {
		return NoSquare, NoSquare, promo, fmt.Errorf("%q: %w", s, errors.ErrMalformedMove)
	}
	if to, err = ParseSquare(s[2:4]); err != nil {
		return NoSquare, NoSquare, promo, fmt.Errorf("%q: %w", s, errors.ErrMalformedMove)
	}
	if len(s) == 5 {
		// Coordinate notation uses lowercase only.
		if s[4] < 'a' || s[4] > 'z' {
			return NoSquare, NoSquare, promo, fmt.Errorf("%q: %w", s, errors.ErrMalformedMove)
		}
		p, ok := ParsePromotionLetter(s[4])
		if !ok {
			return NoSquare, NoSquare, promo, fmt.Errorf("%q: %w", s, errors.ErrMalformedMove)
		}
		promo = p
	}
	return from, to, promo, nil
}
