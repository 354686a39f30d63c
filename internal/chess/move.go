package chess

// LegalMove describes one legal move as reported by a move-generation
// oracle. It is produced fresh for a single position and never mutated.
type LegalMove struct {
	From   Square
	To     Square
	Piece  Piece
	Colour Colour

	Capture   bool
	Castle    bool
	Promotion bool

	// PromotedPiece is Empty unless Promotion is set.
	PromotedPiece Piece
}

// Coordinate returns the coordinate-notation form of the move, e.g.
// "g1f3" or "e7e8q".
func (m LegalMove) Coordinate() string {
	buf := make([]byte, 0, 5)
	buf = append(buf, m.From.String()...)
	buf = append(buf, m.To.String()...)
	if m.Promotion {
		if c := PromotionLetter(m.PromotedPiece); c != 0 {
			buf = append(buf, c)
		}
	}
	return string(buf)
}

// Matches reports whether the move has the given source, destination and
// promotion piece (Empty for none).
func (m LegalMove) Matches(from, to Square, promo Piece) bool {
	if m.From != from || m.To != to {
		return false
	}
	if m.Promotion {
		return m.PromotedPiece == promo
	}
	return promo == Empty
}

// String returns the coordinate form.
func (m LegalMove) String() string {
	return m.Coordinate()
}
