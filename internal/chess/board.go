package chess

// CastlingRights is the set of castling options still open, in the order
// they appear in a FEN castling field.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

var castlingLetters = [...]struct {
	right  CastlingRights
	letter byte
}{
	{WhiteKingside, 'K'},
	{WhiteQueenside, 'Q'},
	{BlackKingside, 'k'},
	{BlackQueenside, 'q'},
}

// KingsideRight returns the kingside right of colour.
func KingsideRight(colour Colour) CastlingRights {
	if colour == White {
		return WhiteKingside
	}
	return BlackKingside
}

// QueensideRight returns the queenside right of colour.
func QueensideRight(colour Colour) CastlingRights {
	if colour == White {
		return WhiteQueenside
	}
	return BlackQueenside
}

// Has reports whether every right in r is held.
func (c CastlingRights) Has(r CastlingRights) bool {
	return r != 0 && c&r == r
}

// ParseCastlingRight returns the right named by a FEN castling letter.
func ParseCastlingRight(letter byte) (CastlingRights, bool) {
	for _, cl := range castlingLetters {
		if cl.letter == letter {
			return cl.right, true
		}
	}
	return NoCastling, false
}

// String returns the FEN castling field, "-" when no right is held.
func (c CastlingRights) String() string {
	var buf []byte
	for _, cl := range castlingLetters {
		if c.Has(cl.right) {
			buf = append(buf, cl.letter)
		}
	}
	if len(buf) == 0 {
		return "-"
	}
	return string(buf)
}

// Board is a mailbox position: the squares surrounded by a two-square
// hedge of Off so knight and king steps never leave the array, plus the
// state a FEN string carries.
type Board struct {
	// Squares is indexed [ColConvert(col)][RankConvert(rank)].
	Squares [Hedge + BoardSize + Hedge][Hedge + BoardSize + Hedge]Piece

	ToMove     Colour
	MoveNumber uint
	Castling   CastlingRights

	// Kings are tracked for check detection.
	WKingCol  Col
	WKingRank Rank
	BKingCol  Col
	BKingRank Rank

	// EPCol and EPRank hold the en passant target square when EnPassant
	// is set.
	EnPassant bool
	EPRank    Rank
	EPCol     Col

	// Half-moves since the last pawn move or capture.
	HalfmoveClock uint
}

// NewBoard returns an empty board with White to move.
func NewBoard() *Board {
	b := &Board{
		ToMove:     White,
		MoveNumber: 1,
	}
	for col := range b.Squares {
		for rank := range b.Squares[col] {
			inside := col >= Hedge && col < Hedge+BoardSize &&
				rank >= Hedge && rank < Hedge+BoardSize
			if inside {
				b.Squares[col][rank] = Empty
			} else {
				b.Squares[col][rank] = Off
			}
		}
	}
	return b
}

// Get returns the piece on col, rank; Off outside the board.
func (b *Board) Get(col Col, rank Rank) Piece {
	c := ColConvert(col)
	r := RankConvert(rank)
	if c == 0 || r == 0 {
		return Off
	}
	return b.Squares[c][r]
}

// Set places a piece on col, rank. Coordinates outside the board are
// ignored.
func (b *Board) Set(col Col, rank Rank, piece Piece) {
	c := ColConvert(col)
	r := RankConvert(rank)
	if c != 0 && r != 0 {
		b.Squares[c][r] = piece
	}
}

// SaveState returns a snapshot of the board for RestoreState.
func (b *Board) SaveState() Board {
	return *b
}

// RestoreState puts back a snapshot taken by SaveState.
func (b *Board) RestoreState(s Board) {
	*b = s
}

// At returns the piece on a square index.
func (b *Board) At(sq Square) Piece {
	if !sq.IsValid() {
		return Off
	}
	return b.Get(sq.Col(), sq.Rank())
}

// Put places a piece on a square index.
func (b *Board) Put(sq Square, piece Piece) {
	if sq.IsValid() {
		b.Set(sq.Col(), sq.Rank(), piece)
	}
}

// KingSquare returns the tracked king square of the given colour.
func (b *Board) KingSquare(colour Colour) Square {
	if colour == White {
		return MakeSquare(b.WKingCol, b.WKingRank)
	}
	return MakeSquare(b.BKingCol, b.BKingRank)
}

// SoundCastling returns the held rights whose king and rook still stand on
// their home squares.
func (b *Board) SoundCastling() CastlingRights {
	sound := b.Castling
	for _, colour := range []Colour{White, Black} {
		home := HomeRank(colour)
		rook := MakeColouredPiece(colour, Rook)
		if b.Get('e', home) != MakeColouredPiece(colour, King) {
			sound &^= KingsideRight(colour) | QueensideRight(colour)
			continue
		}
		if b.Get('h', home) != rook {
			sound &^= KingsideRight(colour)
		}
		if b.Get('a', home) != rook {
			sound &^= QueensideRight(colour)
		}
	}
	return sound
}
