package oracle

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"

	"github.com/lgbarn/pgn-san-go/internal/chess"
	"github.com/lgbarn/pgn-san-go/internal/errors"
)

// Dragontooth is a Position backed by the dragontoothmg bitboard
// generator.
type Dragontooth struct {
	board *dragontoothmg.Board
}

// newDragontooth expects a FEN string that has already been validated;
// ParseFen panics on some malformed input.
func newDragontooth(fen string) (pos *Dragontooth, err error) {
	defer func() {
		if r := recover(); r != nil {
			pos, err = nil, fmt.Errorf("%q: %v: %w", fen, r, errors.ErrInvalidFEN)
		}
	}()
	board := dragontoothmg.ParseFen(fen)
	return &Dragontooth{board: &board}, nil
}

// LegalMoves returns the legal moves of the side to move.
func (p *Dragontooth) LegalMoves() []chess.LegalMove {
	raw := p.board.GenerateLegalMoves()
	moves := make([]chess.LegalMove, 0, len(raw))
	for i := range raw {
		moves = append(moves, p.convert(&raw[i]))
	}
	return moves
}

// convert describes a generated move in the translator's terms. It must be
// called before the move is applied.
func (p *Dragontooth) convert(mv *dragontoothmg.Move) chess.LegalMove {
	from := chess.Square(mv.From())
	to := chess.Square(mv.To())
	piece, colour, _ := p.PieceAt(from)

	m := chess.LegalMove{
		From:          from,
		To:            to,
		Piece:         piece,
		Colour:        colour,
		Capture:       dragontoothmg.IsCapture(*mv, p.board),
		PromotedPiece: chess.Empty,
	}
	// IsCapture only looks at the destination square.
	if piece == chess.Pawn && from.Col() != to.Col() {
		m.Capture = true
	}
	if piece == chess.King && abs(int(to)-int(from)) == 2 {
		m.Castle = true
	}
	if promo := fromDragontoothPiece(mv.Promote()); promo != chess.Empty {
		m.Promotion = true
		m.PromotedPiece = promo
	}
	return m
}

// PieceAt returns the piece on sq.
func (p *Dragontooth) PieceAt(sq chess.Square) (chess.Piece, chess.Colour, bool) {
	if !sq.IsValid() {
		return chess.Empty, chess.White, false
	}
	mask := uint64(1) << uint(sq)
	if piece := bitboardPiece(&p.board.White, mask); piece != chess.Empty {
		return piece, chess.White, true
	}
	if piece := bitboardPiece(&p.board.Black, mask); piece != chess.Empty {
		return piece, chess.Black, true
	}
	return chess.Empty, chess.White, false
}

func bitboardPiece(bb *dragontoothmg.Bitboards, mask uint64) chess.Piece {
	switch {
	case bb.Pawns&mask != 0:
		return chess.Pawn
	case bb.Knights&mask != 0:
		return chess.Knight
	case bb.Bishops&mask != 0:
		return chess.Bishop
	case bb.Rooks&mask != 0:
		return chess.Rook
	case bb.Queens&mask != 0:
		return chess.Queen
	case bb.Kings&mask != 0:
		return chess.King
	}
	return chess.Empty
}

func fromDragontoothPiece(p dragontoothmg.Piece) chess.Piece {
	switch p {
	case dragontoothmg.Knight:
		return chess.Knight
	case dragontoothmg.Bishop:
		return chess.Bishop
	case dragontoothmg.Rook:
		return chess.Rook
	case dragontoothmg.Queen:
		return chess.Queen
	}
	return chess.Empty
}

// Apply plays m using the generator's own unapply closure as undo.
func (p *Dragontooth) Apply(m chess.LegalMove) (func(), error) {
	raw := p.board.GenerateLegalMoves()
	for i := range raw {
		mv := &raw[i]
		if chess.Square(mv.From()) != m.From || chess.Square(mv.To()) != m.To {
			continue
		}
		if fromDragontoothPiece(mv.Promote()) != m.PromotedPiece {
			continue
		}
		return p.board.Apply(*mv), nil
	}
	return nil, fmt.Errorf("%s: %w", m.Coordinate(), errors.ErrIllegalMove)
}

func (p *Dragontooth) InCheck() bool {
	return p.board.OurKingInCheck()
}

func (p *Dragontooth) IsCheckmate() bool {
	return p.board.OurKingInCheck() && len(p.board.GenerateLegalMoves()) == 0
}

func (p *Dragontooth) Turn() chess.Colour {
	if p.board.Wtomove {
		return chess.White
	}
	return chess.Black
}

func (p *Dragontooth) FEN() string {
	return p.board.ToFen()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
