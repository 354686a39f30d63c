package engine

import (
	"fmt"

	"github.com/lgbarn/pgn-san-go/internal/chess"
	"github.com/lgbarn/pgn-san-go/internal/errors"
)

// ApplyMove plays the legal move matching from, to and promo on the board.
// promo is chess.Empty for non-promotions. The board is unchanged when no
// legal move matches.
func ApplyMove(board *chess.Board, from, to chess.Square, promo chess.Piece) (chess.LegalMove, error) {
	for _, m := range GenerateLegalMoves(board) {
		if m.Matches(from, to, promo) {
			applyUnchecked(board, m)
			return m, nil
		}
	}
	return chess.LegalMove{}, fmt.Errorf("%s%s: %w", from, to, errors.ErrIllegalMove)
}

// applyUnchecked plays a generated move without legality checks.
func applyUnchecked(board *chess.Board, m chess.LegalMove) {
	colour := m.Colour
	moving := board.At(m.From)
	captured := board.At(m.To)

	board.HalfmoveClock++
	if m.Piece == chess.Pawn || chess.IsOccupied(captured) {
		board.HalfmoveClock = 0
	}

	switch {
	case m.Castle:
		applyCastle(board, m)
	case m.Piece == chess.Pawn:
		applyPawnMove(board, m, moving, captured)
	default:
		board.Put(m.From, chess.Empty)
		board.Put(m.To, moving)
	}

	if m.Piece == chess.King {
		setKingSquare(board, colour, m.To)
		board.Castling &^= chess.KingsideRight(colour) | chess.QueensideRight(colour)
	}
	updateRookRights(board, m.From)
	updateRookRights(board, m.To)

	if !(m.Piece == chess.Pawn && abs(int(m.To.Rank())-int(m.From.Rank())) == 2) {
		board.EnPassant = false
	}

	if colour == chess.Black {
		board.MoveNumber++
	}
	board.ToMove = colour.Opposite()
}

// applyPawnMove handles pushes, captures, en passant and promotion.
func applyPawnMove(board *chess.Board, m chess.LegalMove, moving, captured chess.Piece) {
	colour := m.Colour
	if m.From.Col() != m.To.Col() && captured == chess.Empty {
		// En passant: the captured pawn sits beside the source square.
		board.Set(m.To.Col(), m.From.Rank(), chess.Empty)
	}

	board.Put(m.From, chess.Empty)
	if m.Promotion {
		board.Put(m.To, chess.MakeColouredPiece(colour, m.PromotedPiece))
	} else {
		board.Put(m.To, moving)
	}

	if abs(int(m.To.Rank())-int(m.From.Rank())) == 2 {
		board.EnPassant = true
		board.EPCol = m.From.Col()
		board.EPRank = chess.Rank(int(m.From.Rank()) + chess.ColourOffset(colour))
	}
}

// applyCastle moves the king two files and the rook beside it.
func applyCastle(board *chess.Board, m chess.LegalMove) {
	home := m.From.Rank()
	rookFrom, rookTo := chess.Col('h'), chess.Col('f')
	if m.To.Col() == 'c' {
		rookFrom, rookTo = 'a', 'd'
	}
	king := board.At(m.From)
	rook := board.Get(rookFrom, home)

	board.Put(m.From, chess.Empty)
	board.Set(rookFrom, home, chess.Empty)
	board.Put(m.To, king)
	board.Set(rookTo, home, rook)
}

func setKingSquare(board *chess.Board, colour chess.Colour, sq chess.Square) {
	if colour == chess.White {
		board.WKingCol, board.WKingRank = sq.Col(), sq.Rank()
	} else {
		board.BKingCol, board.BKingRank = sq.Col(), sq.Rank()
	}
}

// updateRookRights drops the castling right tied to a rook corner once
// anything moves from or to it.
func updateRookRights(board *chess.Board, sq chess.Square) {
	switch sq {
	case chess.MakeSquare('a', '1'):
		board.Castling &^= chess.WhiteQueenside
	case chess.MakeSquare('h', '1'):
		board.Castling &^= chess.WhiteKingside
	case chess.MakeSquare('a', '8'):
		board.Castling &^= chess.BlackQueenside
	case chess.MakeSquare('h', '8'):
		board.Castling &^= chess.BlackKingside
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
