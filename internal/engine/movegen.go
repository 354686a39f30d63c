package engine

import "github.com/lgbarn/pgn-san-go/internal/chess"

var promotionPieces = []chess.Piece{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// GenerateLegalMoves returns every legal move for the side to move, ordered
// by source square from a1 to h8.
func GenerateLegalMoves(board *chess.Board) []chess.LegalMove {
	pseudo := generatePseudoLegal(board)
	legal := pseudo[:0]
	colour := board.ToMove
	for _, m := range pseudo {
		if leavesKingSafe(board, m, colour) {
			legal = append(legal, m)
		}
	}
	return legal
}

// leavesKingSafe plays m on the board and reports whether the mover's king
// is out of check afterwards. The board is restored before returning.
func leavesKingSafe(board *chess.Board, m chess.LegalMove, colour chess.Colour) bool {
	saved := board.SaveState()
	applyUnchecked(board, m)
	safe := !IsInCheck(board, colour)
	board.RestoreState(saved)
	return safe
}

// generatePseudoLegal returns moves that obey piece movement rules but may
// leave the mover in check.
func generatePseudoLegal(board *chess.Board) []chess.LegalMove {
	colour := board.ToMove
	moves := make([]chess.LegalMove, 0, 48)
	for sq := chess.Square(0); sq < chess.BoardSize*chess.BoardSize; sq++ {
		piece := board.At(sq)
		if !chess.IsOccupied(piece) || chess.ExtractColour(piece) != colour {
			continue
		}
		switch chess.ExtractPiece(piece) {
		case chess.Pawn:
			moves = appendPawnMoves(board, moves, sq, colour)
		case chess.Knight:
			moves = appendStepMoves(board, moves, sq, chess.Knight, colour, knightOffsets)
		case chess.Bishop:
			moves = appendSlidingMoves(board, moves, sq, chess.Bishop, colour, diagonalDirs)
		case chess.Rook:
			moves = appendSlidingMoves(board, moves, sq, chess.Rook, colour, straightDirs)
		case chess.Queen:
			moves = appendSlidingMoves(board, moves, sq, chess.Queen, colour, allSlidingDirs)
		case chess.King:
			moves = appendStepMoves(board, moves, sq, chess.King, colour, kingOffsets)
			moves = appendCastlingMoves(board, moves, sq, colour)
		}
	}
	return moves
}

// targetState classifies a destination square for a piece of colour.
// ok is false when the square is off the board or holds a friendly piece.
func targetState(board *chess.Board, col chess.Col, rank chess.Rank, colour chess.Colour) (ok, capture bool) {
	if !onBoard(col, rank) {
		return false, false
	}
	target := board.Get(col, rank)
	if target == chess.Empty {
		return true, false
	}
	if chess.ExtractColour(target) == colour {
		return false, false
	}
	return true, true
}

func appendStepMoves(board *chess.Board, moves []chess.LegalMove, from chess.Square, piece chess.Piece, colour chess.Colour, offsets [][2]int) []chess.LegalMove {
	for _, d := range offsets {
		c, r := offset(from.Col(), from.Rank(), d)
		ok, capture := targetState(board, c, r, colour)
		if !ok {
			continue
		}
		moves = append(moves, chess.LegalMove{
			From: from, To: chess.MakeSquare(c, r),
			Piece: piece, Colour: colour, Capture: capture,
			PromotedPiece: chess.Empty,
		})
	}
	return moves
}

func appendSlidingMoves(board *chess.Board, moves []chess.LegalMove, from chess.Square, piece chess.Piece, colour chess.Colour, dirs [][2]int) []chess.LegalMove {
	for _, dir := range dirs {
		c, r := offset(from.Col(), from.Rank(), dir)
		for {
			ok, capture := targetState(board, c, r, colour)
			if !ok {
				break
			}
			moves = append(moves, chess.LegalMove{
				From: from, To: chess.MakeSquare(c, r),
				Piece: piece, Colour: colour, Capture: capture,
				PromotedPiece: chess.Empty,
			})
			if capture {
				break
			}
			c, r = offset(c, r, dir)
		}
	}
	return moves
}

func appendPawnMoves(board *chess.Board, moves []chess.LegalMove, from chess.Square, colour chess.Colour) []chess.LegalMove {
	dir := chess.ColourOffset(colour)
	col, rank := from.Col(), from.Rank()
	toRank := chess.Rank(int(rank) + dir)
	if !toRank.IsValid() {
		return moves
	}
	lastRank := chess.HomeRank(colour.Opposite())

	add := func(to chess.Square, capture bool) {
		if to.Rank() != lastRank {
			moves = append(moves, chess.LegalMove{
				From: from, To: to, Piece: chess.Pawn, Colour: colour,
				Capture: capture, PromotedPiece: chess.Empty,
			})
			return
		}
		for _, p := range promotionPieces {
			moves = append(moves, chess.LegalMove{
				From: from, To: to, Piece: chess.Pawn, Colour: colour,
				Capture: capture, Promotion: true, PromotedPiece: p,
			})
		}
	}

	// Forward moves
	if board.Get(col, toRank) == chess.Empty {
		add(chess.MakeSquare(col, toRank), false)
		startRank := chess.Rank(int(chess.HomeRank(colour)) + dir)
		toRank2 := chess.Rank(int(rank) + 2*dir)
		if rank == startRank && board.Get(col, toRank2) == chess.Empty {
			add(chess.MakeSquare(col, toRank2), false)
		}
	}

	// Captures, including en passant
	for _, dc := range []int{-1, 1} {
		toCol := chess.Col(int(col) + dc)
		if !toCol.IsValid() {
			continue
		}
		target := board.Get(toCol, toRank)
		if chess.IsOccupied(target) && chess.ExtractColour(target) != colour {
			add(chess.MakeSquare(toCol, toRank), true)
		} else if board.EnPassant && toCol == board.EPCol && toRank == board.EPRank &&
			board.Get(toCol, rank) == chess.MakeColouredPiece(colour.Opposite(), chess.Pawn) {
			add(chess.MakeSquare(toCol, toRank), true)
		}
	}
	return moves
}

// appendCastlingMoves adds the castling moves whose rights remain, whose
// path is clear and whose king squares are not attacked. The final king
// square is left to the legality filter.
func appendCastlingMoves(board *chess.Board, moves []chess.LegalMove, from chess.Square, colour chess.Colour) []chess.LegalMove {
	home := chess.HomeRank(colour)
	if from != chess.MakeSquare('e', home) {
		return moves
	}
	kingside := board.Castling.Has(chess.KingsideRight(colour))
	queenside := board.Castling.Has(chess.QueensideRight(colour))
	if !kingside && !queenside {
		return moves
	}
	them := colour.Opposite()
	if isSquareAttacked(board, 'e', home, them) {
		return moves
	}
	rook := chess.MakeColouredPiece(colour, chess.Rook)

	if kingside && board.Get('h', home) == rook &&
		board.Get('f', home) == chess.Empty && board.Get('g', home) == chess.Empty &&
		!isSquareAttacked(board, 'f', home, them) {
		moves = append(moves, chess.LegalMove{
			From: from, To: chess.MakeSquare('g', home),
			Piece: chess.King, Colour: colour, Castle: true,
			PromotedPiece: chess.Empty,
		})
	}
	if queenside && board.Get('a', home) == rook &&
		board.Get('d', home) == chess.Empty && board.Get('c', home) == chess.Empty &&
		board.Get('b', home) == chess.Empty &&
		!isSquareAttacked(board, 'd', home, them) {
		moves = append(moves, chess.LegalMove{
			From: from, To: chess.MakeSquare('c', home),
			Piece: chess.King, Colour: colour, Castle: true,
			PromotedPiece: chess.Empty,
		})
	}
	return moves
}
