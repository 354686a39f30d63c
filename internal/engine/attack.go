package engine

import "github.com/lgbarn/pgn-san-go/internal/chess"

var (
	knightOffsets  = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets    = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs   = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs   = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	allSlidingDirs = append(append([][2]int{}, diagonalDirs...), straightDirs...)
)

// onBoard reports whether the shifted coordinates are still on the board.
func onBoard(col chess.Col, rank chess.Rank) bool {
	return col.IsValid() && rank.IsValid()
}

func offset(col chess.Col, rank chess.Rank, d [2]int) (chess.Col, chess.Rank) {
	return chess.Col(int(col) + d[0]), chess.Rank(int(rank) + d[1])
}

// IsInCheck returns true if the given colour's king is in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	var kingCol chess.Col
	var kingRank chess.Rank
	if colour == chess.White {
		kingCol, kingRank = board.WKingCol, board.WKingRank
	} else {
		kingCol, kingRank = board.BKingCol, board.BKingRank
	}

	// If king position not tracked, search for it
	if !onBoard(kingCol, kingRank) ||
		board.Get(kingCol, kingRank) != chess.MakeColouredPiece(colour, chess.King) {
		kingCol, kingRank = findKing(board, colour)
		if kingCol == 0 {
			return false
		}
	}

	return isSquareAttacked(board, kingCol, kingRank, colour.Opposite())
}

// findKing finds the king of the given colour on the board.
func findKing(board *chess.Board, colour chess.Colour) (chess.Col, chess.Rank) {
	king := chess.MakeColouredPiece(colour, chess.King)
	for col := chess.Col('a'); col <= 'h'; col++ {
		for rank := chess.Rank('1'); rank <= '8'; rank++ {
			if board.Get(col, rank) == king {
				return col, rank
			}
		}
	}
	return 0, 0
}

// isSquareAttacked returns true if the square is attacked by the given colour.
func isSquareAttacked(board *chess.Board, col chess.Col, rank chess.Rank, byColour chess.Colour) bool {
	// Pawns attack from the rank behind them.
	pawn := chess.MakeColouredPiece(byColour, chess.Pawn)
	pawnRank := chess.Rank(int(rank) - chess.ColourOffset(byColour))
	for _, dc := range []int{-1, 1} {
		c := chess.Col(int(col) + dc)
		if onBoard(c, pawnRank) && board.Get(c, pawnRank) == pawn {
			return true
		}
	}

	knight := chess.MakeColouredPiece(byColour, chess.Knight)
	for _, d := range knightOffsets {
		c, r := offset(col, rank, d)
		if onBoard(c, r) && board.Get(c, r) == knight {
			return true
		}
	}

	king := chess.MakeColouredPiece(byColour, chess.King)
	for _, d := range kingOffsets {
		c, r := offset(col, rank, d)
		if onBoard(c, r) && board.Get(c, r) == king {
			return true
		}
	}

	queen := chess.MakeColouredPiece(byColour, chess.Queen)
	bishop := chess.MakeColouredPiece(byColour, chess.Bishop)
	if slidingAttack(board, col, rank, diagonalDirs, bishop, queen) {
		return true
	}
	rook := chess.MakeColouredPiece(byColour, chess.Rook)
	return slidingAttack(board, col, rank, straightDirs, rook, queen)
}

// slidingAttack walks each direction until the first occupied square and
// reports whether it holds one of the attackers.
func slidingAttack(board *chess.Board, col chess.Col, rank chess.Rank, dirs [][2]int, attackers ...chess.Piece) bool {
	for _, dir := range dirs {
		c, r := offset(col, rank, dir)
		for onBoard(c, r) {
			piece := board.Get(c, r)
			if piece != chess.Empty {
				for _, a := range attackers {
					if piece == a {
						return true
					}
				}
				break // Blocked
			}
			c, r = offset(c, r, dir)
		}
	}
	return false
}
