package engine

import "github.com/lgbarn/pgn-san-go/internal/chess"

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(board *chess.Board) bool {
	colour := board.ToMove
	for _, m := range generatePseudoLegal(board) {
		if leavesKingSafe(board, m, colour) {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the side to move is in check with no legal move.
func IsCheckmate(board *chess.Board) bool {
	return IsInCheck(board, board.ToMove) && !HasLegalMoves(board)
}

// IsStalemate returns true if the side to move is not in check but has no
// legal move.
func IsStalemate(board *chess.Board) bool {
	return !IsInCheck(board, board.ToMove) && !HasLegalMoves(board)
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(board *chess.Board, depth int) int {
	if depth == 0 {
		return 1
	}
	moves := GenerateLegalMoves(board)
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, m := range moves {
		saved := board.SaveState()
		applyUnchecked(board, m)
		nodes += Perft(board, depth-1)
		board.RestoreState(saved)
	}
	return nodes
}
