package game

import (
	"fmt"

	"github.com/lgbarn/pgn-san-go/internal/chess"
	"github.com/lgbarn/pgn-san-go/internal/oracle"
)

// NextUnplayed returns the first move of moves not yet in history, provided
// history agrees with the start of moves.
func NextUnplayed(moves, history []string) (string, bool) {
	if len(moves) <= len(history) {
		return "", false
	}
	for i, played := range history {
		if moves[i] != played {
			return "", false
		}
	}
	return moves[len(history)], true
}

// MoveList pairs plies into numbered full moves, e.g. "1. e4, e5".
func MoveList(plies []string) []string {
	list := make([]string, 0, (len(plies)+1)/2)
	for i := 0; i < len(plies); i += 2 {
		entry := fmt.Sprintf("%d. %s", i/2+1, plies[i])
		if i+1 < len(plies) {
			entry += ", " + plies[i+1]
		}
		list = append(list, entry)
	}
	return list
}

// Outcome returns the PGN result token for pos: the winner's score on
// checkmate, a draw on stalemate and "*" while the game goes on.
func Outcome(pos oracle.Position) string {
	if len(pos.LegalMoves()) > 0 {
		return "*"
	}
	if !pos.InCheck() {
		return "1/2-1/2"
	}
	if pos.Turn() == chess.White {
		return "0-1"
	}
	return "1-0"
}
