package worker

import (
	"github.com/lgbarn/pgn-san-go/internal/game"
	"github.com/lgbarn/pgn-san-go/internal/oracle"
	"github.com/lgbarn/pgn-san-go/internal/parser"
)

// ReplayProcessor returns a ProcessFunc that replays each transcript on a
// fresh position of the given kind, starting from its FEN tag if any.
func ReplayProcessor(kind oracle.Kind) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		start, err := game.StartPosition(kind, parser.ParseTags(item.Transcript))
		if err != nil {
			return ProcessResult{Index: item.Index, Error: err}
		}
		res, err := game.Replay(start, item.Transcript)
		return ProcessResult{Index: item.Index, Result: res, Error: err}
	}
}
