// Package game drives the SAN translator over whole games: replaying PGN
// transcripts into coordinate moves and exporting coordinate histories as
// PGN.
package game

import (
	"strconv"
	"strings"

	"github.com/lgbarn/pgn-san-go/internal/chess"
	"github.com/lgbarn/pgn-san-go/internal/engine"
	"github.com/lgbarn/pgn-san-go/internal/errors"
	"github.com/lgbarn/pgn-san-go/internal/oracle"
	"github.com/lgbarn/pgn-san-go/internal/output"
	"github.com/lgbarn/pgn-san-go/internal/parser"
	"github.com/lgbarn/pgn-san-go/internal/san"
)

// Result is a replayed game.
type Result struct {
	Tags  []chess.Tag
	Moves []string // coordinate form, one per ply
	SAN   []string // source tokens, one per ply
	Plies []output.Ply

	// Final is the position after the last applied ply.
	Final oracle.Position
}

// Record converts the result to an output record. err, when non-nil, is
// the error that stopped the replay.
func (r *Result) Record(index int, err error) *output.Record {
	rec := &output.Record{Index: index, Err: err}
	if r == nil {
		return rec
	}
	rec.Tags = r.Tags
	rec.Plies = r.Plies
	if r.Final != nil {
		rec.FinalFEN = r.Final.FEN()
	}
	return rec
}

// ReplayFunc is called after each ply is applied. Returning an error stops
// the replay.
type ReplayFunc func(ply output.Ply) error

// StartPosition returns the position a game with the given tags starts
// from: its FEN tag when it has one, otherwise the standard start.
func StartPosition(kind oracle.Kind, tags []chess.Tag) (oracle.Position, error) {
	fen, ok := parser.StartFEN(tags)
	if !ok {
		fen = engine.InitialFEN
	}
	return oracle.New(kind, fen)
}

// Replay plays every SAN token of transcript on start, which it mutates.
// It stops at the first token that fails to decode or apply and returns a
// *errors.ReplayError; the returned Result then holds the plies applied
// before the failure.
func Replay(start oracle.Position, transcript string) (*Result, error) {
	tokens, err := parser.ExtractMoveTokens(transcript)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Tags:  parser.ParseTags(transcript),
		Moves: make([]string, 0, len(tokens)),
		SAN:   make([]string, 0, len(tokens)),
		Plies: make([]output.Ply, 0, len(tokens)),
		Final: start,
	}
	err = ReplayMoves(start, tokens, func(ply output.Ply) error {
		res.Moves = append(res.Moves, ply.UCI)
		res.SAN = append(res.SAN, ply.SAN)
		res.Plies = append(res.Plies, ply)
		return nil
	})
	return res, err
}

// ReplayMoves decodes and applies tokens on pos one at a time, calling fn
// (when non-nil) after each ply.
func ReplayMoves(pos oracle.Position, tokens []string, fn ReplayFunc) error {
	number := FullmoveNumber(pos)
	for i, tok := range tokens {
		side := pos.Turn()
		m, err := san.DecodeMove(pos.LegalMoves(), tok, side)
		if err != nil {
			return &errors.ReplayError{Ply: i + 1, Token: tok, Err: err}
		}
		if _, err := pos.Apply(m); err != nil {
			return &errors.ReplayError{Ply: i + 1, Token: tok, Err: err}
		}

		ply := output.Ply{Number: number, Colour: side, SAN: tok, UCI: m.Coordinate()}
		if side == chess.Black {
			number++
		}
		if fn != nil {
			if err := fn(ply); err != nil {
				return err
			}
		}
	}
	return nil
}

// FullmoveNumber returns the fullmove number of pos, or 1 when its FEN has
// none.
func FullmoveNumber(pos oracle.Position) int {
	fields := strings.Fields(pos.FEN())
	if len(fields) < 6 {
		return 1
	}
	n, err := strconv.Atoi(fields[5])
	if err != nil || n < 1 {
		return 1
	}
	return n
}
