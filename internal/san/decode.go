package san

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/lgbarn/pgn-san-go/internal/chess"
	"github.com/lgbarn/pgn-san-go/internal/errors"
)

// Decode resolves a SAN token to the coordinate form of the legal move it
// names for side.
func Decode(moves []chess.LegalMove, token string, side chess.Colour) (string, error) {
	m, err := DecodeMove(moves, token, side)
	if err != nil {
		return "", err
	}
	return m.Coordinate(), nil
}

// DecodeMove resolves a SAN token to the legal move it names for side.
//
// Castling resolves by side alone: when moves holds no matching king move
// the returned move is synthesised from the fixed castling squares.
func DecodeMove(moves []chess.LegalMove, token string, side chess.Colour) (chess.LegalMove, error) {
	tok, err := Classify(token)
	if err != nil {
		return chess.LegalMove{}, err
	}

	switch tok.Shape {
	case Castle:
		return decodeCastle(moves, tok, side), nil
	case Promotion:
		return resolve(moves, tok, side, errors.ErrNoMatchingPromotion)
	case PieceCapture, PawnCapture:
		return resolve(moves, tok, side, errors.ErrNoMatchingCapture)
	default:
		return resolve(moves, tok, side, errors.ErrNoMatchingMove)
	}
}

func decodeCastle(moves []chess.LegalMove, tok Token, side chess.Colour) chess.LegalMove {
	home := chess.HomeRank(side)
	from := chess.MakeSquare('e', home)
	to := chess.MakeSquare('c', home)
	if tok.Kingside {
		to = chess.MakeSquare('g', home)
	}
	i := slices.IndexFunc(moves, func(m chess.LegalMove) bool {
		return m.Colour == side && m.Piece == chess.King && m.From == from && m.To == to
	})
	if i >= 0 {
		return moves[i]
	}
	return chess.LegalMove{
		From:          from,
		To:            to,
		Piece:         chess.King,
		Colour:        side,
		Castle:        true,
		PromotedPiece: chess.Empty,
	}
}

// candidates returns the moves of side that fit the token's piece,
// destination, capture and promotion fields. Disambiguation is left to
// resolve.
func candidates(moves []chess.LegalMove, tok Token, side chess.Colour) []chess.LegalMove {
	var out []chess.LegalMove
	for _, m := range moves {
		if m.Colour != side || m.Piece != tok.Piece || m.To != tok.To {
			continue
		}
		if tok.Shape == Promotion {
			if !m.Promotion || m.PromotedPiece != tok.Promoted {
				continue
			}
		} else if m.Promotion {
			continue
		}
		if tok.Capture && !m.Capture {
			continue
		}
		// A pawn capture names its source file.
		if tok.Piece == chess.Pawn && tok.FromCol != 0 && m.From.Col() != tok.FromCol {
			continue
		}
		out = append(out, m)
	}
	return out
}

// resolve picks the single move the token names. A lone candidate is
// accepted whatever its disambiguation says; several are narrowed by the
// source file and rank, then by preferring quiet moves for a token without
// a capture mark.
func resolve(moves []chess.LegalMove, tok Token, side chess.Colour, none error) (chess.LegalMove, error) {
	cands := candidates(moves, tok, side)
	switch len(cands) {
	case 0:
		return chess.LegalMove{}, fmt.Errorf("%q: %w", tok.Text, none)
	case 1:
		return cands[0], nil
	}

	var narrowed []chess.LegalMove
	for _, m := range cands {
		if tok.FromCol != 0 && m.From.Col() != tok.FromCol {
			continue
		}
		if tok.FromRank != 0 && m.From.Rank() != tok.FromRank {
			continue
		}
		narrowed = append(narrowed, m)
	}
	if len(narrowed) == 1 {
		return narrowed[0], nil
	}

	if !tok.Capture && len(narrowed) > 1 {
		var quiet []chess.LegalMove
		for _, m := range narrowed {
			if !m.Capture {
				quiet = append(quiet, m)
			}
		}
		if len(quiet) == 1 {
			return quiet[0], nil
		}
	}
	return chess.LegalMove{}, fmt.Errorf("%q matches %d moves: %w", tok.Text, len(cands), errors.ErrAmbiguousMove)
}
