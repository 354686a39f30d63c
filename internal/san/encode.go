package san

import (
	"fmt"
	"strings"

	"github.com/lgbarn/pgn-san-go/internal/chess"
	"github.com/lgbarn/pgn-san-go/internal/errors"
	"github.com/lgbarn/pgn-san-go/internal/oracle"
)

// Encode returns the SAN form of m, one of the legal moves in moves.
// status describes the position after m is played.
func Encode(moves []chess.LegalMove, m chess.LegalMove, status chess.CheckStatus) string {
	var sb strings.Builder

	if m.Castle {
		if m.To.Col() > m.From.Col() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
		sb.WriteString(status.Suffix())
		return sb.String()
	}

	if letter, ok := chess.PieceLetter(m.Piece); ok {
		sb.WriteByte(letter)
		sb.WriteString(disambiguation(moves, m))
	}

	if m.Capture {
		if m.Piece == chess.Pawn {
			sb.WriteByte(byte(m.From.Col()))
		}
		sb.WriteByte('x')
	}

	sb.WriteString(m.To.String())

	if m.Promotion {
		sb.WriteByte('=')
		sb.WriteByte(m.PromotedPiece.Letter())
	}

	sb.WriteString(status.Suffix())
	return sb.String()
}

// disambiguation returns the source file, rank or square needed to tell m
// apart from other moves of the same piece kind to the same square.
func disambiguation(moves []chess.LegalMove, m chess.LegalMove) string {
	var rivals []chess.Square
	for _, other := range moves {
		if other.To != m.To || other.From == m.From {
			continue
		}
		if other.Piece == m.Piece && other.Colour == m.Colour {
			rivals = append(rivals, other.From)
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range rivals {
		if sq.Col() == m.From.Col() {
			sameFile = true
		}
		if sq.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	switch {
	case !sameFile:
		return string(rune(m.From.Col()))
	case !sameRank:
		return string(rune(m.From.Rank()))
	default:
		return m.From.String()
	}
}

// EncodeMove returns the SAN form of a coordinate move in pos. The check
// suffix is found by playing the move and undoing it; pos is left as it
// was.
func EncodeMove(pos oracle.Position, coordinate string) (string, error) {
	from, to, promo, err := chess.ParseCoordinate(coordinate)
	if err != nil {
		return "", err
	}
	moves := pos.LegalMoves()
	m, ok := oracle.Find(moves, from, to, promo)
	if !ok {
		return "", fmt.Errorf("%s: %w", coordinate, errors.ErrIllegalMove)
	}
	status, err := oracle.StatusAfter(pos, m)
	if err != nil {
		return "", err
	}
	return Encode(moves, m, status), nil
}
