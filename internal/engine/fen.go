// Package engine is a mailbox move generator over chess.Board. It backs the
// "mailbox" oracle and cross-checks the bitboard oracle in tests.
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/pgn-san-go/internal/chess"
	"github.com/lgbarn/pgn-san-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ConvertFENCharToPiece converts a FEN character to a piece type.
func ConvertFENCharToPiece(c byte) chess.Piece {
	switch c {
	case 'K', 'k':
		return chess.King
	case 'Q', 'q':
		return chess.Queen
	case 'R', 'r':
		return chess.Rook
	case 'N', 'n':
		return chess.Knight
	case 'B', 'b':
		return chess.Bishop
	case 'P', 'p':
		return chess.Pawn
	default:
		return chess.Empty
	}
}

// ColouredPieceToFENLetter returns the FEN letter for a coloured piece.
func ColouredPieceToFENLetter(colouredPiece chess.Piece) byte {
	letter := chess.ExtractPiece(colouredPiece).Letter()
	if chess.ExtractColour(colouredPiece) == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// CanonicalFEN checks that fen describes a position the generators can
// work from and returns it as BoardToFEN writes it. The position needs
// eight ranks of eight files, one king per side, a valid side to move, the
// side not to move out of check and, when present, well-formed castling,
// en passant and clock fields.
func CanonicalFEN(fen string) (string, error) {
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		return "", err
	}
	return BoardToFEN(board), nil
}

// NewBoardFromFEN creates a board from a FEN string. Castling rights whose
// king or rook is off its home square and en passant targets no pawn could
// have just passed are dropped, so BoardToFEN of the result may differ from
// fen in those fields.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, err
	}

	if err := parseSideToMove(board, parts); err != nil {
		return nil, err
	}

	if err := parseCastlingRights(board, parts); err != nil {
		return nil, err
	}
	if err := parseEnPassant(board, parts); err != nil {
		return nil, err
	}
	if err := parseClocks(board, parts); err != nil {
		return nil, err
	}

	if IsInCheck(board, board.ToMove.Opposite()) {
		return nil, fmt.Errorf("%s is in check with %s to move: %w",
			board.ToMove.Opposite(), board.ToMove, errors.ErrInvalidFEN)
	}
	board.Castling = board.SoundCastling()
	if board.EnPassant && !enPassantPlausible(board) {
		board.EnPassant = false
	}

	return board, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("%d ranks in piece placement: %w", len(ranks), errors.ErrInvalidFEN)
	}

	kings := map[chess.Colour]int{}
	for i, row := range ranks {
		rank := chess.Rank('8' - i)
		col := chess.Col('a')
		for _, c := range row {
			if c >= '1' && c <= '8' {
				col += chess.Col(c - '0')
				if col > 'h'+1 {
					return fmt.Errorf("rank %c overflows: %w", rank, errors.ErrInvalidFEN)
				}
				continue
			}
			piece := ConvertFENCharToPiece(byte(c))
			if piece == chess.Empty {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			if col > 'h' {
				return fmt.Errorf("rank %c overflows: %w", rank, errors.ErrInvalidFEN)
			}

			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}
			if piece == chess.Pawn && (rank == '1' || rank == '8') {
				return fmt.Errorf("pawn on back rank %c: %w", rank, errors.ErrInvalidFEN)
			}

			board.Set(col, rank, chess.MakeColouredPiece(colour, piece))

			if piece == chess.King {
				kings[colour]++
				if colour == chess.White {
					board.WKingCol, board.WKingRank = col, rank
				} else {
					board.BKingCol, board.BKingRank = col, rank
				}
			}
			col++
		}
		if col != 'h'+1 {
			return fmt.Errorf("rank %c has %d files: %w", rank, int(col-'a'), errors.ErrInvalidFEN)
		}
	}
	if kings[chess.White] != 1 || kings[chess.Black] != 1 {
		return fmt.Errorf("each side needs exactly one king: %w", errors.ErrInvalidFEN)
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		board.ToMove = chess.White
	case "b":
		board.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(board *chess.Board, parts []string) error {
	board.Castling = chess.NoCastling
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}
	for i := 0; i < len(parts[2]); i++ {
		right, ok := chess.ParseCastlingRight(parts[2][i])
		if !ok {
			return fmt.Errorf("invalid castling field %q: %w", parts[2], errors.ErrInvalidFEN)
		}
		board.Castling |= right
	}
	return nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(board *chess.Board, parts []string) error {
	board.EnPassant = false
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	sq, err := chess.ParseSquare(parts[3])
	if err != nil || (sq.Rank() != '3' && sq.Rank() != '6') {
		return fmt.Errorf("invalid en passant square %q: %w", parts[3], errors.ErrInvalidFEN)
	}
	board.EnPassant = true
	board.EPCol = sq.Col()
	board.EPRank = sq.Rank()
	return nil
}

// enPassantPlausible reports whether the en passant target is empty with
// an enemy pawn just beyond it and the pawn's start square empty, as after
// a double push by the side that just moved.
func enPassantPlausible(board *chess.Board) bool {
	mover := board.ToMove.Opposite()
	if board.EPRank != chess.Rank(int(chess.HomeRank(mover))+2*chess.ColourOffset(mover)) {
		return false
	}
	beyond := chess.Rank(int(board.EPRank) + chess.ColourOffset(mover))
	start := chess.Rank(int(board.EPRank) - chess.ColourOffset(mover))
	return board.Get(board.EPCol, board.EPRank) == chess.Empty &&
		board.Get(board.EPCol, start) == chess.Empty &&
		board.Get(board.EPCol, beyond) == chess.MakeColouredPiece(mover, chess.Pawn)
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(board *chess.Board, parts []string) error {
	if len(parts) >= 5 {
		n, err := strconv.ParseUint(parts[4], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid halfmove clock %q: %w", parts[4], errors.ErrInvalidFEN)
		}
		board.HalfmoveClock = uint(n)
	}
	if len(parts) >= 6 {
		n, err := strconv.ParseUint(parts[5], 10, 32)
		if err != nil || n == 0 {
			return fmt.Errorf("invalid fullmove number %q: %w", parts[5], errors.ErrInvalidFEN)
		}
		board.MoveNumber = uint(n)
	}
	return nil
}

// BoardToFEN converts a board to a FEN string.
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	if board.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(board.Castling.String())
	sb.WriteByte(' ')
	if board.EnPassant {
		sb.WriteByte(byte(board.EPCol))
		sb.WriteByte(byte(board.EPRank))
	} else {
		sb.WriteByte('-')
	}
	fmt.Fprintf(&sb, " %d %d", board.HalfmoveClock, board.MoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.Rank('8'); rank >= '1'; rank-- {
		emptyCount := 0
		for col := chess.Col('a'); col <= 'h'; col++ {
			piece := board.Get(col, rank)
			if piece == chess.Empty {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(ColouredPieceToFENLetter(piece))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > '1' {
			sb.WriteByte('/')
		}
	}
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	board, _ := NewBoardFromFEN(InitialFEN)
	return board
}
