package engine

import (
	"errors"
	"testing"

	"github.com/lgbarn/pgn-san-go/internal/chess"
	pgnerrors "github.com/lgbarn/pgn-san-go/internal/errors"
	"github.com/lgbarn/pgn-san-go/internal/testutil"
)

func mustBoard(t *testing.T, fen string) *chess.Board {
	t.Helper()
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q): %v", fen, err)
	}
	return board
}

func sq(s string) chess.Square {
	square, err := chess.ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return square
}

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		nodes []int
	}{
		{"start position", InitialFEN, []int{20, 400, 8902}},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []int{48, 2039}},
		{"rook endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []int{14, 191, 2812}},
		{"promotions", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []int{6, 264}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, tt.fen)
			for i, want := range tt.nodes {
				depth := i + 1
				testutil.AssertEqual(t, Perft(board, depth), want, "depth %d", depth)
			}
			testutil.AssertEqual(t, BoardToFEN(board), tt.fen, "board restored after perft")
		})
	}
}

func TestGenerateLegalMovesFlags(t *testing.T) {
	board := mustBoard(t, "r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq d6 0 1")
	moves := GenerateLegalMoves(board)

	find := func(coord string) (chess.LegalMove, bool) {
		for _, m := range moves {
			if m.Coordinate() == coord {
				return m, true
			}
		}
		return chess.LegalMove{}, false
	}

	castle, ok := find("e1g1")
	testutil.AssertTrue(t, ok, "kingside castle generated")
	testutil.AssertTrue(t, castle.Castle, "e1g1 flagged as castle")
	testutil.AssertEqual(t, castle.Piece, chess.King)

	_, ok = find("e1c1")
	testutil.AssertTrue(t, ok, "queenside castle generated")

	ep, ok := find("e5d6")
	testutil.AssertTrue(t, ok, "en passant generated")
	testutil.AssertTrue(t, ep.Capture, "en passant is a capture")

	rookCapture, ok := find("h1h8")
	testutil.AssertTrue(t, ok, "rook capture generated")
	testutil.AssertTrue(t, rookCapture.Capture)
	testutil.AssertEqual(t, rookCapture.Colour, chess.White)
}

func TestPromotionsGenerateFourPieces(t *testing.T) {
	board := mustBoard(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")
	var promos []chess.Piece
	for _, m := range GenerateLegalMoves(board) {
		if m.Promotion {
			promos = append(promos, m.PromotedPiece)
		}
	}
	testutil.AssertEqual(t, promos, []chess.Piece{chess.Queen, chess.Rook, chess.Bishop, chess.Knight})
}

func TestCastlingBlockedThroughCheck(t *testing.T) {
	// The black rook on f8 covers f1.
	board := mustBoard(t, "4kr2/8/8/8/8/8/8/4K2R w K - 0 1")
	for _, m := range GenerateLegalMoves(board) {
		if m.Castle {
			t.Errorf("unexpected castle %s through an attacked square", m)
		}
	}
}

func TestApplyMove(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		from    string
		to      string
		promo   chess.Piece
		wantFEN string
	}{
		{
			name:    "double pawn push sets en passant",
			fen:     InitialFEN,
			from:    "e2",
			to:      "e4",
			promo:   chess.Empty,
			wantFEN: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		},
		{
			name:    "black move advances move number",
			fen:     "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			from:    "g8",
			to:      "f6",
			promo:   chess.Empty,
			wantFEN: "rnbqkb1r/pppppppp/5n2/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 1 2",
		},
		{
			name:    "kingside castle",
			fen:     "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			from:    "e1",
			to:      "g1",
			promo:   chess.Empty,
			wantFEN: "r3k2r/8/8/8/8/8/8/R4RK1 b kq - 1 1",
		},
		{
			name:    "queenside castle",
			fen:     "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			from:    "e8",
			to:      "c8",
			promo:   chess.Empty,
			wantFEN: "2kr3r/8/8/8/8/8/8/R3K2R w KQ - 1 2",
		},
		{
			name:    "en passant removes pawn",
			fen:     "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1",
			from:    "e5",
			to:      "d6",
			promo:   chess.Empty,
			wantFEN: "4k3/8/3P4/8/8/8/8/4K3 b - - 0 1",
		},
		{
			name:    "capture promotion",
			fen:     "3r3k/4P3/8/8/8/8/8/K7 w - - 0 1",
			from:    "e7",
			to:      "d8",
			promo:   chess.Knight,
			wantFEN: "3N3k/8/8/8/8/8/8/K7 b - - 0 1",
		},
		{
			name:    "rook capture drops castling right",
			fen:     "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			from:    "a1",
			to:      "a8",
			promo:   chess.Empty,
			wantFEN: "R3k2r/8/8/8/8/8/8/4K2R b Kk - 0 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, tt.fen)
			_, err := ApplyMove(board, sq(tt.from), sq(tt.to), tt.promo)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, BoardToFEN(board), tt.wantFEN)
		})
	}
}

func TestApplyMoveIllegal(t *testing.T) {
	board := NewInitialBoard()
	_, err := ApplyMove(board, sq("e2"), sq("e5"), chess.Empty)
	if !errors.Is(err, pgnerrors.ErrIllegalMove) {
		t.Fatalf("ApplyMove() error = %v, want ErrIllegalMove", err)
	}
	testutil.AssertEqual(t, BoardToFEN(board), InitialFEN, "board unchanged")

	board = mustBoard(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")
	_, err = ApplyMove(board, sq("a7"), sq("a8"), chess.Empty)
	testutil.AssertErrorIs(t, err, pgnerrors.ErrIllegalMove, "promotion without a piece")
}

func TestGameState(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		check     bool
		checkmate bool
		stalemate bool
	}{
		{"start", InitialFEN, false, false, false},
		{"fools mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", true, true, false},
		{"check with escape", "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1", true, false, false},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, tt.fen)
			testutil.AssertEqual(t, IsInCheck(board, board.ToMove), tt.check, "check")
			testutil.AssertEqual(t, IsCheckmate(board), tt.checkmate, "checkmate")
			testutil.AssertEqual(t, IsStalemate(board), tt.stalemate, "stalemate")
		})
	}
}
