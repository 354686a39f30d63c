package oracle

import (
	"github.com/lgbarn/pgn-san-go/internal/chess"
	"github.com/lgbarn/pgn-san-go/internal/engine"
)

// Mailbox is a Position backed by the hedged mailbox board.
type Mailbox struct {
	board *chess.Board
}

func newMailbox(fen string) (*Mailbox, error) {
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Mailbox{board: board}, nil
}

// LegalMoves returns the legal moves of the side to move.
func (p *Mailbox) LegalMoves() []chess.LegalMove {
	return engine.GenerateLegalMoves(p.board)
}

// PieceAt returns the piece on sq.
func (p *Mailbox) PieceAt(sq chess.Square) (chess.Piece, chess.Colour, bool) {
	piece := p.board.At(sq)
	if !chess.IsOccupied(piece) {
		return chess.Empty, chess.White, false
	}
	return chess.ExtractPiece(piece), chess.ExtractColour(piece), true
}

// Apply plays m. The returned undo restores the saved board state.
func (p *Mailbox) Apply(m chess.LegalMove) (func(), error) {
	saved := p.board.SaveState()
	if _, err := engine.ApplyMove(p.board, m.From, m.To, m.PromotedPiece); err != nil {
		return nil, err
	}
	return func() { p.board.RestoreState(saved) }, nil
}

func (p *Mailbox) InCheck() bool {
	return engine.IsInCheck(p.board, p.board.ToMove)
}

func (p *Mailbox) IsCheckmate() bool {
	return engine.IsCheckmate(p.board)
}

func (p *Mailbox) Turn() chess.Colour {
	return p.board.ToMove
}

func (p *Mailbox) FEN() string {
	return engine.BoardToFEN(p.board)
}
