package httpapi

import (
	stderrors "errors"

	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/pgn-san-go/internal/errors"
	"github.com/lgbarn/pgn-san-go/internal/game"
	"github.com/lgbarn/pgn-san-go/internal/oracle"
	"github.com/lgbarn/pgn-san-go/internal/output"
	"github.com/lgbarn/pgn-san-go/internal/parser"
)

// Stream message types.
const (
	MessagePly   = "ply"
	MessageDone  = "done"
	MessageError = "error"
)

// StreamMessage is one message of the replay stream.
type StreamMessage struct {
	Type     string          `json:"type"`
	Ply      *output.JSONPly `json:"ply,omitempty"`
	FinalFEN string          `json:"final_fen,omitempty"`
	Outcome  string          `json:"outcome,omitempty"`
	Error    string          `json:"error,omitempty"`
	PlyIndex int             `json:"ply_index,omitempty"`
	Token    string          `json:"token,omitempty"`
}

// streamReplay replays transcript and sends one message per ply followed by
// a done or error message. It returns only errors from send.
func streamReplay(kind oracle.Kind, transcript string, send func(StreamMessage) error) error {
	fail := func(err error) error {
		msg := StreamMessage{Type: MessageError, Error: err.Error()}
		var re *errors.ReplayError
		if stderrors.As(err, &re) {
			msg.PlyIndex = re.Ply
			msg.Token = re.Token
		}
		return send(msg)
	}

	pos, err := game.StartPosition(kind, parser.ParseTags(transcript))
	if err != nil {
		return fail(err)
	}
	tokens, err := parser.ExtractMoveTokens(transcript)
	if err != nil {
		return fail(err)
	}

	var sendErr error
	err = game.ReplayMoves(pos, tokens, func(p output.Ply) error {
		jp := output.PlyToJSON(p)
		sendErr = send(StreamMessage{Type: MessagePly, Ply: &jp})
		return sendErr
	})
	if sendErr != nil {
		return sendErr
	}
	if err != nil {
		return fail(err)
	}
	return send(StreamMessage{Type: MessageDone, FinalFEN: pos.FEN(), Outcome: game.Outcome(pos)})
}

// ReplayStream handles GET /ws/replay. Each text message is a PGN
// transcript; the replay of one finishes before the next is read.
func (s *Server) ReplayStream(c *websocket.Conn) {
	rid, _ := c.Locals(ridLocal).(string)
	log := s.log.With().Str("rid", rid).Logger()
	defer c.Close()

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("replay stream closed")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		err = streamReplay(s.kind, string(message), func(m StreamMessage) error {
			return c.WriteJSON(m)
		})
		if err != nil {
			log.Warn().Err(err).Msg("replay stream write failed")
			return
		}
	}
}
