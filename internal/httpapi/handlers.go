package httpapi

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/pgn-san-go/internal/chess"
	"github.com/lgbarn/pgn-san-go/internal/engine"
	"github.com/lgbarn/pgn-san-go/internal/errors"
	"github.com/lgbarn/pgn-san-go/internal/game"
	"github.com/lgbarn/pgn-san-go/internal/oracle"
	"github.com/lgbarn/pgn-san-go/internal/parser"
	"github.com/lgbarn/pgn-san-go/internal/san"
)

type decodeRequest struct {
	FEN string `json:"fen"`
	SAN string `json:"san"`
}

type encodeRequest struct {
	FEN string `json:"fen"`
	UCI string `json:"uci"`
}

type replayRequest struct {
	PGN string `json:"pgn"`
}

type tagJSON struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type exportRequest struct {
	Tags  []tagJSON `json:"tags"`
	Moves []string  `json:"moves"`
}

type legalMove struct {
	UCI string `json:"uci"`
	SAN string `json:"san"`
}

// position builds the request's position: fen, or the start when empty.
func (s *Server) position(fen string) (oracle.Position, error) {
	if fen == "" {
		fen = engine.InitialFEN
	}
	return oracle.New(s.kind, fen)
}

// statusFor maps translator errors to HTTP status codes: bad input is 400,
// input that parses but does not translate is 422.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrInvalidFEN),
		stderrors.Is(err, errors.ErrInvalidConfig):
		return fiber.StatusBadRequest
	case stderrors.Is(err, errors.ErrMalformedSquare),
		stderrors.Is(err, errors.ErrMalformedMove),
		stderrors.Is(err, errors.ErrNoMovetextSection),
		stderrors.Is(err, errors.ErrNoMatchingMove),
		stderrors.Is(err, errors.ErrNoMatchingCapture),
		stderrors.Is(err, errors.ErrNoMatchingPromotion),
		stderrors.Is(err, errors.ErrAmbiguousMove),
		stderrors.Is(err, errors.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func (s *Server) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		s.log.Error().Err(err).Str("rid", GetRequestID(c)).Msg("request failed")
	}
	body := fiber.Map{"error": err.Error()}
	var re *errors.ReplayError
	if stderrors.As(err, &re) {
		body["ply"] = re.Ply
		body["token"] = re.Token
	}
	return c.Status(status).JSON(body)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// Decode handles POST /api/decode.
func (s *Server) Decode(c *fiber.Ctx) error {
	var req decodeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.SAN == "" {
		return badRequest(c, "san is required")
	}
	pos, err := s.position(req.FEN)
	if err != nil {
		return s.fail(c, err)
	}
	uci, err := san.Decode(pos.LegalMoves(), req.SAN, pos.Turn())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"uci": uci})
}

// Encode handles POST /api/encode.
func (s *Server) Encode(c *fiber.Ctx) error {
	var req encodeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.UCI == "" {
		return badRequest(c, "uci is required")
	}
	pos, err := s.position(req.FEN)
	if err != nil {
		return s.fail(c, err)
	}
	out, err := san.EncodeMove(pos, req.UCI)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"san": out})
}

// Replay handles POST /api/replay.
func (s *Server) Replay(c *fiber.Ctx) error {
	var req replayRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	start, err := game.StartPosition(s.kind, parser.ParseTags(req.PGN))
	if err != nil {
		return s.fail(c, err)
	}
	res, err := game.Replay(start, req.PGN)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"moves":     res.Moves,
		"san":       res.SAN,
		"final_fen": res.Final.FEN(),
		"outcome":   game.Outcome(res.Final),
	})
}

// Export handles POST /api/export.
func (s *Server) Export(c *fiber.Ctx) error {
	var req exportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	tags := make([]chess.Tag, len(req.Tags))
	for i, t := range req.Tags {
		tags[i] = chess.Tag{Name: t.Name, Value: t.Value}
	}
	out, err := game.Export(tags, req.Moves, game.WithOracle(s.kind))
	if err != nil {
		return s.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(out)
}

// Legal handles GET /api/legal.
func (s *Server) Legal(c *fiber.Ctx) error {
	pos, err := s.position(c.Query("fen"))
	if err != nil {
		return s.fail(c, err)
	}
	moves := pos.LegalMoves()
	list := make([]legalMove, 0, len(moves))
	for _, m := range moves {
		status, err := oracle.StatusAfter(pos, m)
		if err != nil {
			return s.fail(c, err)
		}
		list = append(list, legalMove{UCI: m.Coordinate(), SAN: san.Encode(moves, m, status)})
	}
	return c.JSON(fiber.Map{
		"fen":     pos.FEN(),
		"moves":   list,
		"outcome": game.Outcome(pos),
	})
}
