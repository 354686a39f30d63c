// Package httpapi exposes the SAN translator over HTTP and a websocket
// replay stream.
package httpapi

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/lgbarn/pgn-san-go/internal/config"
	"github.com/lgbarn/pgn-san-go/internal/oracle"
)

// Server holds what every handler shares. Each request builds its own
// position, so handlers are safe to run concurrently.
type Server struct {
	kind oracle.Kind
	log  zerolog.Logger
}

// New builds the fiber app serving the API.
func New(cfg *config.ServerConfig, log zerolog.Logger) *fiber.App {
	s := &Server{kind: cfg.Oracle, log: log}

	app := fiber.New(fiber.Config{
		AppName:               "pgn-san-api",
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
	})
	app.Use(RequestID())
	app.Use(AccessLog(log))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Error().
				Str("rid", GetRequestID(c)).
				Interface("panic", e).
				Bytes("stack", debug.Stack()).
				Msg("handler panicked")
		},
	}))

	api := app.Group("/api")
	api.Post("/decode", s.Decode)
	api.Post("/encode", s.Encode)
	api.Post("/replay", s.Replay)
	api.Post("/export", s.Export)
	api.Get("/legal", s.Legal)

	app.Use("/ws", WebSocketUpgrade())
	app.Get("/ws/replay", websocket.New(s.ReplayStream, websocket.Config{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
	}))

	return app
}
