package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/pgn-san-go/internal/chess"
)

// Ply is one replayed half-move.
type Ply struct {
	Number int
	Colour chess.Colour
	SAN    string
	UCI    string
}

// Record is the outcome of replaying one game. Plies holds every ply that
// was applied before Err, if any, stopped the replay.
type Record struct {
	Index    int
	Tags     []chess.Tag
	Plies    []Ply
	FinalFEN string
	Err      error
}

// Coordinates returns the coordinate form of every replayed ply.
func (r *Record) Coordinates() []string {
	moves := make([]string, len(r.Plies))
	for i, p := range r.Plies {
		moves[i] = p.UCI
	}
	return moves
}

// GameWriter is the interface for writing replayed games to output.
type GameWriter interface {
	// WriteGame writes a single game to the output.
	WriteGame(rec *Record) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer. For batch writers this also writes any
	// pending output.
	Close() error
}

// TextWriter writes one line of space-separated coordinate moves per game.
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// WriteGame writes the coordinate moves of rec on a single line.
func (tw *TextWriter) WriteGame(rec *Record) error {
	_, err := io.WriteString(tw.w, strings.Join(rec.Coordinates(), " ")+"\n")
	return err
}

// Flush is a no-op; text output is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	games  []*JSONGame
	single bool // If true, write each game immediately instead of batching
}

// NewJSONWriter creates a JSON writer that batches games and writes them as
// an array on Close.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:     w,
		games: make([]*JSONGame, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:      w,
		single: true,
	}
}

// WriteGame buffers a game for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteGame(rec *Record) error {
	jg := RecordToJSON(rec)
	if jw.single {
		enc := json.NewEncoder(jw.w)
		enc.SetIndent("", "  ")
		return enc.Encode(jg)
	}
	jw.games = append(jw.games, jg)
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.games) == 0 {
		return nil
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(&JSONOutput{Games: jw.games})

	jw.games = jw.games[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
