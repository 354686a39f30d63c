package game

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lgbarn/pgn-san-go/internal/chess"
	"github.com/lgbarn/pgn-san-go/internal/config"
	"github.com/lgbarn/pgn-san-go/internal/errors"
	"github.com/lgbarn/pgn-san-go/internal/oracle"
	"github.com/lgbarn/pgn-san-go/internal/output"
	"github.com/lgbarn/pgn-san-go/internal/parser"
	"github.com/lgbarn/pgn-san-go/internal/san"
)

type exportOptions struct {
	kind          oracle.Kind
	maxLineLength int
	keepResults   bool
	now           func() time.Time
}

// ExportOption configures Export.
type ExportOption func(*exportOptions)

// WithOracle sets the backend that replays the history.
func WithOracle(kind oracle.Kind) ExportOption {
	return func(o *exportOptions) {
		o.kind = kind
	}
}

// WithMaxLineLength wraps movetext lines at n characters; 0 disables
// wrapping.
func WithMaxLineLength(n int) ExportOption {
	return func(o *exportOptions) {
		o.maxLineLength = n
	}
}

// WithKeepResults sets whether the movetext ends with the result token.
func WithKeepResults(keep bool) ExportOption {
	return func(o *exportOptions) {
		o.keepResults = keep
	}
}

// WithClock sets the clock used for the default Date tag.
func WithClock(now func() time.Time) ExportOption {
	return func(o *exportOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithConfig applies every setting of cfg.
func WithConfig(cfg *config.ExportConfig) ExportOption {
	return func(o *exportOptions) {
		if cfg == nil {
			return
		}
		o.kind = cfg.Oracle
		o.maxLineLength = int(cfg.MaxLineLength)
		o.keepResults = cfg.KeepResults
	}
}

// Export writes a coordinate move history as a PGN transcript.
//
// The seven tag roster comes first, in roster order, with caller values
// overriding the defaults; the remaining tags follow in the order given.
// The history is replayed from the FEN tag when the tags carry one, and
// each ply is encoded with its check or mate suffix. A history entry that
// is not legal where it is played fails with a *errors.ReplayError
// wrapping errors.ErrIllegalMove.
func Export(tags []chess.Tag, history []string, opts ...ExportOption) (string, error) {
	o := exportOptions{
		kind:        oracle.DefaultKind,
		keepResults: true,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	merged := mergeTags(tags, o.now())
	pos, err := StartPosition(o.kind, merged)
	if err != nil {
		return "", errors.Wrap(err, "export start position")
	}

	var sb strings.Builder
	for _, tag := range merged {
		sb.WriteString(parser.FormatTag(tag))
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')

	lw := output.NewLineWriter(&sb, o.maxLineLength)
	if err := exportMoves(lw, pos, history); err != nil {
		return "", err
	}
	if o.keepResults {
		result, _ := chess.LookupTag(merged, chess.ResultTag)
		lw.Write(result)
	}
	if err := lw.Err(); err != nil {
		return "", err
	}
	sb.WriteByte('\n')
	return sb.String(), nil
}

// exportMoves writes the numbered SAN movetext of history played on pos.
func exportMoves(lw *output.LineWriter, pos oracle.Position, history []string) error {
	number := FullmoveNumber(pos)
	for i, coord := range history {
		side := pos.Turn()
		moves := pos.LegalMoves()
		m, err := findCoordinate(moves, coord)
		if err != nil {
			return &errors.ReplayError{Ply: i + 1, Token: coord, Err: fmt.Errorf("%w in %s", err, pos.FEN())}
		}
		if _, err := pos.Apply(m); err != nil {
			return &errors.ReplayError{Ply: i + 1, Token: coord, Err: err}
		}
		status := chess.NoCheck
		switch {
		case pos.IsCheckmate():
			status = chess.Checkmate
		case pos.InCheck():
			status = chess.Check
		}

		switch {
		case side == chess.White:
			lw.Write(strconv.Itoa(number) + ".")
		case i == 0:
			lw.Write(strconv.Itoa(number) + "...")
		}
		lw.Write(san.Encode(moves, m, status))
		if side == chess.Black {
			number++
		}
	}
	return nil
}

// findCoordinate returns the move of moves named by coord.
func findCoordinate(moves []chess.LegalMove, coord string) (chess.LegalMove, error) {
	from, to, promo, err := chess.ParseCoordinate(coord)
	if err != nil {
		return chess.LegalMove{}, fmt.Errorf("%w: %w", errors.ErrIllegalMove, err)
	}
	m, ok := oracle.Find(moves, from, to, promo)
	if !ok {
		return chess.LegalMove{}, fmt.Errorf("%s: %w", coord, errors.ErrIllegalMove)
	}
	return m, nil
}

// mergeTags returns the seven tag roster, filled from tags where present
// and from the defaults otherwise, followed by the other tags in order.
// Only the first tag of each name is kept.
func mergeTags(tags []chess.Tag, now time.Time) []chess.Tag {
	merged := chess.DefaultTags(now)
	for i := range merged {
		if v, ok := chess.LookupTag(tags, merged[i].Name); ok {
			merged[i].Value = v
		}
	}

	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if chess.IsSevenTagRosterTag(tag.Name) || seen[tag.Name] {
			continue
		}
		seen[tag.Name] = true
		merged = append(merged, tag)
	}
	return merged
}
