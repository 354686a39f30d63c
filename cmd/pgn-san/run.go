package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"io"
	"runtime"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lgbarn/pgn-san-go/internal/config"
	"github.com/lgbarn/pgn-san-go/internal/errors"
	"github.com/lgbarn/pgn-san-go/internal/game"
	"github.com/lgbarn/pgn-san-go/internal/input"
	"github.com/lgbarn/pgn-san-go/internal/output"
	"github.com/lgbarn/pgn-san-go/internal/parser"
	"github.com/lgbarn/pgn-san-go/internal/worker"
)

type stats struct {
	ok     int
	failed int
}

// newGameWriter returns the writer for replayed games.
func newGameWriter(cfg *config.Config, w io.Writer) output.GameWriter {
	if cfg.JSONFormat {
		return output.NewJSONWriter(w)
	}
	return output.NewTextWriter(w)
}

// runImport replays every game of every input on the worker pool and writes
// them in input order. A game that fails to replay is logged and still
// written with the plies applied before the failure.
func runImport(ctx context.Context, cfg *config.Config, log zerolog.Logger, paths []string, w io.Writer) (stats, error) {
	var transcripts []string
	for _, path := range paths {
		text, err := input.ReadAll(path)
		if err != nil {
			return stats{}, err
		}
		games := parser.SplitGames(text)
		log.Debug().Str("file", path).Int("games", len(games)).Msg("read input")
		transcripts = append(transcripts, games...)
	}

	n := cfg.Workers
	if n == 0 {
		n = runtime.NumCPU()
	}
	pool := worker.NewPool(worker.ReplayProcessor(cfg.Oracle), worker.WithWorkers(n), worker.WithBufferSize(2*n))
	gw := newGameWriter(cfg, w)

	var st stats
	err := worker.Ordered(pool.Run(ctx, transcripts), func(r worker.ProcessResult) error {
		if r.Error != nil {
			var re *errors.ReplayError
			if stderrors.As(r.Error, &re) {
				re.Game = r.Index + 1
			}
			st.failed++
			log.Warn().Err(r.Error).Int("game", r.Index+1).Msg("replay failed")
		} else {
			st.ok++
		}
		return gw.WriteGame(r.Result.Record(r.Index, r.Error))
	})
	if cerr := gw.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = ctx.Err()
	}
	return st, err
}

// runExport reads one whitespace-separated coordinate history per line and
// writes each as a PGN game followed by a blank line. Blank lines and lines
// starting with '#' are skipped.
func runExport(cfg *config.Config, log zerolog.Logger, paths []string, w io.Writer) (stats, error) {
	var st stats
	for _, path := range paths {
		rc, err := input.Open(path)
		if err != nil {
			return st, err
		}
		err = exportLines(rc, cfg, log, w, &st)
		rc.Close()
		if err != nil {
			return st, errors.Wrapf(err, "export %s", path)
		}
	}
	return st, nil
}

func exportLines(r io.Reader, cfg *config.Config, log zerolog.Logger, w io.Writer, st *stats) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		pgn, err := game.Export(nil, strings.Fields(text), game.WithConfig(cfg.Export))
		if err != nil {
			st.failed++
			log.Warn().Err(err).Int("line", line).Msg("export failed")
			continue
		}
		st.ok++
		if _, err := io.WriteString(w, pgn+"\n"); err != nil {
			return err
		}
	}
	return scanner.Err()
}
