// Package input opens PGN sources and output sinks, decompressing and
// compressing zstd streams when asked to.
package input

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/lgbarn/pgn-san-go/internal/errors"
)

// ZstdSuffix marks a zstd-compressed file.
const ZstdSuffix = ".zst"

// Stdio is the path naming standard input or output.
const Stdio = "-"

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// zstdReadCloser closes the decoder and then the file beneath it.
type zstdReadCloser struct {
	*zstd.Decoder
	file io.Closer
}

func (z *zstdReadCloser) Close() error {
	z.Decoder.Close()
	return z.file.Close()
}

// zstdWriteCloser flushes the encoder and then closes the file beneath it.
type zstdWriteCloser struct {
	*zstd.Encoder
	file io.Closer
}

func (z *zstdWriteCloser) Close() error {
	encErr := z.Encoder.Close()
	fileErr := z.file.Close()
	if encErr != nil {
		return encErr
	}
	return fileErr
}

// Open opens path for reading. "-" reads standard input and a ".zst"
// suffix decompresses the file.
func Open(path string) (io.ReadCloser, error) {
	if path == Stdio {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	if !strings.HasSuffix(path, ZstdSuffix) {
		return f, nil
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("zstd reader for %s: %w", path, err)
	}
	return &zstdReadCloser{Decoder: dec, file: f}, nil
}

// ReadAll reads the whole of path through Open.
func ReadAll(path string) (string, error) {
	rc, err := Open(path)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	return string(data), nil
}

// Create opens path for writing. An empty path or "-" writes standard
// output. Output is zstd-compressed when compress is set or path ends in
// ".zst".
func Create(path string, compress bool) (io.WriteCloser, error) {
	var w io.WriteCloser
	if path == "" || path == Stdio {
		w = nopWriteCloser{os.Stdout}
	} else {
		f, err := os.Create(path)
		if err != nil {
			return nil, errors.Wrapf(err, "create %s", path)
		}
		w = f
	}
	if !compress && !strings.HasSuffix(path, ZstdSuffix) {
		return w, nil
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("zstd writer for %s: %w", path, err)
	}
	return &zstdWriteCloser{Encoder: enc, file: w}, nil
}
