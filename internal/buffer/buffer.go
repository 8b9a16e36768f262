// Package buffer holds the captured input of a pager session as an
// immutable, 0-indexed sequence of UTF-8 lines.
package buffer

import (
	"bytes"
	"context"
	"io"
	"unicode/utf8"

	"github.com/Iron-Ham/skim/internal/errors"
)

// readChunk is the amount read between context checks.
const readChunk = 64 * 1024

// Buffer is the line store. It is never mutated after ingestion and may be
// shared read-only.
type Buffer struct {
	lines []string
}

// Ingest reads r to EOF and splits it into lines.
func Ingest(r io.Reader) (*Buffer, error) {
	return IngestContext(context.Background(), r)
}

// IngestContext is Ingest with cancellation checked between reads.
func IngestContext(ctx context.Context, r io.Reader) (*Buffer, error) {
	data, err := ReadAll(ctx, r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// ReadAll reads r to EOF, checking ctx between reads.
func ReadAll(ctx context.Context, r io.Reader) ([]byte, error) {
	var data bytes.Buffer
	chunk := make([]byte, readChunk)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := r.Read(chunk)
		data.Write(chunk[:n])
		if err == io.EOF {
			return data.Bytes(), nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "read input")
		}
	}
}

// Parse splits data into lines.
//
// Lines end at "\n"; a "\r" immediately before it is dropped. A single
// trailing terminator does not produce an empty final line, but any further
// empty lines are kept. Input that is not valid UTF-8 fails with
// *errors.EncodingError and no buffer is returned. data is not retained.
func Parse(data []byte) (*Buffer, error) {
	if off := invalidOffset(data); off >= 0 {
		line := 1 + bytes.Count(data[:off], []byte{'\n'})
		return nil, errors.NewEncodingError(int64(off), line)
	}

	if len(data) == 0 {
		return &Buffer{}, nil
	}

	data = bytes.TrimSuffix(data, []byte{'\n'})
	raw := bytes.Split(data, []byte{'\n'})
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = string(bytes.TrimSuffix(l, []byte{'\r'}))
	}
	return &Buffer{lines: lines}, nil
}

// invalidOffset returns the byte offset of the first invalid UTF-8 sequence,
// or -1.
func invalidOffset(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}

// FromLines builds a Buffer directly from already-split lines.
func FromLines(lines []string) *Buffer {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &Buffer{lines: cp}
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineAt returns line i. An index outside [0, LineCount()) is an
// *errors.IndexError.
func (b *Buffer) LineAt(i int) (string, error) {
	if i < 0 || i >= len(b.lines) {
		return "", errors.NewIndexError(i, len(b.lines))
	}
	return b.lines[i], nil
}
