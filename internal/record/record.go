// Package record writes per-frame snapshots as zstd-compressed JSON lines.
package record

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Writer appends one JSON object per line to a zstd stream.
type Writer struct {
	mu    sync.Mutex
	f     io.Closer // owned file, nil when wrapping a caller's writer
	enc   *zstd.Encoder
	w     *bufio.Writer
	lines int
}

// Create opens path (creating parent directories) and returns a writer that
// owns the file.
func Create(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.f = f
	return w, nil
}

// NewWriter compresses into dst. Closing the writer does not close dst.
func NewWriter(dst io.Writer) (*Writer, error) {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	return &Writer{enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}, nil
}

// Write appends v as one line.
func (w *Writer) Write(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.enc == nil {
		return os.ErrClosed
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	w.lines++
	return nil
}

// Lines returns how many records were written.
func (w *Writer) Lines() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lines
}

// Close flushes and finishes the zstd frame.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.enc == nil {
		return nil
	}
	err := w.w.Flush()
	if cerr := w.enc.Close(); err == nil {
		err = cerr
	}
	w.enc = nil
	if w.f != nil {
		if cerr := w.f.Close(); err == nil {
			err = cerr
		}
		w.f = nil
	}
	return err
}

// Each decompresses r and calls fn with every line.
func Each(r io.Reader, fn func(line []byte) error) error {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return fmt.Errorf("zstd decoder: %w", err)
	}
	defer dec.Close()
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 4<<20)
	for sc.Scan() {
		if err := fn(sc.Bytes()); err != nil {
			return err
		}
	}
	return sc.Err()
}

// ReadFile decodes every line of a recording into T.
func ReadFile[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []T
	err = Each(f, func(line []byte) error {
		var v T
		if err := json.Unmarshal(line, &v); err != nil {
			return fmt.Errorf("line %d: %w", len(out)+1, err)
		}
		out = append(out, v)
		return nil
	})
	return out, err
}
