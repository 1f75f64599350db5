// Package logbuf buffers log output while a full-screen TUI owns the
// terminal, then replays it once the TUI exits.
package logbuf

import (
	"bytes"
	"io"
	"sync"
)

// Writer is an io.Writer that accumulates writes in memory. The zero value
// is ready to use. Safe for concurrent writers.
type Writer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

// Len returns the number of buffered bytes.
func (w *Writer) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Len()
}

// Flush writes everything buffered so far to dst and resets the buffer.
// Each line is written separately so line-oriented destinations like
// zerolog.ConsoleWriter can parse them.
func (w *Writer) Flush(dst io.Writer) error {
	w.mu.Lock()
	data := w.buf.Bytes()
	w.buf = bytes.Buffer{}
	w.mu.Unlock()

	for len(data) > 0 {
		line := data
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line = data[:i+1]
			data = data[i+1:]
		} else {
			data = nil
		}
		if _, err := dst.Write(line); err != nil {
			return err
		}
	}
	return nil
}
