// Package fs writes the crawl output log to the local filesystem.
package fs

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/bfscrawl"
)

// Ensure Writer implements bfscrawl.Sink at compile time.
var _ bfscrawl.Sink = (*Writer)(nil)

// Writer appends crawl records to a plain text log, one URL per line.
// Visited URLs are written bare; discovered URLs are prefixed with a tab.
// Each record is flushed before the call returns. It is safe for
// concurrent use.
type Writer struct {
	mu   sync.Mutex
	file *os.File
	buf  *bufio.Writer
}

// Create truncates or creates the log at path, creating parent
// directories as needed.
func Create(path string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &Writer{file: f, buf: bufio.NewWriter(f)}, nil
}

// Visited writes the URL as a bare line.
func (w *Writer) Visited(_ context.Context, rec bfscrawl.Record) error {
	return w.writeLine("", rec.URL)
}

// Discovered writes the URL as a tab-prefixed line.
func (w *Writer) Discovered(_ context.Context, rec bfscrawl.Record) error {
	return w.writeLine("\t", rec.URL)
}

// Close flushes and closes the log.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	flushErr := w.buf.Flush()
	closeErr := w.file.Close()
	w.file = nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

func (w *Writer) writeLine(prefix, url string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return bfscrawl.Errorf(bfscrawl.EINTERNAL, "output log closed")
	}
	if _, err := w.buf.WriteString(prefix); err != nil {
		return err
	}
	if _, err := w.buf.WriteString(url); err != nil {
		return err
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return err
	}
	return w.buf.Flush()
}
