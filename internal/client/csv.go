package client

import (
	"bufio"
	"fmt"
	"io"

	"github.com/matteog/multilatnet/internal/fsutil"
)

// CSVSink writes one semicolon-separated "X;Y;Z" row per tick, with a
// header row and 3-decimal precision.
type CSVSink struct {
	file io.WriteCloser
	w    *bufio.Writer
}

// NewCSVSink creates (or truncates) path on fsys and writes the
// header row.
func NewCSVSink(fsys fsutil.FileSystem, path string) (*CSVSink, error) {
	f, err := fsys.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv sink: create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if _, err := w.WriteString("X;Y;Z\n"); err != nil {
		f.Close()
		return nil, fmt.Errorf("csv sink: write header: %w", err)
	}
	return &CSVSink{file: f, w: w}, nil
}

// Write appends one smoothed position row.
func (s *CSVSink) Write(pos [3]float64) error {
	_, err := fmt.Fprintf(s.w, "%.3f;%.3f;%.3f\n", pos[0], pos[1], pos[2])
	return err
}

// Close flushes buffered output and closes the underlying file.
func (s *CSVSink) Close() error {
	if err := s.w.Flush(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
