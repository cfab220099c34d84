package transport

import (
	"context"
	"fmt"
	"os"
)

// File reads and writes a plain file, opened once and kept open for the
// transport's lifetime. mode=append (spec.md §4.4): writes always go to the
// end of the file, and reads advance sequentially from wherever the last
// read left off — the usual behavior for tailing a growing file or reading
// a static fixture (spec.md's S1 scenario: "device A (NMEA, File input)").
type File struct {
	Path string

	f          *os.File
	readOffset int64
}

func NewFile(path string) *File {
	return &File{Path: path}
}

func (t *File) Open(ctx context.Context) error {
	f, err := os.OpenFile(t.Path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("transport: open %s: %w", t.Path, err)
	}
	t.f = f
	return nil
}

func (t *File) Close() error {
	if t.f == nil {
		return nil
	}
	return t.f.Close()
}

func (t *File) Read(ctx context.Context) ([]byte, []bool, error) {
	// Writes move the shared O_APPEND file offset to EOF, so reads keep
	// their own cursor and use ReadAt.
	buf := make([]byte, 4096)
	n, err := t.f.ReadAt(buf, t.readOffset)
	t.readOffset += int64(n)
	if n > 0 {
		return buf[:n], nil, nil
	}
	return nil, nil, err
}

func (t *File) Write(ctx context.Context, data []byte, _ []bool) (int, error) {
	return t.f.Write(data)
}

func (t *File) Flush() error {
	return t.f.Sync()
}
