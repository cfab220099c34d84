package transport

import (
	"context"
	"fmt"
	"io"
	"os"
)

// FileRewriter truncates its file on open and tracks read and write
// positions independently: writes always append from the high-water mark,
// and reads rewind to the start of the file rather than chasing the write
// cursor, so a reader sees everything written since open in order (spec.md
// §4.4). Useful as a sink whose accumulated output can be replayed from the
// beginning, e.g. in tests.
type FileRewriter struct {
	Path string

	f           *os.File
	readOffset  int64
	writeOffset int64
}

func NewFileRewriter(path string) *FileRewriter {
	return &FileRewriter{Path: path}
}

func (t *FileRewriter) Open(ctx context.Context) error {
	f, err := os.OpenFile(t.Path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("transport: open %s: %w", t.Path, err)
	}
	t.f = f
	t.readOffset = 0
	t.writeOffset = 0
	return nil
}

func (t *FileRewriter) Close() error {
	if t.f == nil {
		return nil
	}
	return t.f.Close()
}

func (t *FileRewriter) Read(ctx context.Context) ([]byte, []bool, error) {
	buf := make([]byte, 4096)
	n, err := t.f.ReadAt(buf, t.readOffset)
	if n > 0 {
		t.readOffset += int64(n)
		return buf[:n], nil, nil
	}
	if err == io.EOF {
		return nil, nil, io.EOF
	}
	return nil, nil, err
}

func (t *FileRewriter) Write(ctx context.Context, data []byte, _ []bool) (int, error) {
	n, err := t.f.WriteAt(data, t.writeOffset)
	t.writeOffset += int64(n)
	return n, err
}

func (t *FileRewriter) Flush() error {
	return t.f.Sync()
}
