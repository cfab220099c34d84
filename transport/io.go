package transport

import (
	"context"
	"io"
)

// IO wraps an already-open io.ReadWriteCloser (a pipe, an in-process test
// fixture, anything the caller obtained by its own means) as a Transport.
// Open is a no-op since the underlying stream is already live; Close
// delegates if the wrapped value implements io.Closer.
type IO struct {
	RW io.ReadWriter
}

func NewIO(rw io.ReadWriter) *IO {
	return &IO{RW: rw}
}

func (t *IO) Open(ctx context.Context) error {
	return nil
}

func (t *IO) Close() error {
	if closer, ok := t.RW.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (t *IO) Read(ctx context.Context) ([]byte, []bool, error) {
	buf := make([]byte, 4096)
	n, err := t.RW.Read(buf)
	if err != nil {
		return nil, nil, err
	}
	return buf[:n], nil, nil
}

func (t *IO) Write(ctx context.Context, data []byte, _ []bool) (int, error) {
	return t.RW.Write(data)
}

func (t *IO) Flush() error {
	if f, ok := t.RW.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}
