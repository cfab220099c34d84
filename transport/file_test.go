package transport

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_AppendAndSequentialRead(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "device.log")

	f := NewFile(path)
	require.NoError(t, f.Open(ctx))
	defer f.Close()

	_, err := f.Write(ctx, []byte("hello "), nil)
	require.NoError(t, err)
	_, err = f.Write(ctx, []byte("world"), nil)
	require.NoError(t, err)
	require.NoError(t, f.Flush())

	data, _, err := f.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestFileRewriter_TruncatesOnOpenAndRewindsReads(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "device.log")

	fr := NewFileRewriter(path)
	require.NoError(t, fr.Open(ctx))
	defer fr.Close()

	_, err := fr.Write(ctx, []byte("abc"), nil)
	require.NoError(t, err)
	_, err = fr.Write(ctx, []byte("def"), nil)
	require.NoError(t, err)

	data, _, err := fr.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abcdef", string(data))

	_, _, err = fr.Read(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestFileRewriter_ReopenTruncates(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "device.log")

	first := NewFileRewriter(path)
	require.NoError(t, first.Open(ctx))
	_, err := first.Write(ctx, []byte("stale data"), nil)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := NewFileRewriter(path)
	require.NoError(t, second.Open(ctx))
	defer second.Close()

	_, _, err = second.Read(ctx)
	assert.ErrorIs(t, err, io.EOF)
}
