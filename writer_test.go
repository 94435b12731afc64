package huffman

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type countingWriter struct {
	bytes.Buffer
	calls int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.calls++
	return w.Buffer.Write(p)
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) / 2, nil }

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestSymbolWriterCoalesces(t *testing.T) {
	var w countingWriter
	s := NewSymbolWriter(&w, 4)
	for _, b := range []byte("abcdefghij") {
		require.NoError(t, s.WriteByte(b))
	}
	require.Equal(t, 2, w.calls)
	require.Equal(t, 2, s.Buffered())

	require.NoError(t, s.Flush())
	require.Equal(t, 3, w.calls)
	require.Equal(t, "abcdefghij", w.String())

	// Nothing buffered, nothing written.
	require.NoError(t, s.Flush())
	require.Equal(t, 3, w.calls)
}

func TestSymbolWriterDefaultSize(t *testing.T) {
	s := NewSymbolWriter(io.Discard, 0)
	require.Len(t, s.buf, symbolWriterSize)
}

func TestSymbolWriterErrors(t *testing.T) {
	s := NewSymbolWriter(shortWriter{}, 4)
	require.NoError(t, s.WriteByte('a'))
	require.NoError(t, s.WriteByte('b'))
	require.ErrorIs(t, s.Flush(), io.ErrShortWrite)

	boom := errors.New("boom")
	s = NewSymbolWriter(failingWriter{boom}, 1)
	require.NoError(t, s.WriteByte('a'))
	require.ErrorIs(t, s.WriteByte('b'), boom)
}
