package huffman

import (
	"fmt"
	"io"
)

// SymbolWriter coalesces single-symbol writes into one Write call per
// filled buffer. It is used by the decoder in front of its Output.
type SymbolWriter struct {
	w   io.Writer
	buf []byte
	n   int
}

// NewSymbolWriter returns a writer buffering up to size symbols.
func NewSymbolWriter(w io.Writer, size int) *SymbolWriter {
	if size <= 0 {
		size = symbolWriterSize
	}
	return &SymbolWriter{w: w, buf: make([]byte, size)}
}

// WriteByte buffers sym, flushing first when the buffer is full.
func (s *SymbolWriter) WriteByte(sym byte) error {
	if s.n == len(s.buf) {
		if err := s.Flush(); err != nil {
			return err
		}
	}
	s.buf[s.n] = sym
	s.n++
	return nil
}

// Flush sends all buffered symbols to the underlying writer in one call.
// It is a no-op when nothing is buffered.
func (s *SymbolWriter) Flush() error {
	if s.n == 0 {
		return nil
	}
	n, err := s.w.Write(s.buf[:s.n])
	if err == nil && n < s.n {
		err = io.ErrShortWrite
	}
	if err != nil {
		return fmt.Errorf("huffman: write output: %w", err)
	}
	s.n = 0
	return nil
}

// Buffered is the number of symbols waiting for Flush.
func (s *SymbolWriter) Buffered() int { return s.n }
