package huffman

import (
	"errors"
	"fmt"
	"io"
)

// Input is the source side of an Encode or Decode run.
type Input interface {
	// ReadChunk replaces the contents of *buf with the next chunk of input,
	// growing it as needed. It returns false once the input is exhausted.
	ReadChunk(buf *[]byte) (bool, error)
	// ReadFull reads into p until p is full or the input is exhausted and
	// returns the number of bytes read. A short count is not an error.
	ReadFull(p []byte) (int, error)
	// Reset rewinds the input to its start.
	Reset() error
}

// Output is the sink side of an Encode or Decode run.
type Output interface {
	io.Writer
	// Skip moves the write position n bytes forward without writing.
	Skip(n int64) error
	// Reset moves the write position back to the start.
	Reset() error
}

// NewInput adapts a seekable reader. ReadChunk returns chunks of up to
// chunkSize bytes; a non-positive chunkSize selects DefaultBufferSize.
func NewInput(r io.ReadSeeker, chunkSize int) Input {
	if chunkSize <= 0 {
		chunkSize = DefaultBufferSize
	}
	return &seekInput{r: r, chunkSize: chunkSize}
}

type seekInput struct {
	r         io.ReadSeeker
	chunkSize int
	eof       bool
}

func (in *seekInput) ReadChunk(buf *[]byte) (bool, error) {
	if in.eof {
		*buf = (*buf)[:0]
		return false, nil
	}
	b := *buf
	if cap(b) < in.chunkSize {
		b = make([]byte, in.chunkSize)
	}
	b = b[:in.chunkSize]
	n, err := in.ReadFull(b)
	*buf = b[:n]
	if err != nil {
		return false, err
	}
	if n < in.chunkSize {
		in.eof = true
	}
	return n > 0, nil
}

func (in *seekInput) ReadFull(p []byte) (int, error) {
	n, err := io.ReadFull(in.r, p)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		in.eof = true
		return n, nil
	}
	if err != nil {
		return n, fmt.Errorf("huffman: read input: %w", err)
	}
	return n, nil
}

func (in *seekInput) Reset() error {
	in.eof = false
	if _, err := in.r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("huffman: rewind input: %w", err)
	}
	return nil
}

// NewOutput adapts a seekable writer such as an *os.File.
func NewOutput(w io.WriteSeeker) Output {
	return &seekOutput{w: w}
}

type seekOutput struct {
	w io.WriteSeeker
}

func (out *seekOutput) Write(p []byte) (int, error) {
	n, err := out.w.Write(p)
	if err != nil {
		return n, fmt.Errorf("huffman: write output: %w", err)
	}
	return n, nil
}

func (out *seekOutput) Skip(n int64) error {
	if _, err := out.w.Seek(n, io.SeekCurrent); err != nil {
		return fmt.Errorf("huffman: skip output: %w", err)
	}
	return nil
}

func (out *seekOutput) Reset() error {
	if _, err := out.w.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("huffman: rewind output: %w", err)
	}
	return nil
}

// Buffer is an in-memory Output. Skipped regions read back as zero bytes.
// The zero value is an empty buffer ready for use.
type Buffer struct {
	data []byte
	pos  int
}

// Write writes p at the current position, overwriting or extending the
// buffer.
func (b *Buffer) Write(p []byte) (int, error) {
	b.grow(b.pos + len(p))
	n := copy(b.data[b.pos:], p)
	b.pos += n
	return n, nil
}

// Skip moves the position n bytes forward, extending the buffer with zeros.
func (b *Buffer) Skip(n int64) error {
	if n < 0 {
		return fmt.Errorf("huffman: negative skip %d", n)
	}
	b.pos += int(n)
	b.grow(b.pos)
	return nil
}

// Reset moves the position back to the start. The contents are kept.
func (b *Buffer) Reset() error {
	b.pos = 0
	return nil
}

// Bytes returns the buffer contents.
func (b *Buffer) Bytes() []byte { return b.data }

// Len is the size of the buffer contents.
func (b *Buffer) Len() int { return len(b.data) }

func (b *Buffer) grow(size int) {
	if size <= len(b.data) {
		return
	}
	if size <= cap(b.data) {
		b.data = b.data[:size]
		return
	}
	data := make([]byte, size, max(size, 2*cap(b.data)))
	copy(data, b.data)
	b.data = data
}
