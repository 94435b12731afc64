package huffman

import (
	"bytes"
	"fmt"
	"log/slog"
)

// BufferConfig sizes the scratch buffers of a codec run.
type BufferConfig struct {
	// InputSize is the read size of the decoder and the chunk capacity of
	// the encoder. It must hold a header with a full symbol table.
	InputSize int
	// OutputSize is the bit packer buffer of the encoder. It must hold one
	// maximum-width code.
	OutputSize int
}

// Config controls a Codec.
type Config struct {
	Buffer BufferConfig
	// Logger receives debug records about each run. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with DefaultBufferSize buffers.
func DefaultConfig() Config {
	return Config{
		Buffer: BufferConfig{
			InputSize:  DefaultBufferSize,
			OutputSize: DefaultBufferSize,
		},
	}
}

// Validate checks the buffer sizes against their minimums.
func (c Config) Validate() error {
	if c.Buffer.InputSize < MinInputSize {
		return fmt.Errorf("%w: %d bytes, should be >= %d", ErrInputBufferTooSmall, c.Buffer.InputSize, MinInputSize)
	}
	if c.Buffer.OutputSize < MinOutputSize {
		return fmt.Errorf("%w: %d bytes, should be >= %d", ErrOutputBufferTooSmall, c.Buffer.OutputSize, MinOutputSize)
	}
	return nil
}

// Codec runs encode and decode passes with a fixed configuration. Every call
// owns its tree, tables and scratch buffers, so a Codec holds no state
// between calls.
type Codec struct {
	cfg Config
	log *slog.Logger
}

// New returns a Codec for cfg. The configuration is validated on every
// Encode and Decode call, before any I/O.
func New(cfg Config) *Codec {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Codec{cfg: cfg, log: log}
}

// Encode compresses in to out with DefaultConfig.
func Encode(in Input, out Output) error { return New(DefaultConfig()).Encode(in, out) }

// Decode decompresses in to out with DefaultConfig.
func Decode(in Input, out Output) error { return New(DefaultConfig()).Decode(in, out) }

// Encode reads in twice: once to count symbol frequencies and once to pack
// every symbol's code. Header space is reserved first and stamped with the
// final file size and table length once the stream is written.
func (c *Codec) Encode(in Input, out Output) error {
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	// Collect frequencies, then build the tree.
	var (
		builder = TreeBuilder{MaxCodeLen: MaxDecodableCodeLen}
		chunk   = make([]byte, 0, c.cfg.Buffer.InputSize)
	)
	for {
		ok, err := in.ReadChunk(&chunk)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		builder.Process(chunk)
	}
	fileSize := builder.Total()
	tree := builder.Build()
	entries := tree.Entries()
	c.log.Debug("Built Huffman tree", "size", fileSize, "symbols", len(entries), "nodes", len(tree.Nodes), "maxlen", tree.MaxCodeLen())

	// Leave space for the header, then write the symbol table.
	if err := out.Skip(HeaderSize); err != nil {
		return err
	}
	if len(entries) > 0 {
		table := make([]byte, len(entries)*EntrySize)
		for i, e := range entries {
			putEntry(table[i*EntrySize:], e)
		}
		if err := writeFull(out, table); err != nil {
			return err
		}
	}

	// Second scan: pack each symbol's code.
	if err := in.Reset(); err != nil {
		return err
	}
	scratch := make([]byte, c.cfg.Buffer.OutputSize)
	bits, err := NewBitPacker(scratch)
	if err != nil {
		return err
	}
	var (
		seen    uint64
		written uint64
		flushes int
	)
	for {
		ok, err := in.ReadChunk(&chunk)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		seen += uint64(len(chunk))
		if seen > fileSize {
			return fmt.Errorf("%w: more than %d bytes on second pass", ErrInputChanged, fileSize)
		}
		for _, sym := range chunk {
			code, ok := tree.Code(sym)
			if !ok {
				return fmt.Errorf("%w: %#02x", ErrUnknownSymbol, sym)
			}
			if err := bits.Write(code.Value, int(code.Length)); err != nil {
				return err
			}
			if bits.IsFull() {
				if err := writeFull(out, scratch[:bits.BytesTaken()]); err != nil {
					return err
				}
				written += uint64(bits.BytesTaken())
				flushes++
				bits.Reset()
			}
		}
	}
	if seen != fileSize {
		return fmt.Errorf("%w: %d bytes on first pass, %d on second", ErrInputChanged, fileSize, seen)
	}
	if n := bits.BytesTaken(); n > 0 {
		if err := writeFull(out, scratch[:n]); err != nil {
			return err
		}
		written += uint64(n)
		flushes++
		bits.Reset()
	}

	// Finally, stamp the header.
	if err := out.Reset(); err != nil {
		return err
	}
	var hdr [HeaderSize]byte
	putHeader(hdr[:], fileSize, uint64(len(entries)))
	if err := writeFull(out, hdr[:]); err != nil {
		return err
	}
	c.log.Debug("Encoded stream", "size", fileSize, "packed", written, "flushes", flushes, "ratio", ratio(written, fileSize))
	return nil
}

// Decode parses the header from a single initial read, then streams the
// packed bits through a CodeWindow, matching each growing prefix against the
// code table. Decoding stops as soon as FileSize symbols are produced, so
// padding bits in the last byte are never interpreted.
func (c *Codec) Decode(in Input, out Output) error {
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	source := make([]byte, c.cfg.Buffer.InputSize)
	count, err := in.ReadFull(source)
	if err != nil {
		return err
	}
	header, offset, err := parseHeader(source[:count])
	if err != nil {
		return err
	}

	lookup := NewCodeTable()
	for _, e := range header.Table {
		lookup.Put(e)
	}
	c.log.Debug("Parsed header", "size", header.FileSize, "symbols", len(header.Table), "codes", lookup.Size())
	if header.FileSize == 0 {
		return nil
	}

	var (
		window  CodeWindow
		stream  = NewSymbolWriter(out, symbolWriterSize)
		decoded uint64
		data    = source[offset:count]
		reads   = 1
	)
	for {
		for _, b := range data {
			if err := window.Feed(b); err != nil {
				return fmt.Errorf("%w after %d symbols: %w", ErrUndefinedCode, decoded, err)
			}
			// Enumerate every prefix from the current point of view.
			for window.Next() {
				sym, ok := lookup.Find(window.Value(), window.Len())
				if !ok {
					continue
				}
				if err := stream.WriteByte(sym); err != nil {
					return err
				}
				window.Rewind()
				decoded++
				if decoded == header.FileSize {
					c.log.Debug("Decoded stream", "size", decoded, "reads", reads)
					return stream.Flush()
				}
			}
		}
		count, err = in.ReadFull(source)
		if err != nil {
			return err
		}
		if count == 0 {
			if err := stream.Flush(); err != nil {
				return err
			}
			return fmt.Errorf("%w: %d of %d symbols", ErrTruncatedStream, decoded, header.FileSize)
		}
		reads++
		data = source[:count]
	}
}

// EncodeAll compresses src and returns a newly allocated byte slice.
func EncodeAll(src []byte) ([]byte, error) {
	var out Buffer
	if err := Encode(NewInput(bytes.NewReader(src), DefaultBufferSize), &out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// DecodeAll decompresses src and returns a newly allocated byte slice.
func DecodeAll(src []byte) ([]byte, error) {
	var out Buffer
	if err := Decode(NewInput(bytes.NewReader(src), DefaultBufferSize), &out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeFull(out Output, p []byte) error {
	n, err := out.Write(p)
	if err != nil {
		return err
	}
	if n < len(p) {
		return fmt.Errorf("huffman: write output: short write (%d of %d bytes)", n, len(p))
	}
	return nil
}

func ratio(packed, size uint64) float64 {
	if size == 0 {
		return 0
	}
	return float64(HeaderSize+packed) / float64(size)
}
