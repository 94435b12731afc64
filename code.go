package huffman

import "fmt"

// Core constants for the codec and its on-disk format.
const (
	MaxCodeLen          = 32 // widest code the bit packer and code table accept
	MaxDecodableCodeLen = 25 // widest code the encoder emits (window 32 bits - 7 carried bits)
	alphabetSize        = 256

	HeaderSize = 16        // FileSize (u64) + table length (u64)
	EntrySize  = 1 + 4 + 4 // symbol (u8) + code value (u32) + code length (u32)

	// MinInputSize lets the decoder parse a header with a full 256-entry
	// table from a single initial read.
	MinInputSize = HeaderSize + EntrySize*alphabetSize
	// MinOutputSize holds one maximum-width code.
	MinOutputSize = MaxCodeLen / 8

	DefaultBufferSize = 4096

	// symbolWriterSize is the coalescing buffer of the decoder output.
	symbolWriterSize = 4096
)

// Code is a prefix code: the low Length bits of Value, most significant bit first.
type Code struct {
	Value  uint32
	Length uint8
}

// String renders the code as its bit string, e.g. "0101".
func (c Code) String() string {
	if c.Length == 0 {
		return "-"
	}
	return fmt.Sprintf("%0*b", c.Length, c.Value&lowMask(int(c.Length)))
}

// Entry binds a symbol to its code. It is the unit of the persisted symbol table.
type Entry struct {
	Symbol byte
	Code   Code
}

// lowMask returns a mask selecting the low n bits (n in 0..32).
func lowMask(n int) uint32 {
	if n >= 32 {
		return ^uint32(0)
	}
	return uint32(1)<<uint(n) - 1
}
