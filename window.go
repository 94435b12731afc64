package huffman

import "fmt"

const windowBits = 32

// CodeWindow is the decoder-side bit accumulator. It holds up to 32
// unconsumed bits and enumerates their prefixes, shortest first, as candidate
// codes. Rewind drops the prefix that matched and keeps the remainder at the
// front, so bytes fed later attach right after the unconsumed bits.
//
// The zero value is an empty window ready for use.
type CodeWindow struct {
	data uint32 // held bits, left-aligned
	held int    // number of valid bits in data

	value  uint32
	length int
}

// Feed appends 8 bits to the tail of the window. It fails with ErrWindowFull
// when fewer than 8 bits of room remain.
func (w *CodeWindow) Feed(b byte) error {
	if windowBits-w.held < 8 {
		return fmt.Errorf("%w: %d bits held", ErrWindowFull, w.held)
	}
	shift := uint(windowBits - w.held - 8)
	w.data &^= uint32(0xFF) << shift
	w.data |= uint32(b) << shift
	w.held += 8
	return nil
}

// Next advances to the prefix one bit longer than the current one. It returns
// false once every prefix of the held bits has been produced.
func (w *CodeWindow) Next() bool {
	if w.length == w.held {
		return false
	}
	w.length++
	w.value = w.data >> uint(windowBits-w.length)
	return true
}

// Value is the current prefix, right-aligned.
func (w *CodeWindow) Value() uint32 { return w.value }

// Len is the bit length of the current prefix.
func (w *CodeWindow) Len() int { return w.length }

// Held is the number of unconsumed bits in the window.
func (w *CodeWindow) Held() int { return w.held }

// Rewind discards the current prefix and restarts enumeration at length 1
// over the remaining bits.
func (w *CodeWindow) Rewind() {
	if w.length == windowBits {
		w.data = 0
	} else {
		w.data <<= uint(w.length)
	}
	w.held -= w.length
	w.length = 0
	w.value = 0
}
