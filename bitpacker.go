package huffman

import "fmt"

// BitPacker packs codes of 1-32 bits, most significant bit first, into a
// caller-owned fixed-size byte buffer.
//
// Bits that do not fit once the buffer is exhausted are kept in an ordered
// tail queue of (byte, bit-length) pairs instead of being dropped. A single
// overflowing write is therefore always safe: the caller is expected to
// consume BytesTaken bytes and call Reset as soon as IsFull reports true, and
// Reset replays the tail at the start of the fresh buffer. A second write that
// cannot fit while a tail is pending, or any write into a full buffer, fails
// with ErrCapacity.
type BitPacker struct {
	buf []byte

	pos  int // index of the byte under the cursor
	free int // unused bits in buf[pos], 0..8

	totalBits    int
	consumedBits int

	tail []tailBits // FIFO of bits written past capacity
}

// tailBits holds the high length bits of value.
type tailBits struct {
	value  byte
	length int
}

// NewBitPacker returns a packer writing into buf. buf must hold at least one
// maximum-width code (MinOutputSize bytes).
func NewBitPacker(buf []byte) (*BitPacker, error) {
	if len(buf) < MinOutputSize {
		return nil, fmt.Errorf("%w: bit buffer has %d bytes, need >= %d", ErrOutputBufferTooSmall, len(buf), MinOutputSize)
	}
	p := &BitPacker{
		buf:       buf,
		totalBits: len(buf) * 8,
		tail:      make([]tailBits, 0, MinOutputSize),
	}
	p.Reset()
	return p, nil
}

// Write packs the low length bits of value at the cursor. length must be in
// [1, MaxCodeLen].
func (p *BitPacker) Write(value uint32, length int) error {
	if length < 1 || length > MaxCodeLen {
		return fmt.Errorf("%w: %d", ErrCodeLength, length)
	}
	if p.IsFull() || (p.RemainingBits() < length && len(p.tail) > 0) {
		return fmt.Errorf("%w: %d bits requested, %d remaining, %d pending", ErrCapacity, length, p.RemainingBits(), len(p.tail))
	}

	// Left-align the code so that its first bit is bit 31.
	code := value << uint(MaxCodeLen-length)
	for remaining := length; remaining > 0; {
		n := min(8, remaining)
		p.writeByte(byte(code>>24), n)
		remaining -= n
		code <<= 8
	}
	return nil
}

// Reset rewinds the cursor to the start of the buffer and replays the pending
// tail, in order, as the first bits of the new buffer.
func (p *BitPacker) Reset() {
	p.pos = 0
	p.free = 8
	p.consumedBits = 0
	p.buf[0] = 0

	// The tail never exceeds one code, which always fits a fresh buffer.
	for _, t := range p.tail {
		p.writeByte(t.value, t.length)
	}
	p.tail = p.tail[:0]
}

// IsFull reports whether no bit of capacity remains.
func (p *BitPacker) IsFull() bool { return p.RemainingBits() == 0 }

// BytesTaken is the number of bytes holding the bits written so far.
func (p *BitPacker) BytesTaken() int { return (p.consumedBits + 7) / 8 }

// RemainingBits is the buffer capacity not yet consumed.
func (p *BitPacker) RemainingBits() int { return p.totalBits - p.consumedBits }

// Pending is the number of bits waiting in the tail for the next Reset.
func (p *BitPacker) Pending() int {
	n := 0
	for _, t := range p.tail {
		n += t.length
	}
	return n
}

// writeByte places the high length bits of value (length in 1..8) at the
// cursor, splitting across the byte boundary when the current byte has fewer
// free bits.
func (p *BitPacker) writeByte(value byte, length int) {
	if p.free == 0 {
		if p.RemainingBits() < length {
			p.tail = append(p.tail, tailBits{value: value, length: length})
			return
		}
		p.pos++
		p.buf[p.pos] = 0
		p.free = 8
	}

	if p.free >= length {
		mask := byte(0xFF) << uint(8-length)
		p.buf[p.pos] |= (value & mask) >> uint(8-p.free)
		p.free -= length
		p.consumedBits += length
		return
	}

	// high bits into this byte, the rest into the next one
	head := p.free
	p.writeByte(value, head)
	p.writeByte(value<<uint(head), length-head)
}
