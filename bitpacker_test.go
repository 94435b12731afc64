package huffman

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func bitsOf(b byte) string { return fmt.Sprintf("%08b", b) }

func newTestPacker(t *testing.T, size int) (*BitPacker, []byte) {
	t.Helper()
	buf := make([]byte, size)
	p, err := NewBitPacker(buf)
	require.NoError(t, err)
	return p, buf
}

func TestBitPackerInit(t *testing.T) {
	p, _ := newTestPacker(t, 4)
	require.Equal(t, 32, p.RemainingBits())
	require.Equal(t, 0, p.BytesTaken())
	require.False(t, p.IsFull())

	_, err := NewBitPacker(make([]byte, 3))
	require.ErrorIs(t, err, ErrOutputBufferTooSmall)
}

func TestBitPackerShortCode(t *testing.T) {
	p, buf := newTestPacker(t, 4)
	require.NoError(t, p.Write(0b0101, 4))

	require.Equal(t, 28, p.RemainingBits())
	require.Equal(t, 1, p.BytesTaken())
	require.Equal(t, "01010000", bitsOf(buf[0]))
	require.Equal(t, "00000000", bitsOf(buf[1]))
	require.Equal(t, "00000000", bitsOf(buf[2]))
}

func TestBitPackerTwoBytes(t *testing.T) {
	p, buf := newTestPacker(t, 4)
	require.NoError(t, p.Write(0b011001101011011, 15))

	require.Equal(t, 17, p.RemainingBits())
	require.Equal(t, 2, p.BytesTaken())
	require.Equal(t, "01100110", bitsOf(buf[0]))
	require.Equal(t, "10110110", bitsOf(buf[1]))
	require.Equal(t, "00000000", bitsOf(buf[2]))
}

func TestBitPackerSequentialWrites(t *testing.T) {
	p, buf := newTestPacker(t, 4)
	for _, c := range []struct {
		value  uint32
		length int
	}{
		{0b011, 3},
		{0b0011, 4},
		{0b0101, 4},
		{0b10, 2},
		{0b11000, 5},
		{0b00001, 5},
	} {
		require.NoError(t, p.Write(c.value, c.length))
	}

	require.Equal(t, 9, p.RemainingBits())
	require.Equal(t, 3, p.BytesTaken())
	require.Equal(t, "01100110", bitsOf(buf[0]))
	require.Equal(t, "10110110", bitsOf(buf[1]))
	require.Equal(t, "00000010", bitsOf(buf[2]))
}

func TestBitPackerOverflowThenReset(t *testing.T) {
	p, buf := newTestPacker(t, 4)

	require.NoError(t, p.Write(0b011011100101110111, 18))
	require.False(t, p.IsFull())
	require.NoError(t, p.Write(0b001100110011, 12))
	require.False(t, p.IsFull())
	require.NoError(t, p.Write(0b0101, 4))
	require.True(t, p.IsFull())
	require.Equal(t, 2, p.Pending())

	require.Equal(t, 4, p.BytesTaken())
	require.Equal(t, "01101110", bitsOf(buf[0]))
	require.Equal(t, "01011101", bitsOf(buf[1]))
	require.Equal(t, "11001100", bitsOf(buf[2]))
	require.Equal(t, "11001101", bitsOf(buf[3]))

	// A second overflow before Reset is a protocol violation.
	require.ErrorIs(t, p.Write(0b0, 1), ErrCapacity)

	p.Reset()
	require.Equal(t, 0, p.Pending())
	require.NoError(t, p.Write(0b10, 2))
	require.False(t, p.IsFull())
	require.NoError(t, p.Write(0b1101, 4))
	require.False(t, p.IsFull())

	require.Equal(t, 1, p.BytesTaken())
	require.Equal(t, "01101101", bitsOf(buf[0]))
}

func TestBitPackerShortTailCode(t *testing.T) {
	p, buf := newTestPacker(t, 4)

	require.NoError(t, p.Write(0b0, 30))
	require.NoError(t, p.Write(0b1111001, 7))
	require.Equal(t, "00000011", bitsOf(buf[3]))

	p.Reset()
	require.Equal(t, "11001000", bitsOf(buf[0]))
	require.Equal(t, 5, 32-p.RemainingBits())
}

func TestBitPackerLongCodes(t *testing.T) {
	p, buf := newTestPacker(t, 4)

	require.NoError(t, p.Write(0b0101010101010101, 16))
	require.False(t, p.IsFull())
	require.NoError(t, p.Write(0b10101010101011010001100111000110, 32))
	require.True(t, p.IsFull())

	require.Equal(t, "01010101", bitsOf(buf[0]))
	require.Equal(t, "01010101", bitsOf(buf[1]))
	require.Equal(t, "10101010", bitsOf(buf[2]))
	require.Equal(t, "10101101", bitsOf(buf[3]))

	p.Reset()
	require.Equal(t, 2, p.BytesTaken())
	require.Equal(t, "00011001", bitsOf(buf[0]))
	require.Equal(t, "11000110", bitsOf(buf[1]))
}

func TestBitPackerExactCapacity(t *testing.T) {
	p, buf := newTestPacker(t, 4)

	require.NoError(t, p.Write(0xFFFF, 16))
	require.NoError(t, p.Write(0x0F0F, 16))
	require.True(t, p.IsFull())
	require.Equal(t, 0, p.RemainingBits())
	require.Equal(t, 0, p.Pending())
	require.Equal(t, []byte{0xFF, 0xFF, 0x0F, 0x0F}, buf)

	require.ErrorIs(t, p.Write(1, 1), ErrCapacity)
}

func TestBitPackerCodeLength(t *testing.T) {
	p, _ := newTestPacker(t, 4)
	require.ErrorIs(t, p.Write(0, 0), ErrCodeLength)
	require.ErrorIs(t, p.Write(0, 33), ErrCodeLength)
}

// TestBitPackerStream checks that flushing on IsFull and concatenating the
// flushed bytes yields exactly the concatenated codes.
func TestBitPackerStream(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(MinOutputSize, 16).Draw(t, "size")
		lengths := rapid.SliceOfN(rapid.IntRange(1, MaxCodeLen), 1, 64).Draw(t, "lengths")

		buf := make([]byte, size)
		p, err := NewBitPacker(buf)
		if err != nil {
			t.Fatalf("new packer: %v", err)
		}

		var (
			got  []byte
			want []bool
		)
		for i, l := range lengths {
			v := rapid.Uint32().Draw(t, fmt.Sprintf("value%d", i))
			for b := l - 1; b >= 0; b-- {
				want = append(want, v>>uint(b)&1 == 1)
			}
			if err := p.Write(v, l); err != nil {
				t.Fatalf("write %d: %v", i, err)
			}
			if p.IsFull() {
				got = append(got, buf[:p.BytesTaken()]...)
				p.Reset()
			}
		}
		got = append(got, buf[:p.BytesTaken()]...)

		if len(got) != (len(want)+7)/8 {
			t.Fatalf("packed %d bytes, want %d", len(got), (len(want)+7)/8)
		}
		for i, bit := range want {
			if (got[i/8]>>(7-uint(i%8))&1 == 1) != bit {
				t.Fatalf("bit %d mismatch", i)
			}
		}
	})
}
