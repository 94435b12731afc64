package huffman

import (
	"io"
	"math"
)

// ReadHeader reads the header and symbol table at the start of an encoded
// stream, leaving r positioned at the packed bits.
func ReadHeader(r io.Reader) (*FileHeader, error) {
	h := new(FileHeader)
	if _, err := h.ReadFrom(r); err != nil {
		return nil, err
	}
	return h, nil
}

// CodeLengths returns the shortest and longest code in the table, or zeros
// for an empty table.
func (h *FileHeader) CodeLengths() (shortest, longest int) {
	for i, e := range h.Table {
		l := int(e.Code.Length)
		if i == 0 || l < shortest {
			shortest = l
		}
		longest = max(longest, l)
	}
	return shortest, longest
}

// KraftSum is the sum of 2^-length over all codes. A complete prefix code
// sums to exactly 1; a single-symbol table sums to 0.5.
func (h *FileHeader) KraftSum() float64 {
	var sum float64
	for _, e := range h.Table {
		if e.Code.Length > 0 {
			sum += math.Ldexp(1, -int(e.Code.Length))
		}
	}
	return sum
}

// PrefixFree reports whether no code in the table is a prefix of another.
func (h *FileHeader) PrefixFree() bool {
	for i, a := range h.Table {
		for j, b := range h.Table {
			if i == j || a.Code.Length == 0 || a.Code.Length > b.Code.Length {
				continue
			}
			shift := uint(b.Code.Length - a.Code.Length)
			if (b.Code.Value&lowMask(int(b.Code.Length)))>>shift == a.Code.Value&lowMask(int(a.Code.Length)) {
				return false
			}
		}
	}
	return true
}
