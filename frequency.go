package huffman

// frequencies counts symbol occurrences during the first encoder pass.
//
// The table is indexed by symbol, so iteration order is ascending symbol
// order regardless of the order in which symbols were seen.
type frequencies struct {
	counts   [alphabetSize]uint64
	total    uint64
	distinct int
}

// add counts every byte of p.
func (f *frequencies) add(p []byte) {
	for _, b := range p {
		if f.counts[b] == 0 {
			f.distinct++
		}
		f.counts[b]++
	}
	f.total += uint64(len(p))
}

// next advances sym to the next symbol with a non-zero count, starting at
// *sym itself, and returns that count. It returns 0 and leaves *sym at
// alphabetSize when no such symbol exists.
func (f *frequencies) next(sym *int) uint64 {
	for s := *sym; s < alphabetSize; s++ {
		if c := f.counts[s]; c != 0 {
			*sym = s
			return c
		}
	}
	*sym = alphabetSize
	return 0
}
