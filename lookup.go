package huffman

// CodeTable maps (code length, code value) to a symbol for decoding.
// Codes of equal value but different lengths are distinct keys.
type CodeTable struct {
	byLength [MaxCodeLen + 1]map[uint32]byte
	size     int
}

// NewCodeTable returns an empty table.
func NewCodeTable() *CodeTable {
	return &CodeTable{}
}

// Put inserts e.Symbol under e.Code. Codes of length 0, or longer than
// MaxCodeLen, are ignored.
func (t *CodeTable) Put(e Entry) {
	length := int(e.Code.Length)
	if length == 0 || length > MaxCodeLen {
		return
	}
	index := t.byLength[length]
	if index == nil {
		index = make(map[uint32]byte)
		t.byLength[length] = index
	}
	if _, ok := index[e.Code.Value]; !ok {
		t.size++
	}
	index[e.Code.Value] = e.Symbol
}

// Find returns the symbol stored under (length, value).
func (t *CodeTable) Find(value uint32, length int) (byte, bool) {
	if length <= 0 || length > MaxCodeLen {
		return 0, false
	}
	index := t.byLength[length]
	if index == nil {
		return 0, false
	}
	sym, ok := index[value]
	return sym, ok
}

// Size is the number of entries across all lengths.
func (t *CodeTable) Size() int { return t.size }
