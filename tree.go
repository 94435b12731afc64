package huffman

import (
	"container/heap"
)

// noNode marks a missing child or an empty tree's root.
const noNode = -1

// minCodeLenLimit is the depth of a balanced tree over the full alphabet;
// any length limit below it could never be met.
const minCodeLenLimit = 8

// Node is a Huffman tree node. Children are indices into Tree.Nodes, which
// is append-only while the tree is built; a leaf has no children.
type Node struct {
	Symbol byte
	Freq   uint64
	Left   int
	Right  int
}

// IsLeaf reports whether n carries a symbol.
func (n Node) IsLeaf() bool { return n.Left == noNode && n.Right == noNode }

// Tree is a built Huffman tree and the codes derived from it.
type Tree struct {
	// Nodes is the node arena: leaves first, in ascending symbol order, then
	// internal nodes in creation order.
	Nodes []Node
	// Root indexes Nodes, or is -1 for an empty tree.
	Root int

	codes  [alphabetSize]Code
	maxLen int
}

// Empty reports whether the tree holds no symbol.
func (t *Tree) Empty() bool { return t.Root == noNode }

// Code returns the code assigned to sym.
func (t *Tree) Code(sym byte) (Code, bool) {
	c := t.codes[sym]
	return c, c.Length != 0
}

// Entries lists every (symbol, code) pair in ascending symbol order.
func (t *Tree) Entries() []Entry {
	entries := make([]Entry, 0, len(t.Nodes)/2+1)
	for s := range t.codes {
		if c := t.codes[s]; c.Length != 0 {
			entries = append(entries, Entry{Symbol: byte(s), Code: c})
		}
	}
	return entries
}

// MaxCodeLen is the length of the longest assigned code.
func (t *Tree) MaxCodeLen() int { return t.maxLen }

// TreeBuilder accumulates symbol frequencies and builds a Huffman tree.
// Process (or Write) may be called any number of times before Build.
type TreeBuilder struct {
	// MaxCodeLen bounds the code length of the built tree. Zero means
	// MaxCodeLen; values below 8 are raised to 8.
	MaxCodeLen int

	freq frequencies
}

// Process counts the symbols of p.
func (b *TreeBuilder) Process(p []byte) { b.freq.add(p) }

// Write implements io.Writer by counting the symbols of p. It never fails.
func (b *TreeBuilder) Write(p []byte) (int, error) {
	b.Process(p)
	return len(p), nil
}

// Total is the number of symbols processed so far.
func (b *TreeBuilder) Total() uint64 { return b.freq.total }

// Distinct is the number of different symbols processed so far.
func (b *TreeBuilder) Distinct() int { return b.freq.distinct }

// Frequency returns how often sym was processed.
func (b *TreeBuilder) Frequency(sym byte) uint64 { return b.freq.counts[sym] }

// Build constructs the tree bottom-up and assigns codes: 0 for a left edge,
// 1 for a right edge, most significant bit first. A single-symbol input gets
// the code 0 of length 1; an empty input yields an empty tree.
//
// Ties between equal frequencies are broken by node index: leaves in
// ascending symbol order, then internal nodes in creation order. The first
// node popped becomes the left child.
//
// If the optimal tree is deeper than MaxCodeLen, code lengths are
// recomputed with package-merge, which yields the cheapest code within the
// limit, and codes are reassigned canonically.
func (b *TreeBuilder) Build() *Tree {
	limit := b.MaxCodeLen
	if limit <= 0 || limit > MaxCodeLen {
		limit = MaxCodeLen
	}
	limit = max(limit, minCodeLenLimit)

	t := buildTree(&b.freq)
	if t.maxLen <= limit {
		return t
	}
	return buildLimitedTree(&b.freq, limit)
}

func buildTree(f *frequencies) *Tree {
	t := &Tree{
		Nodes: make([]Node, 0, 2*f.distinct),
		Root:  noNode,
	}
	h := &nodeHeap{tree: t, ids: make([]int, 0, f.distinct)}

	for sym := 0; ; sym++ {
		count := f.next(&sym)
		if count == 0 {
			break
		}
		t.Nodes = append(t.Nodes, Node{Symbol: byte(sym), Freq: count, Left: noNode, Right: noNode})
		h.ids = append(h.ids, len(t.Nodes)-1)
	}
	if len(h.ids) == 0 {
		return t
	}

	heap.Init(h)
	for h.Len() > 1 {
		left := heap.Pop(h).(int)
		right := heap.Pop(h).(int)
		t.Nodes = append(t.Nodes, Node{
			Freq:  t.Nodes[left].Freq + t.Nodes[right].Freq,
			Left:  left,
			Right: right,
		})
		heap.Push(h, len(t.Nodes)-1)
	}
	t.Root = h.ids[0]

	if t.Nodes[t.Root].IsLeaf() {
		t.codes[t.Nodes[t.Root].Symbol] = Code{Value: 0, Length: 1}
		t.maxLen = 1
		return t
	}
	t.assignCodes(t.Root, 0, 0)
	return t
}

// assignCodes walks the subtree at id depth-first. Values deeper than 32
// bits are truncated; Build replaces such a tree with a length-limited one.
func (t *Tree) assignCodes(id int, value uint32, length int) {
	n := t.Nodes[id]
	if n.IsLeaf() {
		t.codes[n.Symbol] = Code{Value: value, Length: uint8(length)}
		t.maxLen = max(t.maxLen, length)
		return
	}
	t.assignCodes(n.Left, value<<1, length+1)
	t.assignCodes(n.Right, value<<1|1, length+1)
}

// nodeHeap is a min-heap of node indices ordered by frequency, with ties
// broken by the lower index.
type nodeHeap struct {
	tree *Tree
	ids  []int
}

// Len implements heap.Interface and returns the number of elements.
func (h *nodeHeap) Len() int { return len(h.ids) }

// Less implements heap.Interface ordering by ascending frequency.
func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.ids[i], h.ids[j]
	fa, fb := h.tree.Nodes[a].Freq, h.tree.Nodes[b].Freq
	if fa != fb {
		return fa < fb
	}
	return a < b
}

// Swap implements heap.Interface swap.
func (h *nodeHeap) Swap(i, j int) { h.ids[i], h.ids[j] = h.ids[j], h.ids[i] }

// Push implements heap.Interface push.
func (h *nodeHeap) Push(x any) { h.ids = append(h.ids, x.(int)) }

// Pop implements heap.Interface pop.
func (h *nodeHeap) Pop() any {
	old := h.ids
	n := len(old)
	x := old[n-1]
	h.ids = old[0 : n-1]
	return x
}
