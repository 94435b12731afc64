package huffman

import "sort"

// mergeItem is a coin of the package-merge algorithm: a weight and the leaf
// symbols it covers, with repetition.
type mergeItem struct {
	weight uint64
	syms   []byte
}

// limitedLengths computes optimal code lengths of at most limit bits with the
// package-merge algorithm. limit must satisfy 2^limit >= number of symbols.
func limitedLengths(f *frequencies, limit int) [alphabetSize]uint8 {
	var leaves []mergeItem
	for sym := 0; ; sym++ {
		count := f.next(&sym)
		if count == 0 {
			break
		}
		leaves = append(leaves, mergeItem{weight: count, syms: []byte{byte(sym)}})
	}
	sort.SliceStable(leaves, func(i, j int) bool { return leaves[i].weight < leaves[j].weight })

	list := leaves
	for range limit - 1 {
		packages := make([]mergeItem, 0, len(list)/2)
		for i := 0; i+1 < len(list); i += 2 {
			syms := make([]byte, 0, len(list[i].syms)+len(list[i+1].syms))
			syms = append(syms, list[i].syms...)
			syms = append(syms, list[i+1].syms...)
			packages = append(packages, mergeItem{weight: list[i].weight + list[i+1].weight, syms: syms})
		}
		list = mergeItems(leaves, packages)
	}

	// Each appearance among the 2n-2 cheapest items deepens a leaf by one.
	var lengths [alphabetSize]uint8
	for _, it := range list[:2*len(leaves)-2] {
		for _, s := range it.syms {
			lengths[s]++
		}
	}
	return lengths
}

// mergeItems merges two weight-sorted lists; leaves go first on equal weight.
func mergeItems(leaves, packages []mergeItem) []mergeItem {
	out := make([]mergeItem, 0, len(leaves)+len(packages))
	i, j := 0, 0
	for i < len(leaves) && j < len(packages) {
		if packages[j].weight < leaves[i].weight {
			out = append(out, packages[j])
			j++
		} else {
			out = append(out, leaves[i])
			i++
		}
	}
	out = append(out, leaves[i:]...)
	return append(out, packages[j:]...)
}

// buildLimitedTree builds a tree whose codes are canonical for the
// package-merge lengths: shorter codes first, equal lengths in ascending
// symbol order. Node layout follows buildTree: leaves in ascending symbol
// order, then internal nodes in creation order.
func buildLimitedTree(f *frequencies, limit int) *Tree {
	lengths := limitedLengths(f, limit)

	t := &Tree{
		Nodes: make([]Node, 0, 2*f.distinct),
		Root:  noNode,
	}
	var blCount [MaxCodeLen + 1]uint32
	for sym := 0; ; sym++ {
		count := f.next(&sym)
		if count == 0 {
			break
		}
		t.Nodes = append(t.Nodes, Node{Symbol: byte(sym), Freq: count, Left: noNode, Right: noNode})
		blCount[lengths[sym]]++
		t.maxLen = max(t.maxLen, int(lengths[sym]))
	}

	var nextCode [MaxCodeLen + 1]uint32
	code := uint32(0)
	for bits := 1; bits <= t.maxLen; bits++ {
		code = (code + blCount[bits-1]) << 1
		nextCode[bits] = code
	}
	leaves := len(t.Nodes)
	for id := range leaves {
		sym := t.Nodes[id].Symbol
		l := lengths[sym]
		t.codes[sym] = Code{Value: nextCode[l], Length: l}
		nextCode[l]++
	}

	t.Root = t.newInternal()
	for id := range leaves {
		c := t.codes[t.Nodes[id].Symbol]
		cur := t.Root
		for bit := int(c.Length) - 1; bit >= 0; bit-- {
			right := c.Value>>uint(bit)&1 == 1
			child := t.Nodes[cur].Left
			if right {
				child = t.Nodes[cur].Right
			}
			switch {
			case bit == 0:
				child = id
			case child == noNode:
				child = t.newInternal()
			}
			if right {
				t.Nodes[cur].Right = child
			} else {
				t.Nodes[cur].Left = child
			}
			cur = child
		}
	}
	t.sumFreq(t.Root)
	return t
}

func (t *Tree) newInternal() int {
	t.Nodes = append(t.Nodes, Node{Left: noNode, Right: noNode})
	return len(t.Nodes) - 1
}

// sumFreq fills internal node frequencies from their leaves.
func (t *Tree) sumFreq(id int) uint64 {
	n := &t.Nodes[id]
	if n.Left == noNode && n.Right == noNode {
		return n.Freq
	}
	left, right := n.Left, n.Right
	freq := t.sumFreq(left) + t.sumFreq(right)
	t.Nodes[id].Freq = freq
	return freq
}
