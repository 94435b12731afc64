package huffman

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeTableIgnoresZeroLength(t *testing.T) {
	lookup := NewCodeTable()
	lookup.Put(Entry{Symbol: 'A', Code: Code{Value: 0b01, Length: 0}})
	require.Equal(t, 0, lookup.Size())
}

func TestCodeTableEmpty(t *testing.T) {
	lookup := NewCodeTable()
	require.Equal(t, 0, lookup.Size())
	_, ok := lookup.Find(0b01, 1)
	require.False(t, ok)
	_, ok = lookup.Find(0, 0)
	require.False(t, ok)
	_, ok = lookup.Find(0, MaxCodeLen+1)
	require.False(t, ok)
}

func TestCodeTableFindsByLength(t *testing.T) {
	lookup := NewCodeTable()
	lookup.Put(Entry{Symbol: 'A', Code: Code{Value: 0b01, Length: 2}})
	lookup.Put(Entry{Symbol: 'C', Code: Code{Value: 0b01, Length: 3}})
	lookup.Put(Entry{Symbol: 'B', Code: Code{Value: 0b11, Length: 4}})
	require.Equal(t, 3, lookup.Size())

	for _, c := range []struct {
		value  uint32
		length int
		want   byte
	}{
		{0b01, 2, 'A'},
		{0b01, 3, 'C'},
		{0b11, 4, 'B'},
	} {
		sym, ok := lookup.Find(c.value, c.length)
		require.True(t, ok, "%b/%d", c.value, c.length)
		require.Equal(t, c.want, sym)
	}

	for _, miss := range []struct {
		value  uint32
		length int
	}{
		{0b01, 1},
		{0b11, 2},
		{0b01, 4},
		{0b11, 32},
	} {
		_, ok := lookup.Find(miss.value, miss.length)
		require.False(t, ok, "%b/%d", miss.value, miss.length)
	}
}

func TestCodeTableOverwrite(t *testing.T) {
	lookup := NewCodeTable()
	lookup.Put(Entry{Symbol: 'A', Code: Code{Value: 0b1, Length: 1}})
	lookup.Put(Entry{Symbol: 'B', Code: Code{Value: 0b1, Length: 1}})
	require.Equal(t, 1, lookup.Size())

	sym, ok := lookup.Find(0b1, 1)
	require.True(t, ok)
	require.Equal(t, byte('B'), sym)
}
