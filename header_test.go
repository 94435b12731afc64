package huffman

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func rawHeader(fileSize, length uint64, entries ...Entry) []byte {
	buf := make([]byte, HeaderSize+len(entries)*EntrySize)
	putHeader(buf, fileSize, length)
	for i, e := range entries {
		putEntry(buf[HeaderSize+i*EntrySize:], e)
	}
	return buf
}

func TestHeaderLayout(t *testing.T) {
	h := FileHeader{
		FileSize: 0x0102,
		Table: []Entry{
			{Symbol: 'A', Code: Code{Value: 0b1, Length: 1}},
			{Symbol: 'B', Code: Code{Value: 0b01, Length: 2}},
		},
	}
	data, err := h.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, h.Size())
	require.Equal(t, HeaderSize+2*EntrySize, h.Size())

	require.Equal(t, uint64(0x0102), binary.LittleEndian.Uint64(data[0:8]))
	require.Equal(t, uint64(2), binary.LittleEndian.Uint64(data[8:16]))
	require.Equal(t, []byte{'A', 1, 0, 0, 0, 1, 0, 0, 0}, data[16:25])
	require.Equal(t, []byte{'B', 1, 0, 0, 0, 2, 0, 0, 0}, data[25:34])
}

func TestHeaderRoundtrip(t *testing.T) {
	var b TreeBuilder
	b.Process([]byte("When in the Course of human events, it becomes necessary for one people to dissolve"))
	tree := b.Build()
	h := FileHeader{FileSize: b.Total(), Table: tree.Entries()}

	var buf bytes.Buffer
	n, err := h.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(h.Size()), n)

	// Trailing packed data stays unread.
	buf.WriteString("tail")

	var h2 FileHeader
	n, err = h2.ReadFrom(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(h.Size()), n)
	require.Equal(t, h, h2)
	require.Equal(t, "tail", buf.String())
}

func TestHeaderEmptyTable(t *testing.T) {
	var h FileHeader
	require.NoError(t, h.UnmarshalBinary(make([]byte, HeaderSize)))
	require.Zero(t, h.FileSize)
	require.Empty(t, h.Table)
}

func TestHeaderErrors(t *testing.T) {
	entryA := Entry{Symbol: 'A', Code: Code{Value: 0b1, Length: 1}}

	for _, c := range []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrMissingHeader},
		{"short", make([]byte, HeaderSize-1), ErrMissingHeader},
		{"too many entries", rawHeader(1, 257), ErrInvalidSymbolTable},
		{"truncated table", rawHeader(1, 10, entryA), ErrInvalidSymbolTable},
		{"duplicate symbol", rawHeader(2, 2, entryA, entryA), ErrInvalidSymbolTable},
		{"code too long", rawHeader(1, 1, Entry{Symbol: 'A', Code: Code{Length: 33}}), ErrInvalidSymbolTable},
	} {
		t.Run(c.name, func(t *testing.T) {
			var h FileHeader
			require.ErrorIs(t, h.UnmarshalBinary(c.data), c.want)

			_, _, err := parseHeader(c.data)
			require.ErrorIs(t, err, c.want)
			require.True(t, IsFormatError(err))
		})
	}
}

func TestParseHeaderOffset(t *testing.T) {
	entryA := Entry{Symbol: 'A', Code: Code{Value: 0b1, Length: 1}}
	src := append(rawHeader(3, 1, entryA), 0xFF)

	h, offset, err := parseHeader(src)
	require.NoError(t, err)
	require.Equal(t, HeaderSize+EntrySize, offset)
	require.Equal(t, uint64(3), h.FileSize)
	require.Equal(t, []Entry{entryA}, h.Table)
}

func TestHeaderInspection(t *testing.T) {
	var b TreeBuilder
	b.Process([]byte("AAAABBC"))
	h := FileHeader{FileSize: 7, Table: b.Build().Entries()}

	shortest, longest := h.CodeLengths()
	require.Equal(t, 1, shortest)
	require.Equal(t, 2, longest)
	require.InDelta(t, 1.0, h.KraftSum(), 1e-12)
	require.True(t, h.PrefixFree())

	single := FileHeader{Table: []Entry{{Symbol: 'A', Code: Code{Length: 1}}}}
	require.InDelta(t, 0.5, single.KraftSum(), 1e-12)

	broken := FileHeader{Table: []Entry{
		{Symbol: 'A', Code: Code{Value: 0b1, Length: 1}},
		{Symbol: 'B', Code: Code{Value: 0b10, Length: 2}},
	}}
	require.False(t, broken.PrefixFree())

	var empty FileHeader
	shortest, longest = empty.CodeLengths()
	require.Zero(t, shortest)
	require.Zero(t, longest)
}

func TestReadHeader(t *testing.T) {
	packed, err := EncodeAll([]byte("abracadabra"))
	require.NoError(t, err)

	r := bytes.NewReader(packed)
	h, err := ReadHeader(r)
	require.NoError(t, err)
	require.Equal(t, uint64(11), h.FileSize)
	require.Len(t, h.Table, 5)
	require.Equal(t, len(packed)-h.Size(), r.Len())

	_, err = ReadHeader(bytes.NewReader(packed[:HeaderSize+3]))
	require.ErrorIs(t, err, ErrInvalidSymbolTable)
}
