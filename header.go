package huffman

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// FileHeader is the prefix of an encoded stream: the decoded size and the
// symbol table needed to rebuild the code table.
//
// Layout (little-endian, unpadded):
//
//	0   u64  FileSize
//	8   u64  table length (0..256)
//	16  table length entries of
//	      u8   symbol
//	      u32  code value
//	      u32  code length
//
// The packed bit stream follows the last entry.
type FileHeader struct {
	FileSize uint64
	Table    []Entry
}

// Size is the number of bytes the header and its table occupy.
func (h *FileHeader) Size() int { return HeaderSize + len(h.Table)*EntrySize }

// WriteTo serializes the header and its table to w.
func (h *FileHeader) WriteTo(w io.Writer) (int64, error) {
	var (
		n   int64
		buf = make([]byte, h.Size())
	)
	putHeader(buf, h.FileSize, uint64(len(h.Table)))
	for i, e := range h.Table {
		putEntry(buf[HeaderSize+i*EntrySize:], e)
	}
	if nn, err := w.Write(buf); err != nil {
		return n, err
	} else {
		n += int64(nn)
	}
	return n, nil
}

// ReadFrom deserializes a header and its table from r. It reads exactly
// Size bytes and leaves r positioned at the packed bit stream.
func (h *FileHeader) ReadFrom(r io.Reader) (int64, error) {
	var (
		n   int64
		hdr [HeaderSize]byte
	)
	nn, err := io.ReadFull(r, hdr[:])
	n += int64(nn)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return n, fmt.Errorf("%w: got %d bytes", ErrMissingHeader, nn)
	} else if err != nil {
		return n, err
	}
	fileSize, length, err := parseFixedHeader(hdr[:])
	if err != nil {
		return n, err
	}

	table := make([]byte, int(length)*EntrySize)
	nn, err = io.ReadFull(r, table)
	n += int64(nn)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return n, fmt.Errorf("%w: %d entries declared, %d bytes present", ErrInvalidSymbolTable, length, nn)
	} else if err != nil {
		return n, err
	}
	entries, err := parseEntries(table, int(length))
	if err != nil {
		return n, err
	}
	h.FileSize = fileSize
	h.Table = entries
	return n, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (h *FileHeader) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := h.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Bytes past the
// symbol table are ignored.
func (h *FileHeader) UnmarshalBinary(data []byte) error {
	_, err := h.ReadFrom(bytes.NewReader(data))
	return err
}

// parseHeader decodes a header from the start of src, which holds the
// decoder's initial read, and returns the offset of the packed stream.
func parseHeader(src []byte) (FileHeader, int, error) {
	if len(src) < HeaderSize {
		return FileHeader{}, 0, fmt.Errorf("%w: got %d bytes", ErrMissingHeader, len(src))
	}
	fileSize, length, err := parseFixedHeader(src)
	if err != nil {
		return FileHeader{}, 0, err
	}
	end := HeaderSize + int(length)*EntrySize
	if len(src) < end {
		return FileHeader{}, 0, fmt.Errorf("%w: %d entries declared, %d bytes present", ErrInvalidSymbolTable, length, len(src)-HeaderSize)
	}
	entries, err := parseEntries(src[HeaderSize:end], int(length))
	if err != nil {
		return FileHeader{}, 0, err
	}
	return FileHeader{FileSize: fileSize, Table: entries}, end, nil
}

func parseFixedHeader(src []byte) (fileSize, length uint64, err error) {
	fileSize = binary.LittleEndian.Uint64(src[0:8])
	length = binary.LittleEndian.Uint64(src[8:16])
	if length > alphabetSize {
		return 0, 0, fmt.Errorf("%w: %d entries", ErrInvalidSymbolTable, length)
	}
	return fileSize, length, nil
}

func parseEntries(src []byte, length int) ([]Entry, error) {
	var seen [alphabetSize]bool
	entries := make([]Entry, length)
	for i := range entries {
		b := src[i*EntrySize : (i+1)*EntrySize]
		codeLen := binary.LittleEndian.Uint32(b[5:9])
		if codeLen > MaxCodeLen {
			return nil, fmt.Errorf("%w: symbol %#02x has code length %d", ErrInvalidSymbolTable, b[0], codeLen)
		}
		if seen[b[0]] {
			return nil, fmt.Errorf("%w: symbol %#02x listed twice", ErrInvalidSymbolTable, b[0])
		}
		seen[b[0]] = true
		entries[i] = Entry{
			Symbol: b[0],
			Code: Code{
				Value:  binary.LittleEndian.Uint32(b[1:5]),
				Length: uint8(codeLen),
			},
		}
	}
	return entries, nil
}

func putHeader(dst []byte, fileSize, length uint64) {
	binary.LittleEndian.PutUint64(dst[0:8], fileSize)
	binary.LittleEndian.PutUint64(dst[8:16], length)
}

func putEntry(dst []byte, e Entry) {
	dst[0] = e.Symbol
	binary.LittleEndian.PutUint32(dst[1:5], e.Code.Value)
	binary.LittleEndian.PutUint32(dst[5:9], uint32(e.Code.Length))
}
