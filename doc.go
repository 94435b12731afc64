// Package huffman provides a streaming static Huffman compressor.
//
// # Overview
//
// Encoding makes two passes over its input. The first pass counts byte
// frequencies and builds an optimal prefix code; the second pass packs each
// byte's code, most significant bit first, into a fixed-size buffer that is
// flushed to the output whenever it fills. The output starts with a header
// holding the decoded size and the symbol table, so the decoder can rebuild
// the code table without the tree.
//
// Decoding is a single streaming pass. Packed bytes are fed into a 32-bit
// CodeWindow whose prefixes, shortest first, are matched against the code
// table; a match emits a symbol and drops the matched bits. Decoding stops
// once the declared number of symbols has been produced.
//
// # Memory Bounds
//
// Every run uses two fixed buffers sized by Config.Buffer:
//
//   - InputSize must hold the header plus a full 256-entry table
//     (MinInputSize bytes), so the header is always parsed from the first read.
//   - OutputSize must hold one code of the maximum width (MinOutputSize bytes).
//     The BitPacker tolerates exactly one code overflowing its buffer and
//     replays the overflow after the next Reset.
//
// Codes emitted by the encoder are at most MaxDecodableCodeLen bits long so
// that the decoder window never needs more than 32 bits.
//
// # Basic Usage
//
//	packed, err := huffman.EncodeAll([]byte("abracadabra"))
//	if err != nil {
//	    return err
//	}
//	original, err := huffman.DecodeAll(packed)
//
// Streaming over files:
//
//	src, _ := os.Open("input")
//	dst, _ := os.Create("output.huff")
//	err := huffman.Encode(huffman.NewInput(src, 0), huffman.NewOutput(dst))
//
// # Format
//
// The header is little-endian and unpadded: FileSize (u64), table length
// (u64), then one 9-byte entry per symbol (u8 symbol, u32 code value,
// u32 code length), followed by the packed bit stream. See FileHeader.
//
// A Codec carries no state between calls; concurrent calls on distinct
// inputs and outputs are safe, and a single run never spawns goroutines.
package huffman
