package huffman

import "errors"

// Configuration errors are returned before any I/O takes place.
var (
	ErrInputBufferTooSmall  = errors.New("huffman: input buffer too small")
	ErrOutputBufferTooSmall = errors.New("huffman: output buffer too small")
)

// Format errors describe a malformed encoded stream.
var (
	ErrMissingHeader      = errors.New("huffman: file has no header")
	ErrInvalidSymbolTable = errors.New("huffman: invalid symbols table")
	ErrTruncatedStream    = errors.New("huffman: stream ended before all symbols were decoded")
	ErrUndefinedCode      = errors.New("huffman: bit sequence matches no code")
)

// Capacity errors signal a violated calling protocol.
var (
	ErrCapacity   = errors.New("huffman: not enough space left in bit buffer")
	ErrWindowFull = errors.New("huffman: code window is full")
	ErrCodeLength = errors.New("huffman: code length out of range")
)

// Input consistency errors are returned when the input differs between the
// two encoder passes.
var (
	ErrUnknownSymbol = errors.New("huffman: symbol has no code")
	ErrInputChanged  = errors.New("huffman: input changed between passes")
)

// IsConfigError reports whether err stems from an invalid Config.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInputBufferTooSmall) || errors.Is(err, ErrOutputBufferTooSmall)
}

// IsFormatError reports whether err stems from malformed encoded input.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrMissingHeader) ||
		errors.Is(err, ErrInvalidSymbolTable) ||
		errors.Is(err, ErrTruncatedStream) ||
		errors.Is(err, ErrUndefinedCode)
}
