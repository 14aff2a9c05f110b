// Package mulscan provides a public API for summing mul(a,b) instructions
// found in corrupted text.
//
// This package provides functions to:
//   - Convert input from legacy character encodings (CP437, CP850, ISO-8859-1) to UTF-8
//   - Sum every mul(a,b) token, or only those enabled by do()/don't() toggles
//   - Tokenize the input and compute the enabled ranges for inspection
//
// Example usage:
//
//	import "github.com/badele/mulscan/pkg/mulscan"
//
//	data, _ := os.ReadFile("input.txt")
//	utf8Data, _ := mulscan.ConvertToUTF8(data, "utf8")
//	sum, err := mulscan.Scan(string(utf8Data), mulscan.ModeConditional)
package mulscan

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/badele/mulscan/internal/scanner"
	"github.com/badele/mulscan/internal/types"
)

// Type aliases for public API
type (
	// Token is a mul, do or don't match with its byte offset
	Token = types.Token

	// TokenType represents the type of a token
	TokenType = types.TokenType

	// Mode selects whether do()/don't() toggles are honoured
	Mode = types.Mode

	// Range is a half-open span of byte offsets where multiplications count
	Range = types.Range

	// ScanStats contains statistics about a scanned input
	ScanStats = types.ScanStats

	// Scanner wraps one input and exposes its tokens and sums
	Scanner = scanner.Scanner

	// ParseError reports operands that do not fit in uint64
	ParseError = scanner.ParseError
)

// Token type constants
const (
	TokenMul  = types.TokenMul
	TokenDo   = types.TokenDo
	TokenDont = types.TokenDont
)

// Mode constants
const (
	ModeUnconditional = types.ModeUnconditional
	ModeConditional   = types.ModeConditional
)

// Errors returned by Scan
var (
	ErrTokenParse = scanner.ErrTokenParse
	ErrOverflow   = scanner.ErrOverflow
)

// UTF-8 BOM (Byte Order Mark) sequence
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// stripUTF8BOM removes the UTF-8 BOM if present at the beginning of the data
func stripUTF8BOM(data []byte) []byte {
	if len(data) >= 3 && bytes.Equal(data[:3], utf8BOM) {
		return data[3:]
	}
	return data
}

// ConvertToUTF8 converts byte data from a source encoding to UTF-8.
// Supported encodings: "utf8", "cp437", "cp850", "iso-8859-1"
// The UTF-8 BOM (Byte Order Mark) is automatically stripped if present.
func ConvertToUTF8(data []byte, sourceEncoding string) ([]byte, error) {
	if sourceEncoding == "" || sourceEncoding == "utf8" {
		return stripUTF8BOM(data), nil
	}

	var decoder *encoding.Decoder

	switch sourceEncoding {
	case "cp437":
		decoder = charmap.CodePage437.NewDecoder()
	case "cp850":
		decoder = charmap.CodePage850.NewDecoder()
	case "iso-8859-1":
		decoder = charmap.ISO8859_1.NewDecoder()
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", sourceEncoding)
	}

	reader := transform.NewReader(bytes.NewReader(data), decoder)
	utf8Data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("encoding conversion error: %w", err)
	}

	return stripUTF8BOM(utf8Data), nil
}

// Scan returns the sum of a*b over the active mul(a,b) tokens of input.
func Scan(input string, mode Mode) (uint64, error) {
	return scanner.Scan(input, mode)
}

// EnabledRanges returns the unmerged ranges in which multiplications count
// under ModeConditional.
func EnabledRanges(input string) []Range {
	return scanner.EnabledRanges(input)
}

// NewScanner creates a scanner over UTF-8 input.
func NewScanner(input []byte) *Scanner {
	return scanner.NewScanner(input)
}

// ParseMode maps "1"/"2" (or "unconditional"/"conditional") to a Mode.
func ParseMode(s string) (Mode, error) {
	return types.ParseMode(s)
}
