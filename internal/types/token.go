package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

/////////////////////////////////////////////////////////////////////////////
// TOKEN TYPE
/////////////////////////////////////////////////////////////////////////////

type TokenType int

const (
	TokenMul TokenType = iota
	TokenDo
	TokenDont
)

func (t TokenType) String() string {
	switch t {
	case TokenMul:
		return "TokenMul"
	case TokenDo:
		return "TokenDo"
	case TokenDont:
		return "TokenDont"
	default:
		return fmt.Sprintf("TokenType(%d)", t)
	}
}

func (t TokenType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TokenType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "TokenMul":
		*t = TokenMul
	case "TokenDo":
		*t = TokenDo
	case "TokenDont":
		*t = TokenDont
	default:
		return fmt.Errorf("unknown TokenType: %s", s)
	}

	return nil
}

// MarshalText lets TokenType be used as a JSON map key.
func (t TokenType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

/////////////////////////////////////////////////////////////////////////////
// TOKEN
/////////////////////////////////////////////////////////////////////////////

// Token is one match found in the input. Pos is a byte offset.
// Operands, Product and Enabled are only meaningful for TokenMul.
type Token struct {
	Type     TokenType `json:"type"`
	Pos      int       `json:"pos"`
	Raw      string    `json:"raw"`
	Operands []uint64  `json:"operands,omitempty"`
	Product  uint64    `json:"product,omitempty"`
	Enabled  bool      `json:"enabled"`
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Pos + len(t.Raw)
}

func (t Token) String() string {
	switch t.Type {
	case TokenMul:
		if len(t.Operands) == 2 {
			return fmt.Sprintf("MUL: %d*%d", t.Operands[0], t.Operands[1])
		}
		return "MUL: " + t.Raw
	case TokenDo:
		return "DO"
	case TokenDont:
		return "DONT"
	default:
		return "UNKNOWN"
	}
}

/////////////////////////////////////////////////////////////////////////////
// MODE
/////////////////////////////////////////////////////////////////////////////

// Mode selects whether toggle tokens affect which multiplications count.
type Mode int

const (
	ModeUnconditional Mode = iota
	ModeConditional
)

func (m Mode) String() string {
	switch m {
	case ModeUnconditional:
		return "unconditional"
	case ModeConditional:
		return "conditional"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// Part returns the puzzle part number associated with the mode.
func (m Mode) Part() int {
	if m == ModeConditional {
		return 2
	}
	return 1
}

func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// ParseMode accepts a part number ("1", "2") or a mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "unconditional":
		return ModeUnconditional, nil
	case "2", "conditional":
		return ModeConditional, nil
	default:
		return 0, fmt.Errorf("invalid mode %q: use 1 or 2", s)
	}
}

/////////////////////////////////////////////////////////////////////////////
// RANGE
/////////////////////////////////////////////////////////////////////////////

// Range is a half-open span [Start, End) of byte offsets.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r Range) Contains(pos int) bool {
	return pos >= r.Start && pos < r.End
}

/////////////////////////////////////////////////////////////////////////////
// SCAN STATS
/////////////////////////////////////////////////////////////////////////////

type ScanStats struct {
	InputSize        int               `json:"input_size"`
	TotalTokens      int               `json:"total_tokens"`
	TokensByType     map[TokenType]int `json:"tokens_by_type"`
	ActiveMuls       int               `json:"active_muls"`
	InactiveMuls     int               `json:"inactive_muls"`
	EnabledRanges    []Range           `json:"enabled_ranges"`
	UnconditionalSum uint64            `json:"unconditional_sum"`
	ConditionalSum   uint64            `json:"conditional_sum"`
}
