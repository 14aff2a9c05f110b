package scanner

import (
	"sort"

	"github.com/badele/mulscan/internal/types"
)

// Scanner wraps one input and exposes its tokens, sums and statistics.
// The input is never modified; every method recomputes from it.
type Scanner struct {
	input string
}

func NewScanner(input []byte) *Scanner {
	return &Scanner{input: string(input)}
}

func (s *Scanner) Sum(mode types.Mode) (uint64, error) {
	return Scan(s.input, mode)
}

// Tokenize returns every mul, do and don't token in position order.
// Mul tokens carry whether they are active under ModeConditional. Active mul
// tokens carry their operands and product; an active token whose operands do
// not fit in uint64 fails the call. Inactive tokens carry them only when they
// parse, so Tokenize fails on the same inputs as Sum(ModeConditional).
func (s *Scanner) Tokenize() ([]types.Token, error) {
	ranges := EnabledRanges(s.input)
	tokens := make([]types.Token, 0)

	for _, m := range mulPattern.FindAllStringSubmatchIndex(s.input, -1) {
		token := types.Token{
			Type:    types.TokenMul,
			Pos:     m[0],
			Raw:     s.input[m[0]:m[1]],
			Enabled: inAnyRange(ranges, m[0]),
		}

		a, b, err := parseOperands(s.input, m)
		if err == nil {
			token.Product, err = accumulate(0, a, b, m[0])
		}
		switch {
		case err == nil:
			token.Operands = []uint64{a, b}
		case token.Enabled:
			return nil, err
		default:
			token.Product = 0
		}

		tokens = append(tokens, token)
	}

	for _, loc := range doPattern.FindAllStringIndex(s.input, -1) {
		tokens = append(tokens, s.toggle(types.TokenDo, loc))
	}
	for _, loc := range dontPattern.FindAllStringIndex(s.input, -1) {
		tokens = append(tokens, s.toggle(types.TokenDont, loc))
	}

	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].Pos < tokens[j].Pos
	})

	return tokens, nil
}

func (s *Scanner) toggle(tt types.TokenType, loc []int) types.Token {
	return types.Token{
		Type:    tt,
		Pos:     loc[0],
		Raw:     s.input[loc[0]:loc[1]],
		Enabled: tt == types.TokenDo,
	}
}

// GetStats tokenizes the input and computes both sums. It fails when
// Tokenize or either Sum fails, so a reported sum is always a real one.
func (s *Scanner) GetStats() (types.ScanStats, error) {
	stats := types.ScanStats{
		InputSize:     len(s.input),
		TokensByType:  make(map[types.TokenType]int),
		EnabledRanges: EnabledRanges(s.input),
	}

	tokens, err := s.Tokenize()
	if err != nil {
		return types.ScanStats{}, err
	}

	stats.TotalTokens = len(tokens)
	for _, token := range tokens {
		stats.TokensByType[token.Type]++
		if token.Type != types.TokenMul {
			continue
		}
		if token.Enabled {
			stats.ActiveMuls++
		} else {
			stats.InactiveMuls++
		}
	}

	if stats.UnconditionalSum, err = s.Sum(types.ModeUnconditional); err != nil {
		return types.ScanStats{}, err
	}
	if stats.ConditionalSum, err = s.Sum(types.ModeConditional); err != nil {
		return types.ScanStats{}, err
	}

	return stats, nil
}
