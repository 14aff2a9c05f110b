package scanner

import (
	"fmt"
	"math/bits"
	"regexp"
	"sort"
	"strconv"

	"github.com/badele/mulscan/internal/types"
)

var (
	mulPattern  = regexp.MustCompile(`mul\((\d+),(\d+)\)`)
	doPattern   = regexp.MustCompile(`do\(\)`)
	dontPattern = regexp.MustCompile(`don't\(\)`)
)

// Scan returns the sum of a*b over the mul(a,b) tokens of input that are
// active under mode. In ModeUnconditional every token is active; in
// ModeConditional a token is active when its start lies inside at least one
// range returned by EnabledRanges.
//
// Operands that do not fit in uint64 abort the scan with a *ParseError, and
// an overflowing product or sum aborts it with ErrOverflow. No partial sum is
// returned in either case.
func Scan(input string, mode types.Mode) (uint64, error) {
	var ranges []types.Range
	if mode == types.ModeConditional {
		ranges = EnabledRanges(input)
	}

	var sum uint64
	for _, m := range mulPattern.FindAllStringSubmatchIndex(input, -1) {
		pos := m[0]
		if mode == types.ModeConditional && !inAnyRange(ranges, pos) {
			continue
		}

		a, b, err := parseOperands(input, m)
		if err != nil {
			return 0, err
		}

		sum, err = accumulate(sum, a, b, pos)
		if err != nil {
			return 0, err
		}
	}

	return sum, nil
}

// EnabledRanges derives one range per enabling position: position 0 plus the
// start of every do() token. Each range ends at the first don't() starting
// strictly after it, or at len(input). Ranges are returned in that order,
// unmerged, and may overlap.
func EnabledRanges(input string) []types.Range {
	enables := []int{0}
	for _, loc := range doPattern.FindAllStringIndex(input, -1) {
		enables = append(enables, loc[0])
	}

	// FindAll reports matches left to right, so disables is sorted.
	var disables []int
	for _, loc := range dontPattern.FindAllStringIndex(input, -1) {
		disables = append(disables, loc[0])
	}

	ranges := make([]types.Range, 0, len(enables))
	for _, start := range enables {
		ranges = append(ranges, types.Range{Start: start, End: nextDisable(start, disables, len(input))})
	}

	return ranges
}

func nextDisable(start int, disables []int, fallback int) int {
	i := sort.SearchInts(disables, start+1)
	if i < len(disables) {
		return disables[i]
	}
	return fallback
}

func inAnyRange(ranges []types.Range, pos int) bool {
	for _, r := range ranges {
		if r.Contains(pos) {
			return true
		}
	}
	return false
}

// parseOperands converts the two capture groups of a mul match.
func parseOperands(input string, m []int) (uint64, uint64, error) {
	raw := input[m[0]:m[1]]

	a, err := strconv.ParseUint(input[m[2]:m[3]], 10, 64)
	if err != nil {
		return 0, 0, &ParseError{Pos: m[0], Raw: raw, Err: err}
	}

	b, err := strconv.ParseUint(input[m[4]:m[5]], 10, 64)
	if err != nil {
		return 0, 0, &ParseError{Pos: m[0], Raw: raw, Err: err}
	}

	return a, b, nil
}

func accumulate(sum, a, b uint64, pos int) (uint64, error) {
	hi, product := bits.Mul64(a, b)
	if hi != 0 {
		return 0, fmt.Errorf("%w: %d*%d at pos %d", ErrOverflow, a, b, pos)
	}

	total, carry := bits.Add64(sum, product, 0)
	if carry != 0 {
		return 0, fmt.Errorf("%w: adding %d at pos %d", ErrOverflow, product, pos)
	}

	return total, nil
}
