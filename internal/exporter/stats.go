package exporter

import (
	"fmt"
	"io"
	"sort"

	"github.com/badele/mulscan/internal/types"
)

func DisplayStats(stats types.ScanStats, writer io.Writer) {
	type typeCount struct {
		Type  types.TokenType
		Count int
	}

	var typeCounts []typeCount

	fmt.Fprintln(writer, "=== Scan Statistics ===")
	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "  Input size: %d bytes\n", stats.InputSize)
	fmt.Fprintf(writer, "  Total tokens: %d\n", stats.TotalTokens)

	fmt.Fprintln(writer, "\n--- Tokens by Type")

	for t, count := range stats.TokensByType {
		typeCounts = append(typeCounts, typeCount{t, count})
	}
	sort.Slice(typeCounts, func(i, j int) bool {
		if typeCounts[i].Count == typeCounts[j].Count {
			return typeCounts[i].Type < typeCounts[j].Type
		}
		return typeCounts[i].Count > typeCounts[j].Count
	})

	for _, tc := range typeCounts {
		percentage := float64(tc.Count) / float64(stats.TotalTokens) * 100
		fmt.Fprintf(writer, "  %-30s:  %5d (%.1f%%)\n", tc.Type.String(), tc.Count, percentage)
	}

	fmt.Fprintln(writer, "\n--- Multiplications")
	fmt.Fprintf(writer, "  %-30s:  %5d\n", "Active", stats.ActiveMuls)
	fmt.Fprintf(writer, "  %-30s:  %5d\n", "Inactive", stats.InactiveMuls)

	fmt.Fprintln(writer, "\n--- Enabled Ranges")
	for _, r := range stats.EnabledRanges {
		fmt.Fprintf(writer, "  [%d, %d)\n", r.Start, r.End)
	}

	fmt.Fprintln(writer, "\n--- Sums")
	fmt.Fprintf(writer, "  %-30s:  %d\n", types.ModeUnconditional.String(), stats.UnconditionalSum)
	fmt.Fprintf(writer, "  %-30s:  %d\n", types.ModeConditional.String(), stats.ConditionalSum)
}
