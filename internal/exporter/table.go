package exporter

import (
	"fmt"
	"io"

	"github.com/badele/mulscan/internal/types"
)

func ExportTokensToTable(tokens []types.Token, writer io.Writer) error {
	fmt.Fprintln(writer, "\n┌─────────┬────────┬───────────┬──────────────────────────────────────┬──────────────────────┬────────┐")
	fmt.Fprintf(writer, "│ %-7s │ %-6s │ %-9s │ %-36s │ %-20s │ %-6s │\n", "Token", "Pos", "Type", "Raw", "Product", "Active")
	fmt.Fprintln(writer, "├─────────┼────────┼───────────┼──────────────────────────────────────┼──────────────────────┼────────┤")

	for i, token := range tokens {
		var kind, product, active string

		switch token.Type {
		case types.TokenMul:
			kind = "MUL"
			product = fmt.Sprintf("%d", token.Product)
			active = yesNo(token.Enabled)

		case types.TokenDo:
			kind = "DO"
			product = "-"
			active = "-"

		case types.TokenDont:
			kind = "DONT"
			product = "-"
			active = "-"

		default:
			kind = "UNKNOWN"
			product = "-"
			active = "-"
		}

		fmt.Fprintf(writer, "│ %-7d │ %-6d │ %-9s │ %-36s │ %-20s │ %-6s │\n",
			i+1, token.Pos, kind, truncate(token.Raw, 36), product, active)
	}

	_, err := fmt.Fprintln(writer, "└─────────┴────────┴───────────┴──────────────────────────────────────┴──────────────────────┴────────┘")

	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(s string, maxLen int) string {
	s = fmt.Sprintf("%q", s)

	// Remove quote added by %q
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
