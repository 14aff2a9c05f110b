package exporter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/badele/mulscan/internal/types"
)

type ScannerJSONOutput struct {
	Mode   types.Mode      `json:"mode"`
	Tokens []types.Token   `json:"tokens"`
	Stats  types.ScanStats `json:"stats"`
}

// TokensJSON writes the tokens and statistics of s, tagged with the mode the
// run was asked for. Nothing is written when tokenizing or summing fails.
func TokensJSON(s types.ScannerWithStats, mode types.Mode, writer io.Writer) error {
	tokens, err := s.Tokenize()
	if err != nil {
		return err
	}

	stats, err := s.GetStats()
	if err != nil {
		return err
	}

	output := ScannerJSONOutput{
		Mode:   mode,
		Tokens: tokens,
		Stats:  stats,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON serialization error: %w", err)
	}

	_, err = fmt.Fprintln(writer, string(data))
	return err
}
