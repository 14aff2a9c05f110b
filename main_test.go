package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/badele/mulscan/internal/config"
	"github.com/badele/mulscan/internal/scanner"
)

const example = "xmul(2,4)&mul[3,7]!^don't()_mul(5,5)+mul(32,64](mul(11,8)undo()?mul(8,5))"

// setup isolates the test from any mulscan.yaml or AOC_* variables and
// returns a non-pipe stdin.
func setup(t *testing.T) (string, *os.File) {
	t.Helper()

	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(config.EnvCookie, "")
	t.Setenv(config.EnvURL, "")
	t.Setenv(config.EnvCache, "")
	t.Setenv(config.EnvLogLevel, "error")

	stdin, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("open %s: %v", os.DevNull, err)
	}
	t.Cleanup(func() { stdin.Close() })

	return dir, stdin
}

func TestRunFromFile(t *testing.T) {
	dir, stdin := setup(t)

	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte(example), 0600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	tests := []struct {
		part string
		want string
	}{
		{"1", "Part 1 result: 161\n"},
		{"2", "Part 2 result: 48\n"},
	}

	for _, tt := range tests {
		t.Run("part"+tt.part, func(t *testing.T) {
			var out bytes.Buffer
			cli := &CLI{File: path, Part: tt.part, Encoding: "utf8", Width: 80}

			if err := run(context.Background(), cli, stdin, &out); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, out.String())
			}
		})
	}
}

func TestRunFetchesAndCaches(t *testing.T) {
	dir, stdin := setup(t)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if c, err := r.Cookie("session"); err != nil || c.Value != "cookie" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		io.WriteString(w, example)
	}))
	defer srv.Close()

	cli := &CLI{
		Part:     "2",
		Encoding: "utf8",
		Cookie:   "cookie",
		URL:      srv.URL,
		Cache:    filepath.Join(dir, "cache", "inputs.db"),
		Width:    80,
	}

	for i := 0; i < 2; i++ {
		var out bytes.Buffer
		if err := run(context.Background(), cli, stdin, &out); err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
		if out.String() != "Part 2 result: 48\n" {
			t.Errorf("run %d: unexpected output %q", i, out.String())
		}
	}

	if hits.Load() != 1 {
		t.Errorf("expected the second run to be served from cache, got %d requests", hits.Load())
	}
}

func TestRunRequiresCookie(t *testing.T) {
	_, stdin := setup(t)

	cli := &CLI{Part: "1", Encoding: "utf8", URL: "http://localhost", NoCache: true}
	err := run(context.Background(), cli, stdin, io.Discard)
	if !errors.Is(err, config.ErrMissingCookie) {
		t.Fatalf("expected ErrMissingCookie, got %v", err)
	}
}

func TestRunParseErrorPrintsNoSum(t *testing.T) {
	dir, stdin := setup(t)

	path := filepath.Join(dir, "input.txt")
	input := "mul(2,3)mul(" + strings.Repeat("7", 40) + ",1)"
	if err := os.WriteFile(path, []byte(input), 0600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	var out bytes.Buffer
	cli := &CLI{File: path, Part: "1", Encoding: "utf8"}
	err := run(context.Background(), cli, stdin, &out)
	if !errors.Is(err, scanner.ErrTokenParse) {
		t.Fatalf("expected ErrTokenParse, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestRunStats(t *testing.T) {
	dir, stdin := setup(t)

	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte(example), 0600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	var out bytes.Buffer
	cli := &CLI{File: path, Part: "1", Encoding: "utf8", Stats: true}
	if err := run(context.Background(), cli, stdin, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), "=== Scan Statistics ===") {
		t.Errorf("expected statistics output, got %q", out.String())
	}
}

func TestRunOverflowPrintsNoReport(t *testing.T) {
	dir, stdin := setup(t)

	path := filepath.Join(dir, "input.txt")
	input := fmt.Sprintf("mul(%d,1)mul(1,1)", uint64(math.MaxUint64))
	if err := os.WriteFile(path, []byte(input), 0600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	tests := []struct {
		name string
		cli  CLI
	}{
		{"stats", CLI{File: path, Part: "2", Encoding: "utf8", Stats: true}},
		{"json", CLI{File: path, Part: "2", Encoding: "utf8", JSON: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(context.Background(), &tt.cli, stdin, &out)
			if !errors.Is(err, scanner.ErrOverflow) {
				t.Fatalf("expected ErrOverflow, got %v", err)
			}
			if out.Len() != 0 {
				t.Errorf("expected no output, got %q", out.String())
			}
		})
	}
}

func TestRunViewsSkipUnparsableInactiveToken(t *testing.T) {
	dir, stdin := setup(t)

	path := filepath.Join(dir, "input.txt")
	input := "mul(2,3)don't()mul(" + strings.Repeat("9", 25) + ",2)"
	if err := os.WriteFile(path, []byte(input), 0600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	tests := []struct {
		name string
		cli  CLI
		want string
	}{
		{"part2", CLI{File: path, Part: "2", Encoding: "utf8"}, "Part 2 result: 6\n"},
		{"table", CLI{File: path, Part: "2", Encoding: "utf8", Table: true}, "mul(2,3)"},
		{"highlight", CLI{File: path, Part: "2", Encoding: "utf8", Highlight: true, Width: 80}, "don't()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(context.Background(), &tt.cli, stdin, &out); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("expected output to contain %q, got %q", tt.want, out.String())
			}
		})
	}
}

// chdir changes the working directory for the duration of the test,
// like testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("chdir %s: %v", old, err)
		}
	})
}
