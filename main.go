package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/badele/mulscan/internal/cache"
	"github.com/badele/mulscan/internal/config"
	"github.com/badele/mulscan/internal/exporter"
	"github.com/badele/mulscan/internal/fetch"
	"github.com/badele/mulscan/internal/scanner"
	"github.com/badele/mulscan/internal/types"
	"github.com/badele/mulscan/pkg/mulscan"
)

type CLI struct {
	File string `arg:"" optional:"" type:"path" help:"Input file. If omitted, reads from stdin (pipe) or fetches --url."`

	Part     string `short:"p" enum:"1,2" default:"1" help:"Puzzle part: 1 sums every mul(), 2 honours do()/don't()."`
	Encoding string `short:"e" enum:"utf8,cp437,cp850,iso-8859-1" default:"utf8" help:"Input encoding (${enum})."`

	Cookie  string `name:"cookie" help:"Session cookie (default: $AOC_COOKIE)."`
	URL     string `name:"url" help:"Input URL (default: $AOC_URL)."`
	Config  string `short:"c" type:"path" help:"YAML configuration file (default: mulscan.yaml when present)."`
	Cache   string `name:"cache" type:"path" help:"SQLite input cache (default: .mulscan/cache.db)."`
	NoCache bool   `name:"no-cache" help:"Always fetch the input from the server."`

	Table     bool `short:"t" help:"Display tokens in table format."`
	JSON      bool `short:"j" name:"json" help:"Display tokens in JSON format."`
	Stats     bool `short:"s" help:"Display scan statistics."`
	Highlight bool `name:"highlight" help:"Display the input with tokens highlighted."`
	Width     int  `default:"120" help:"Line width for --highlight."`

	Debug bool `short:"d" help:"Enable debug logging."`
}

func main() {
	if err := config.LoadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	var cli CLI
	kong.Parse(&cli,
		kong.Name("mulscan"),
		kong.Description("Sum the mul(a,b) instructions hidden in a corrupted puzzle input."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, &cli, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cli *CLI, stdin *os.File, stdout io.Writer) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	applyFlags(cfg, cli)

	level := cfg.SlogLevel()
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	data, err := readInput(ctx, cli, cfg, stdin, logger)
	if err != nil {
		return err
	}

	data, err = mulscan.ConvertToUTF8(data, cli.Encoding)
	if err != nil {
		return err
	}

	mode, err := types.ParseMode(cli.Part)
	if err != nil {
		return err
	}

	logger.Debug("scanning input", "bytes", len(data), "mode", mode)

	s := scanner.NewScanner(data)

	switch {
	case cli.Stats:
		stats, err := s.GetStats()
		if err != nil {
			return err
		}
		exporter.DisplayStats(stats, stdout)
		return nil

	case cli.JSON:
		return exporter.TokensJSON(s, mode, stdout)

	case cli.Table:
		tokens, err := s.Tokenize()
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "=== input size: %d bytes ===\n", len(data))
		return exporter.ExportTokensToTable(tokens, stdout)

	case cli.Highlight:
		tokens, err := s.Tokenize()
		if err != nil {
			return err
		}
		return exporter.ExportHighlighted(string(data), tokens, cli.Width, stdout)
	}

	sum, err := s.Sum(mode)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Part %d result: %d\n", mode.Part(), sum)
	return nil
}

func applyFlags(cfg *config.Config, cli *CLI) {
	if cli.Cookie != "" {
		cfg.Session = cli.Cookie
	}
	if cli.URL != "" {
		cfg.URL = cli.URL
	}
	if cli.Cache != "" {
		cfg.Cache = cli.Cache
	}
}

// readInput reads the named file, else a piped stdin, else fetches cfg.URL.
func readInput(ctx context.Context, cli *CLI, cfg *config.Config, stdin *os.File, logger *slog.Logger) ([]byte, error) {
	if cli.File != "" {
		data, err := os.ReadFile(cli.File)
		if err != nil {
			return nil, fmt.Errorf("reading file: %w", err)
		}
		return data, nil
	}

	stat, err := stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("checking stdin: %w", err)
	}
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading from stdin: %w", err)
		}
		return data, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var store fetch.Cache
	if !cli.NoCache && cfg.Cache != "" {
		db, err := cache.Open(cfg.Cache)
		if err != nil {
			logger.Warn("input cache disabled", "path", cfg.Cache, "error", err)
		} else {
			defer db.Close()
			store = db
		}
	}

	return fetch.NewClient(cfg.Timeout, store, logger).Fetch(ctx, cfg.URL, cfg.Session)
}
