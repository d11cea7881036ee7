package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ankify"
	"github.com/fwojciec/ankify/apkg"
	ankifycsv "github.com/fwojciec/ankify/csv"
	"github.com/fwojciec/ankify/fs"
	"github.com/fwojciec/ankify/goquery"
	"github.com/fwojciec/ankify/htmltomarkdown"
	"github.com/fwojciec/ankify/rod"
	ankifyslog "github.com/fwojciec/ankify/slog"
	ankifyzip "github.com/fwojciec/ankify/zip"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	KeepTags bool          `default:"true" negatable:"" help:"Keep hashtag tokens in card text (use --no-keep-tags to strip them)"`
	Plain    bool          `help:"Convert card backs to Markdown (CSV output only)"`
	Timeout  time.Duration `short:"t" default:"30s" help:"Render timeout for hosted pages"`
	Verbose  bool          `short:"v" help:"Enable debug logging"`
	Input    string        `arg:"" required:"" help:"Notion export: an HTML file, a zip archive, or an https:// page URL"`
	Output   string        `arg:"" required:"" help:"Output file (.apkg or .csv)"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ankify"),
		kong.Description("Convert Notion HTML exports to Anki flashcard decks"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)

	source, err := newSource(cli, stderr)
	if err != nil {
		return err
	}
	defer source.Close()

	writer, err := newWriter(cli)
	if err != nil {
		return err
	}

	cmd := &ConvertCmd{
		Source:   ankifyslog.NewLoggingSource(source, logger),
		Writer:   ankifyslog.NewLoggingWriter(writer, logger),
		Logger:   logger,
		KeepTags: cli.KeepTags,
		Output:   cli.Output,
	}
	return cmd.Run(ctx, stdout)
}

// newLogger builds the CLI logger. Debug level is gated behind the
// verbose flag.
func newLogger(stderr io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// newSource picks the export source from the input's shape: URLs are
// rendered in a headless browser, zip archives are extracted, anything
// else is treated as an HTML file on disk.
func newSource(cli *CLI, stderr io.Writer) (ankify.ExportSource, error) {
	switch {
	case strings.HasPrefix(cli.Input, "http://"), strings.HasPrefix(cli.Input, "https://"):
		source, err := rod.NewSource(cli.Input, rod.WithRenderTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return source, nil
	case strings.EqualFold(filepath.Ext(cli.Input), ".zip"):
		return ankifyzip.NewSource(cli.Input), nil
	default:
		return fs.NewFileSource(cli.Input), nil
	}
}

// newWriter picks the deck writer from the output extension.
func newWriter(cli *CLI) (ankify.DeckWriter, error) {
	switch strings.ToLower(filepath.Ext(cli.Output)) {
	case ".apkg":
		return apkg.NewWriter(cli.Output), nil
	case ".csv":
		var opts []ankifycsv.Option
		if cli.Plain {
			opts = append(opts, ankifycsv.WithConverter(htmltomarkdown.NewConverter()))
		}
		return ankifycsv.NewWriter(cli.Output, opts...), nil
	default:
		return nil, ankify.Errorf(ankify.EINVALID, "unsupported output format %q (use .apkg or .csv)", filepath.Ext(cli.Output))
	}
}

// ConvertCmd runs the export-to-deck pipeline.
type ConvertCmd struct {
	Source   ankify.ExportSource
	Writer   ankify.DeckWriter
	Logger   *slog.Logger
	KeepTags bool
	Output   string
}

// Run resolves the export, parses it into a deck and writes the deck
// out, printing a one-line summary on success.
func (c *ConvertCmd) Run(ctx context.Context, stdout io.Writer) error {
	export, err := c.Source.Resolve(ctx)
	if err != nil {
		return err
	}

	html, err := os.ReadFile(export.HTMLPath)
	if err != nil {
		return fmt.Errorf("failed to read export: %w", err)
	}

	resolver := ankifyslog.NewLoggingResolver(fs.NewResolver(export.AssetsDir), c.Logger)
	parser := ankifyslog.NewLoggingParser(goquery.NewParser(resolver), c.Logger)

	deck, err := parser.ParseDeck(string(html), ankify.ParseOptions{KeepTags: c.KeepTags})
	if err != nil {
		return err
	}

	if deck.TotalCards() == 0 {
		return ankify.Errorf(ankify.EINVALID, "no cards found in %q", export.HTMLPath)
	}

	if err := c.Writer.WriteDeck(ctx, deck); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Wrote %s (%d cards, %d subdecks, %d media files)\n",
		c.Output, deck.TotalCards(), len(deck.Subdecks), len(deck.MediaFiles()))
	return nil
}
