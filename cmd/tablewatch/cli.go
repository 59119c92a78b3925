package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/tablewatch"
	"github.com/fwojciec/tablewatch/detect"
)

// Comparer runs the legacy and standard strategies side by side.
type Comparer interface {
	Compare(ctx context.Context, doc tablewatch.Document, known []tablewatch.Node) (*detect.Comparison, error)
}

var _ Comparer = (*detect.Detector)(nil)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Detector tablewatch.Detector
	Comparer Comparer

	// OpenFetcher returns a fetcher for page URLs; render selects the
	// headless browser. The caller closes it.
	OpenFetcher func(render bool) (tablewatch.Fetcher, error)

	// RetryDelays overrides the fetch backoff. Nil uses DefaultRetryDelays.
	RetryDelays []time.Duration
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose   bool    `short:"v" help:"Log detection passes and fetches to stderr"`
	Threshold float64 `default:"0.6" help:"Minimum confidence for accepting a table"`

	Scan    ScanCmd    `cmd:"" help:"Detect tables in a page or HTML file"`
	Compare CompareCmd `cmd:"" help:"Compare the legacy and standard detection strategies"`
	Watch   WatchCmd   `cmd:"" help:"Replay mutation records against an HTML file and track tables"`
}

// Source locates the document a command works on.
type Source struct {
	Target string `arg:"" help:"HTML file or page URL"`
	URL    string `name:"url" env:"TABLEWATCH_URL" help:"Page URL used for platform detection when reading a file"`
	Render bool   `short:"r" help:"Render the page in a headless browser before scanning"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	Source

	Strategy   string `short:"s" default:"standard" enum:"standard,legacy,combined" help:"Detection strategy (standard, legacy, combined)"`
	JSON       bool   `help:"Print results as JSON"`
	Candidates bool   `help:"List every candidate with its confidence and rejection reason"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	Source

	JSON bool `help:"Print the comparison as JSON"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	File        string        `arg:"" type:"existingfile" help:"Initial HTML document"`
	Records     string        `required:"" help:"JSON lines file of mutation records, or - for stdin"`
	URL         string        `name:"url" env:"TABLEWATCH_URL" help:"Page URL used for platform detection"`
	Strategy    string        `short:"s" default:"standard" enum:"standard,legacy,combined" help:"Detection strategy (standard, legacy, combined)"`
	Debounce    time.Duration `default:"300ms" help:"Quiet period after the last relevant mutation"`
	MinInterval time.Duration `default:"1s" help:"Minimum time between two scans"`
	JSON        bool          `help:"Print the final tables as JSON"`
}
