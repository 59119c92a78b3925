package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tablewatch"
	"github.com/fwojciec/tablewatch/detect"
	"github.com/fwojciec/tablewatch/goquery"
	twhttp "github.com/fwojciec/tablewatch/http"
	"github.com/fwojciec/tablewatch/rod"
	twslog "github.com/fwojciec/tablewatch/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read by watch when records come from "-".
	Stdin io.Reader

	// NewFetcher opens a page fetcher. Replaced in tests.
	NewFetcher func(render bool, resolver tablewatch.PlatformResolver) (tablewatch.Fetcher, error)
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin:      os.Stdin,
		NewFetcher: newFetcher,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tablewatch"),
		kong.Description("Find and extract tables in AI chat transcripts"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tablewatch --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var resolver tablewatch.PlatformResolver = goquery.DefaultResolver()
	if cli.Verbose {
		resolver = twslog.NewLoggingResolver(resolver, deps.Logger)
	}
	detector := detect.NewDetector(resolver, detect.WithThreshold(cli.Threshold))
	deps.Comparer = detector
	deps.Detector = detector
	if cli.Verbose {
		deps.Detector = twslog.NewLoggingDetector(detector, deps.Logger)
	}

	deps.OpenFetcher = func(render bool) (tablewatch.Fetcher, error) {
		f, err := m.NewFetcher(render, resolver)
		if err != nil {
			return nil, err
		}
		if cli.Verbose {
			return twslog.NewLoggingFetcher(f, deps.Logger), nil
		}
		return f, nil
	}

	return kongCtx.Run(deps)
}

// newFetcher returns a browser fetcher waiting for the platform's response
// containers when render is set, and a plain HTTP fetcher otherwise.
func newFetcher(render bool, resolver tablewatch.PlatformResolver) (tablewatch.Fetcher, error) {
	if !render {
		return twhttp.NewFetcher(), nil
	}
	ready := func(url string) string {
		if p, ok := resolver.Resolve(url).(interface{ ReadySelector() string }); ok {
			return p.ReadySelector()
		}
		return ""
	}
	opts := []rod.Option{rod.WithWaitSelector(ready)}
	if bin := os.Getenv("TABLEWATCH_CHROME"); bin != "" {
		opts = append(opts, rod.WithManager(rod.WithBrowserBin(bin)))
	}
	f, err := rod.NewFetcher(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return f, nil
}

// isURL reports whether s looks like an http(s) URL.
func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
