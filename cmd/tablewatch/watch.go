package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fwojciec/tablewatch"
	"github.com/fwojciec/tablewatch/detect"
)

// maxRecordSize bounds one JSON line; doc_reset records carry whole pages.
const maxRecordSize = 32 << 20

// Run executes the watch command.
func (c *WatchCmd) Run(deps *Dependencies) error {
	strategy, err := tablewatch.ParseStrategy(c.Strategy)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tablewatch.ErrorMessage(err))
		return err
	}

	doc, err := loadFile(c.File, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tablewatch.ErrorMessage(err))
		return err
	}

	records, err := c.openRecords(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tablewatch.ErrorMessage(err))
		return err
	}
	defer records.Close()

	registry := detect.NewRegistry()
	sched := detect.NewScheduler(doc, deps.Detector, registry)
	sched.Strategy = strategy
	sched.Debounce = c.Debounce
	sched.MinInterval = c.MinInterval
	sched.Logger = deps.Logger
	// The scan hook runs on the scheduler goroutine.
	stderr := &lockedWriter{w: deps.Stderr}
	sched.OnScan = func(r detect.ScanReport) {
		if r.Err != nil {
			fmt.Fprintf(stderr, "warning: %s scan failed: %s\n", r.Mode, tablewatch.ErrorMessage(r.Err))
		}
		fmt.Fprintf(stderr, "scan %s: +%d -%d new=%d total=%d\n", r.Mode, r.Added, r.Removed, r.New, r.Total)
	}

	ctx, cancel := context.WithCancel(deps.Ctx)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- sched.Run(ctx) }()

	readErr := submitRecords(records, sched, stderr)

	_ = sched.Close()
	if err := <-done; err != nil {
		return err
	}
	if readErr != nil {
		fmt.Fprintf(deps.Stderr, "error: reading records: %v\n", readErr)
		return readErr
	}

	results := registry.GetAll()
	if c.JSON {
		if results == nil {
			results = []*tablewatch.TableDetectionResult{}
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No tables found.")
		return nil
	}
	fmt.Fprintln(deps.Stdout, tablewatch.FormatTables(results))
	return nil
}

func (c *WatchCmd) openRecords(deps *Dependencies) (io.ReadCloser, error) {
	if c.Records == "-" {
		if deps.Stdin == nil {
			return nil, tablewatch.Errorf(tablewatch.EINVALID, "stdin is not available")
		}
		return io.NopCloser(deps.Stdin), nil
	}
	f, err := os.Open(c.Records)
	if os.IsNotExist(err) {
		return nil, tablewatch.Errorf(tablewatch.ENOTFOUND, "records file %s not found", c.Records)
	}
	return f, err
}

// submitRecords feeds every JSON line to the scheduler. Malformed lines
// are reported and skipped.
func submitRecords(r io.Reader, sched *detect.Scheduler, stderr io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var rec tablewatch.MutationRecord
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			fmt.Fprintf(stderr, "line %d: invalid record: %v\n", line, err)
			continue
		}
		sched.Submit(rec)
	}
	return scanner.Err()
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}
