package detect

import (
	"context"

	"github.com/fwojciec/tablewatch"
	"golang.org/x/sync/errgroup"
)

// Comparison is the outcome of running the legacy and standard strategies
// over the same document.
type Comparison struct {
	Legacy   *tablewatch.DetectReport
	Standard *tablewatch.DetectReport

	// Table IDs found by only one strategy, or by both.
	LegacyOnly   []string
	StandardOnly []string
	Shared       []string
}

// Compare runs the legacy and standard strategies concurrently and diffs
// their results by table ID.
func (d *Detector) Compare(ctx context.Context, doc tablewatch.Document, known []tablewatch.Node) (*Comparison, error) {
	var legacy, standard *tablewatch.DetectReport
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		legacy, err = d.Detect(gctx, doc, tablewatch.DetectOptions{Strategy: tablewatch.StrategyLegacy, Known: known})
		return err
	})
	g.Go(func() error {
		var err error
		standard, err = d.Detect(gctx, doc, tablewatch.DetectOptions{Strategy: tablewatch.StrategyStandard, Known: known})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := &Comparison{Legacy: legacy, Standard: standard}
	inStandard := make(map[string]bool, len(standard.Results))
	for _, r := range standard.Results {
		inStandard[r.Table.ID] = true
	}
	inLegacy := make(map[string]bool, len(legacy.Results))
	for _, r := range legacy.Results {
		inLegacy[r.Table.ID] = true
		if inStandard[r.Table.ID] {
			c.Shared = append(c.Shared, r.Table.ID)
		} else {
			c.LegacyOnly = append(c.LegacyOnly, r.Table.ID)
		}
	}
	for _, r := range standard.Results {
		if !inLegacy[r.Table.ID] {
			c.StandardOnly = append(c.StandardOnly, r.Table.ID)
		}
	}
	return c, nil
}
