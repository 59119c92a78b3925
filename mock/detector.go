package mock

import (
	"context"

	"github.com/fwojciec/tablewatch"
)

var _ tablewatch.Detector = (*Detector)(nil)

// Detector is a mock implementation of tablewatch.Detector.
type Detector struct {
	DetectFn func(ctx context.Context, doc tablewatch.Document, opts tablewatch.DetectOptions) (*tablewatch.DetectReport, error)
}

func (d *Detector) Detect(ctx context.Context, doc tablewatch.Document, opts tablewatch.DetectOptions) (*tablewatch.DetectReport, error) {
	return d.DetectFn(ctx, doc, opts)
}

var _ tablewatch.FormatParser = (*FormatParser)(nil)

// FormatParser is a mock implementation of tablewatch.FormatParser.
type FormatParser struct {
	FormatFn   func() tablewatch.Format
	CanParseFn func(n tablewatch.Node) bool
	ParseFn    func(n tablewatch.Node) (*tablewatch.RawTable, bool)
}

func (p *FormatParser) Format() tablewatch.Format {
	return p.FormatFn()
}

func (p *FormatParser) CanParse(n tablewatch.Node) bool {
	return p.CanParseFn(n)
}

func (p *FormatParser) Parse(n tablewatch.Node) (*tablewatch.RawTable, bool) {
	return p.ParseFn(n)
}
