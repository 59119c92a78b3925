package detect

import (
	"context"
	"slices"
	"time"

	"github.com/fwojciec/tablewatch"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var _ tablewatch.Detector = (*Detector)(nil)

// Detector runs the detection pipeline: platform resolution, candidate
// finding, parsing, repair, scoring and wrapper filtering.
type Detector struct {
	resolver  tablewatch.PlatformResolver
	threshold float64
	repair    tablewatch.RepairOptions
	parsers   []tablewatch.FormatParser
	now       func() time.Time
}

// Option configures a Detector.
type Option func(*Detector)

// WithThreshold sets the minimum confidence for accepting a candidate.
func WithThreshold(threshold float64) Option {
	return func(d *Detector) {
		d.threshold = threshold
	}
}

// WithRepair sets the structure repair steps.
func WithRepair(opts tablewatch.RepairOptions) Option {
	return func(d *Detector) {
		d.repair = opts
	}
}

// WithParsers replaces the format parsers. Parsers are tried in order and
// the first successful parse wins.
func WithParsers(parsers ...tablewatch.FormatParser) Option {
	return func(d *Detector) {
		d.parsers = parsers
	}
}

// WithClock sets the clock used for extraction timestamps and durations.
func WithClock(now func() time.Time) Option {
	return func(d *Detector) {
		d.now = now
	}
}

// DefaultParsers returns the format parsers in priority order: markup,
// markdown, div grid, free text.
func DefaultParsers() []tablewatch.FormatParser {
	return []tablewatch.FormatParser{
		NewMarkupParser(),
		NewMarkdownParser(),
		NewDivGridParser(),
		NewTextParser(),
	}
}

// NewDetector creates a Detector resolving platforms with resolver.
func NewDetector(resolver tablewatch.PlatformResolver, opts ...Option) *Detector {
	d := &Detector{
		resolver:  resolver,
		threshold: tablewatch.DefaultThreshold,
		repair:    tablewatch.DefaultRepairOptions(),
		parsers:   DefaultParsers(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect runs one detection pass over doc.
func (d *Detector) Detect(ctx context.Context, doc tablewatch.Document, opts tablewatch.DetectOptions) (*tablewatch.DetectReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	strategy, err := tablewatch.ParseStrategy(string(opts.Strategy))
	if err != nil {
		return nil, err
	}

	begin := d.now()
	profile := d.resolver.Resolve(doc.URL())
	report := &tablewatch.DetectReport{
		PassID:   newPassID(),
		Platform: profile.Platform(),
		Strategy: strategy,
	}
	report.Title = profile.Title(doc)
	if report.Title == "" {
		report.Title = doc.Title()
	}

	switch strategy {
	case tablewatch.StrategyCombined:
		var standard, legacy *pass
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			standard = d.run(gctx, doc, profile, opts.Known, false)
			return standard.err
		})
		g.Go(func() error {
			legacy = d.run(gctx, doc, profile, opts.Known, true)
			return legacy.err
		})
		if err := g.Wait(); err != nil {
			report.Err = err
			break
		}
		report.Candidates = append(standard.candidates, legacy.candidates...)
		report.Results = d.results(doc, report, merge(standard.accepted, legacy.accepted))
	default:
		p := d.run(ctx, doc, profile, opts.Known, strategy == tablewatch.StrategyLegacy)
		report.Candidates = p.candidates
		if p.err != nil {
			report.Err = p.err
			break
		}
		report.Results = d.results(doc, report, p.accepted)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report.Duration = d.now().Sub(begin)
	return report, nil
}

// pass is the outcome of one strategy run.
type pass struct {
	candidates []*tablewatch.Candidate
	accepted   []*tablewatch.Candidate
	err        error
}

func (d *Detector) run(ctx context.Context, doc tablewatch.Document, profile tablewatch.PlatformProfile, known []tablewatch.Node, legacy bool) (p *pass) {
	p = &pass{}
	defer func() {
		if r := recover(); r != nil {
			p = &pass{err: tablewatch.Errorf(tablewatch.EINTERNAL, "platform scan failed: %v", r)}
		}
	}()

	parsers := d.parsers
	if legacy {
		parsers = slices.DeleteFunc(slices.Clone(parsers), func(fp tablewatch.FormatParser) bool {
			f := fp.Format()
			return f != tablewatch.FormatMarkup && f != tablewatch.FormatMarkdown
		})
	}

	for _, n := range findCandidates(doc, profile.Scopes(doc), known, legacy) {
		if err := ctx.Err(); err != nil {
			p.err = err
			return p
		}
		p.candidates = append(p.candidates, d.evaluate(n, parsers))
	}

	if legacy {
		filterLegacy(p.candidates, d.threshold)
	} else {
		filterCandidates(p.candidates, known, d.threshold)
	}
	for _, c := range p.candidates {
		if c.Accepted {
			p.accepted = append(p.accepted, c)
		}
	}
	return p
}

// evaluate parses n with the first parser that succeeds and survives repair.
func (d *Detector) evaluate(n tablewatch.Node, parsers []tablewatch.FormatParser) *tablewatch.Candidate {
	c := &tablewatch.Candidate{Node: n, Reason: "no parser matched"}
	for _, fp := range parsers {
		if !fp.CanParse(n) {
			continue
		}
		raw, ok, err := parse(fp, n)
		if err != nil {
			c.Reason = string(fp.Format()) + ": " + tablewatch.ErrorMessage(err)
			continue
		}
		if !ok {
			continue
		}
		c.Format = fp.Format()
		ext, err := tablewatch.Repair(raw, d.repair)
		if err != nil {
			c.Reason = string(fp.Format()) + ": " + tablewatch.ErrorMessage(err)
			continue
		}
		c.Extraction = ext
		c.Confidence = tablewatch.Confidence(ext)
		c.Reason = string(fp.Format()) + " table"
		return c
	}
	return c
}

// parse runs fp on n, turning a panic into an EINTERNAL error so one
// malformed candidate cannot fail the pass.
func parse(fp tablewatch.FormatParser, n tablewatch.Node) (raw *tablewatch.RawTable, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			raw, ok = nil, false
			err = tablewatch.Errorf(tablewatch.EINTERNAL, "parser failed: %v", r)
		}
	}()
	raw, ok = fp.Parse(n)
	return raw, ok, nil
}

func (d *Detector) results(doc tablewatch.Document, report *tablewatch.DetectReport, accepted []*tablewatch.Candidate) []*tablewatch.TableDetectionResult {
	now := d.now()
	out := make([]*tablewatch.TableDetectionResult, 0, len(accepted))
	for _, c := range accepted {
		ext := c.Extraction
		out = append(out, &tablewatch.TableDetectionResult{
			Table: &tablewatch.TableData{
				ID:          ID(c.Node, ext.Headers, ext.Rows),
				Headers:     ext.Headers,
				Rows:        ext.Rows,
				Alignments:  ext.Alignments,
				Format:      ext.Format,
				Confidence:  c.Confidence,
				Platform:    report.Platform,
				ExtractedAt: now,
				URL:         doc.URL(),
				Title:       report.Title,
			},
			Anchor:   c.Node,
			Position: tablewatch.PositionOf(c.Node),
		})
	}
	return out
}

// merge appends legacy results that overlap no standard result.
func merge(standard, legacy []*tablewatch.Candidate) []*tablewatch.Candidate {
	out := slices.Clone(standard)
	for _, l := range legacy {
		if duplicateOf(l, standard, true) == nil {
			out = append(out, l)
		}
	}
	return out
}

func newPassID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
