package detect

import (
	"strings"

	"github.com/fwojciec/tablewatch"
)

var _ tablewatch.FormatParser = (*MarkdownParser)(nil)

// MinPipeLineRatio is the share of a node's lines that must be pipe lines
// for a table without an alignment separator to be read as markdown.
// Sparser pipe text is left to the free-text parser, which scores by ratio.
const MinPipeLineRatio = 0.5

// MarkdownParser parses pipe tables rendered as text, typically inside
// <pre>, <code> or <p> elements.
type MarkdownParser struct{}

// NewMarkdownParser creates a new MarkdownParser.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

// Format returns tablewatch.FormatMarkdown.
func (p *MarkdownParser) Format() tablewatch.Format {
	return tablewatch.FormatMarkdown
}

// CanParse reports whether the node's text looks like a pipe table.
func (p *MarkdownParser) CanParse(n tablewatch.Node) bool {
	return n.Tag() != "table" && tablewatch.LooksLikePipeTable(n.InnerText())
}

// Parse reads the node's rendered text as a markdown table.
func (p *MarkdownParser) Parse(n tablewatch.Node) (*tablewatch.RawTable, bool) {
	if !p.CanParse(n) {
		return nil, false
	}
	t, ok := tablewatch.ParseMarkdownTable(n.InnerText())
	if !ok || len(t.Rows) == 0 {
		return nil, false
	}
	if !t.HasSeparator && tablewatch.LineRatio(t.Features) < MinPipeLineRatio {
		return nil, false
	}
	return t, true
}

var _ tablewatch.FormatParser = (*TextParser)(nil)

// TextParser parses plain-text tables: pipe-delimited lines without
// markdown structure, or columns aligned with tabs or runs of spaces.
type TextParser struct{}

// NewTextParser creates a new TextParser.
func NewTextParser() *TextParser {
	return &TextParser{}
}

// Format returns tablewatch.FormatText.
func (p *TextParser) Format() tablewatch.Format {
	return tablewatch.FormatText
}

// CanParse reports whether the node has at least two lines of text.
func (p *TextParser) CanParse(n tablewatch.Node) bool {
	if n.Tag() == "table" {
		return false
	}
	return strings.Count(strings.TrimSpace(n.InnerText()), "\n")+1 >= tablewatch.MinTextLines
}

// Parse reads the node's rendered text as a plain-text table. Nodes with a
// table-like class name get a scoring bonus.
func (p *TextParser) Parse(n tablewatch.Node) (*tablewatch.RawTable, bool) {
	if !p.CanParse(n) {
		return nil, false
	}
	t, ok := tablewatch.ParseTextTable(n.InnerText())
	if !ok {
		return nil, false
	}
	t.Features.ClassHint = tablewatch.HasClassFragment(n, "table", "tabular", "grid", "data", "csv")
	return t, true
}
