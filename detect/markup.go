package detect

import (
	"strconv"

	"github.com/fwojciec/tablewatch"
)

var _ tablewatch.FormatParser = (*MarkupParser)(nil)

// MarkupParser parses <table> elements.
type MarkupParser struct{}

// NewMarkupParser creates a new MarkupParser.
func NewMarkupParser() *MarkupParser {
	return &MarkupParser{}
}

// Format returns tablewatch.FormatMarkup.
func (p *MarkupParser) Format() tablewatch.Format {
	return tablewatch.FormatMarkup
}

// CanParse reports whether n is a <table>.
func (p *MarkupParser) CanParse(n tablewatch.Node) bool {
	return n.Tag() == "table"
}

// Parse reads the table's own rows, ignoring nested tables. The first
// <thead> row is the header; without one the first row is promoted.
// Rowspans are filled with empty cells in the rows they cover.
func (p *MarkupParser) Parse(n tablewatch.Node) (*tablewatch.RawTable, bool) {
	if !p.CanParse(n) {
		return nil, false
	}

	var head, body []tablewatch.Node
	collectRows(n, false, &head, &body)
	if len(head) == 0 && len(body) == 0 {
		return nil, false
	}

	spans := make(map[int]int)
	t := &tablewatch.RawTable{Format: tablewatch.FormatMarkup}
	var rows [][]tablewatch.Cell
	if len(head) > 0 {
		// Only the first header row names columns.
		t.Header = readRow(head[0], spans)
		clear(spans)
	}
	for _, tr := range body {
		rows = append(rows, readRow(tr, spans))
	}
	if len(t.Header) == 0 {
		if len(rows) == 0 {
			return nil, false
		}
		t.Header, rows = rows[0], rows[1:]
	}
	t.Rows = rows
	return t, true
}

// collectRows gathers <tr> elements owned by the table, descending into
// row groups but not into nested tables.
func collectRows(n tablewatch.Node, inHead bool, head, body *[]tablewatch.Node) {
	for _, c := range n.Children() {
		switch c.Tag() {
		case "tr":
			if inHead {
				*head = append(*head, c)
			} else {
				*body = append(*body, c)
			}
		case "thead":
			collectRows(c, true, head, body)
		case "tbody", "tfoot":
			collectRows(c, false, head, body)
		}
	}
}

// readRow reads a row's cells. spans maps column positions to the number
// of following rows still covered by a rowspan above; it is updated in place.
func readRow(tr tablewatch.Node, spans map[int]int) []tablewatch.Cell {
	var cells []tablewatch.Cell
	col := 0
	fill := func() {
		for spans[col] > 0 {
			spans[col]--
			cells = append(cells, tablewatch.Cell{ColSpan: 1})
			col++
		}
	}

	for _, td := range tr.Children() {
		if tag := td.Tag(); tag != "td" && tag != "th" {
			continue
		}
		fill()
		colspan := spanAttr(td, "colspan")
		cells = append(cells, tablewatch.Cell{
			Text:    tablewatch.NormalizeText(td.InnerText()),
			ColSpan: colspan,
		})
		if rowspan := spanAttr(td, "rowspan"); rowspan > 1 {
			for k := col; k < col+colspan; k++ {
				spans[k] = rowspan - 1
			}
		}
		col += colspan
	}
	fill()
	return cells
}

func spanAttr(n tablewatch.Node, name string) int {
	v, ok := n.Attr(name)
	if !ok {
		return 1
	}
	span, err := strconv.Atoi(v)
	if err != nil || span < 1 {
		return 1
	}
	return min(span, tablewatch.MaxColSpan)
}
