package detect

import (
	"slices"

	"github.com/fwojciec/tablewatch"
)

var _ tablewatch.FormatParser = (*DivGridParser)(nil)

// Column bounds and cell size limit for grids built from generic elements.
const (
	MinGridColumns    = 2
	MaxGridColumns    = 10
	MaxGridCellLength = 200
)

var (
	gridRoles = []string{"table", "grid", "treegrid"}
	cellRoles = []string{"cell", "gridcell", "columnheader", "rowheader"}

	// Leaf-ish cells hold inline content only.
	blockContent = "p, ul, ol, pre, table, blockquote, h1, h2, h3, h4, h5, h6"
)

// DivGridParser parses tables built from generic elements: ARIA table
// roles, *table*/*row*/*cell* class conventions, or repeated sibling rows
// with the same number of children.
type DivGridParser struct{}

// NewDivGridParser creates a new DivGridParser.
func NewDivGridParser() *DivGridParser {
	return &DivGridParser{}
}

// Format returns tablewatch.FormatDivGrid.
func (p *DivGridParser) Format() tablewatch.Format {
	return tablewatch.FormatDivGrid
}

// CanParse reports whether n is a role or class grid, or has repetitive rows.
func (p *DivGridParser) CanParse(n tablewatch.Node) bool {
	switch n.Tag() {
	case "table", "thead", "tbody", "tr", "td", "th", "pre", "code":
		return false
	}
	return isRoleGrid(n) || len(classRows(n)) > 0 || structuralRows(n) != nil
}

// Parse reads the grid. The first row, or the row of column headers for
// role grids, becomes the header.
func (p *DivGridParser) Parse(n tablewatch.Node) (*tablewatch.RawTable, bool) {
	if !p.CanParse(n) {
		return nil, false
	}

	var rows [][]tablewatch.Node
	var headerIdx int
	roleGrid := true
	switch {
	case isRoleGrid(n):
		for _, row := range roleRows(n) {
			rows = append(rows, roleCells(row))
		}
		headerIdx = slices.IndexFunc(rows, func(cells []tablewatch.Node) bool {
			return len(cells) > 0 && role(cells[0]) == "columnheader"
		})
	case len(classRows(n)) > 0:
		for _, row := range classRows(n) {
			rows = append(rows, row.Children())
		}
		headerIdx = slices.IndexFunc(classRows(n), func(row tablewatch.Node) bool {
			return tablewatch.HasClassFragment(row, "header", "head")
		})
	default:
		roleGrid = false
		for _, row := range structuralRows(n) {
			rows = append(rows, row.Children())
		}
	}
	if headerIdx < 0 {
		headerIdx = 0
	}
	if len(rows) < 2 {
		return nil, false
	}

	width := len(rows[headerIdx])
	if width < MinGridColumns || width > MaxGridColumns {
		return nil, false
	}

	t := &tablewatch.RawTable{
		Format:   tablewatch.FormatDivGrid,
		Features: tablewatch.Features{RoleGrid: roleGrid},
	}
	for i, row := range rows {
		cells := make([]tablewatch.Cell, 0, len(row))
		for _, c := range row {
			cells = append(cells, tablewatch.Cell{Text: tablewatch.NormalizeText(c.InnerText()), ColSpan: 1})
		}
		switch {
		case i == headerIdx:
			t.Header = cells
		case i > headerIdx:
			t.Rows = append(t.Rows, cells)
		}
	}
	return t, true
}

func role(n tablewatch.Node) string {
	r, _ := n.Attr("role")
	return r
}

func isRoleGrid(n tablewatch.Node) bool {
	return slices.Contains(gridRoles, role(n))
}

// roleRows returns the role=row descendants that belong to n rather than to
// a nested grid.
func roleRows(n tablewatch.Node) []tablewatch.Node {
	var rows []tablewatch.Node
	for _, row := range n.Find("[role='row']") {
		if ownedBy(row, n, isRoleGrid) {
			rows = append(rows, row)
		}
	}
	return rows
}

func roleCells(row tablewatch.Node) []tablewatch.Node {
	var cells []tablewatch.Node
	for _, c := range row.Children() {
		if slices.Contains(cellRoles, role(c)) {
			cells = append(cells, c)
		}
	}
	if len(cells) == 0 {
		return row.Children()
	}
	return cells
}

// ownedBy reports whether no element between n and root satisfies stop.
func ownedBy(n, root tablewatch.Node, stop func(tablewatch.Node) bool) bool {
	for p := n.Parent(); p != nil && p != root; p = p.Parent() {
		if stop(p) {
			return false
		}
	}
	return true
}

// classRows returns the rows of a grid marked by *table* or *grid* class
// names whose rows carry *row* class names. Rows nested inside other rows
// are ignored.
func classRows(n tablewatch.Node) []tablewatch.Node {
	if !tablewatch.HasClassFragment(n, "table", "grid") {
		return nil
	}
	candidates := n.Find("[class*='row'], [class*='Row']")
	var rows []tablewatch.Node
	for _, row := range candidates {
		if !tablewatch.HasClassFragment(row, "row") || len(row.Children()) == 0 {
			continue
		}
		if !ownedBy(row, n, func(p tablewatch.Node) bool { return slices.Contains(candidates, p) }) {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) < 2 {
		return nil
	}
	return rows
}

// structuralRows returns the children of n that share the most common
// child count, when at least two do and the count is within the grid
// column bounds. Rows must share a tag and hold leaf-ish cells.
func structuralRows(n tablewatch.Node) []tablewatch.Node {
	children := n.Children()
	if len(children) < 2 {
		return nil
	}

	counts := make(map[int]int)
	for _, c := range children {
		counts[len(c.Children())]++
	}
	width, best := 0, 0
	for w, c := range counts {
		if c > best || (c == best && w > width) {
			width, best = w, c
		}
	}
	if best < 2 || width < MinGridColumns || width > MaxGridColumns {
		return nil
	}

	var rows []tablewatch.Node
	for _, c := range children {
		if len(c.Children()) != width {
			continue
		}
		if len(rows) > 0 && c.Tag() != rows[0].Tag() {
			return nil
		}
		for _, cell := range c.Children() {
			if !leafCell(cell) {
				return nil
			}
		}
		rows = append(rows, c)
	}
	return rows
}

func leafCell(n tablewatch.Node) bool {
	switch n.Tag() {
	case "p", "ul", "ol", "pre", "table", "blockquote", "h1", "h2", "h3", "h4", "h5", "h6":
		return false
	}
	if len([]rune(n.InnerText())) > MaxGridCellLength {
		return false
	}
	return len(n.Find(blockContent)) == 0
}
