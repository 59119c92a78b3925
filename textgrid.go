package tablewatch

import (
	"regexp"
	"strings"
)

var alignedSplitRe = regexp.MustCompile(`\t+|\s{2,}`)

// MinTextLines and MinTextColumns are the smallest plain-text table accepted.
const (
	MinTextLines   = 2
	MinTextColumns = 2
)

// ParseTextTable parses a plain-text table in one of two shapes: lines
// delimited by pipes without surrounding markup, or columns separated by
// tabs or runs of two or more spaces.
//
// The returned table has no header; header restoration decides whether the
// first line is one. The bool result is false unless at least MinTextLines
// lines share MinTextColumns or more columns.
func ParseTextTable(text string) (*RawTable, bool) {
	lines := Lines(text)
	if len(lines) < MinTextLines {
		return nil, false
	}

	if t, ok := parsePipeLines(lines); ok {
		return t, true
	}
	return parseAlignedLines(lines)
}

func parsePipeLines(lines []string) (*RawTable, bool) {
	var rows [][]string
	width := 0
	for _, line := range lines {
		if !strings.Contains(line, "|") || IsSeparatorLine(line) {
			continue
		}
		cells := SplitPipeRow(line)
		if len(cells) < MinTextColumns {
			continue
		}
		rows = append(rows, cells)
		width = max(width, len(cells))
	}
	if len(rows) < MinTextLines {
		return nil, false
	}
	return newTextTable(rows, width, len(lines)), true
}

func parseAlignedLines(lines []string) (*RawTable, bool) {
	split := make([][]string, len(lines))
	counts := make(map[int]int)
	for i, line := range lines {
		cells := alignedSplitRe.Split(strings.TrimSpace(line), -1)
		split[i] = cells
		if len(cells) >= MinTextColumns {
			counts[len(cells)]++
		}
	}

	// The dominant column count wins; ties go to the wider layout.
	width, best := 0, 0
	for n, c := range counts {
		if c > best || (c == best && n > width) {
			width, best = n, c
		}
	}
	if best < MinTextLines {
		return nil, false
	}

	var rows [][]string
	for _, cells := range split {
		if len(cells) == width {
			rows = append(rows, cells)
		}
	}
	return newTextTable(rows, width, len(lines)), true
}

func newTextTable(rows [][]string, width, totalLines int) *RawTable {
	t := &RawTable{
		Format:   FormatText,
		Features: Features{Lines: len(rows), TotalLines: totalLines},
	}
	for _, row := range rows {
		cells := make([]Cell, len(row))
		for i, c := range row {
			cells[i] = Cell{Text: StripMarkdown(c), ColSpan: 1}
		}
		t.Rows = append(t.Rows, fitCells(cells, width))
	}
	return t
}
