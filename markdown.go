package tablewatch

import (
	"regexp"
	"strings"
)

var separatorRe = regexp.MustCompile(`^\s*\|?\s*:?-+:?\s*(\|\s*:?-+:?\s*)*\|?\s*$`)

// IsSeparatorLine reports whether the line is a markdown alignment
// separator, made only of '-', ':', '|' and spaces with at least one dash.
func IsSeparatorLine(line string) bool {
	return strings.Contains(line, "-") && separatorRe.MatchString(line)
}

// SplitPipeRow splits a pipe-delimited line into trimmed cells. Leading and
// trailing pipes are optional and escaped pipes (\|) stay inside cells.
func SplitPipeRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`) {
		line = line[:len(line)-1]
	}

	var cells []string
	var cur strings.Builder
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '\\' && i+1 < len(line) && line[i+1] == '|':
			cur.WriteByte('|')
			i++
		case line[i] == '|':
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(line[i])
		}
	}
	cells = append(cells, strings.TrimSpace(cur.String()))
	return cells
}

func parseAlignments(line string) []Alignment {
	parts := SplitPipeRow(line)
	aligns := make([]Alignment, len(parts))
	for i, p := range parts {
		left := strings.HasPrefix(p, ":")
		right := strings.HasSuffix(p, ":")
		switch {
		case left && right:
			aligns[i] = AlignCenter
		case right:
			aligns[i] = AlignRight
		case left:
			aligns[i] = AlignLeft
		default:
			aligns[i] = AlignNone
		}
	}
	return aligns
}

// ParseMarkdownTable parses a pipe table. The first pipe line is the
// header; an alignment separator directly after it is recorded and skipped;
// every later pipe line is a data row. Cells are stripped of inline
// markdown and rows are fitted to the header width.
//
// The bool result is false when the text has no header with at least two
// cells.
func ParseMarkdownTable(text string) (*RawTable, bool) {
	lines := Lines(text)

	start := -1
	for i, line := range lines {
		if strings.Contains(line, "|") && !IsSeparatorLine(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, false
	}

	header := markdownCells(SplitPipeRow(lines[start]))
	if len(header) < 2 {
		return nil, false
	}

	t := &RawTable{
		Format: FormatMarkdown,
		Header: header,
	}

	rest := lines[start+1:]
	if len(rest) > 0 && IsSeparatorLine(rest[0]) {
		t.HasSeparator = true
		t.Alignments = fitAlignments(parseAlignments(rest[0]), len(header))
		rest = rest[1:]
	}

	pipeLines := 1
	for _, line := range rest {
		if !strings.Contains(line, "|") {
			continue
		}
		pipeLines++
		if IsSeparatorLine(line) {
			continue
		}
		t.Rows = append(t.Rows, fitCells(markdownCells(SplitPipeRow(line)), len(header)))
	}

	t.Features = Features{Lines: pipeLines, TotalLines: len(lines)}
	return t, true
}

func markdownCells(parts []string) []Cell {
	cells := make([]Cell, len(parts))
	for i, p := range parts {
		cells[i] = Cell{Text: StripMarkdown(p), ColSpan: 1}
	}
	return cells
}

// fitCells pads with empty cells or truncates to n cells.
func fitCells(cells []Cell, n int) []Cell {
	if len(cells) > n {
		return cells[:n]
	}
	for len(cells) < n {
		cells = append(cells, Cell{ColSpan: 1})
	}
	return cells
}

func fitAlignments(aligns []Alignment, n int) []Alignment {
	if len(aligns) > n {
		return aligns[:n]
	}
	for len(aligns) < n {
		aligns = append(aligns, AlignNone)
	}
	return aligns
}
