package tablewatch

import (
	"fmt"
	"strings"
)

// FormatTables renders detection results as markdown tables for display.
// Each table is introduced by a heading naming the conversation title (or
// the table ID when there is none), the platform and the source format.
// Tables are separated by blank lines.
func FormatTables(results []*TableDetectionResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		if r == nil || r.Table == nil {
			continue
		}
		parts = append(parts, formatTable(r.Table))
	}

	return strings.Join(parts, "\n\n")
}

func formatTable(t *TableData) string {
	header := t.Title
	if header == "" {
		header = t.ID
	}

	sep := make([]string, len(t.Headers))
	for i := range sep {
		sep[i] = separatorCell(t.Alignments, i)
	}

	lines := make([]string, 0, len(t.Rows)+3)
	lines = append(lines,
		fmt.Sprintf("## Table: %s (%s, %s)", header, t.Platform, t.Format),
		formatRow(t.Headers),
		"| "+strings.Join(sep, " | ")+" |",
	)
	for _, row := range t.Rows {
		lines = append(lines, formatRow(row))
	}
	return strings.Join(lines, "\n")
}

func formatRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return "| " + strings.Join(escaped, " | ") + " |"
}

func separatorCell(aligns []Alignment, i int) string {
	if i >= len(aligns) {
		return "---"
	}
	switch aligns[i] {
	case AlignLeft:
		return ":---"
	case AlignCenter:
		return ":---:"
	case AlignRight:
		return "---:"
	}
	return "---"
}
