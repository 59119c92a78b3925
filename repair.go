package tablewatch

import (
	"strconv"
	"strings"
)

// RepairOptions toggles the structure repair steps. Steps run in field order.
type RepairOptions struct {
	ExpandMergedCells bool
	RestoreHeaders    bool
	NormalizeColumns  bool
	Validate          bool
}

// DefaultRepairOptions enables every repair step.
func DefaultRepairOptions() RepairOptions {
	return RepairOptions{
		ExpandMergedCells: true,
		RestoreHeaders:    true,
		NormalizeColumns:  true,
		Validate:          true,
	}
}

// MaxHeaderCellLength is the length from which a first-row cell is
// considered data rather than a column name.
const MaxHeaderCellLength = 50

// MaxColSpan bounds colspan values read from markup.
const MaxColSpan = 1000

// ExpandMergedCells expands every cell spanning N columns into N cells: the
// original content followed by N-1 empty cells.
func ExpandMergedCells(cells []Cell) []string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, c.Text)
		span := min(max(c.ColSpan, 1), MaxColSpan)
		for i := 1; i < span; i++ {
			out = append(out, "")
		}
	}
	return out
}

func cellTexts(cells []Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Text
	}
	return out
}

// RestoreHeaders returns the header to use for a table that has none. The
// first row is promoted when every cell is non-empty, shorter than
// MaxHeaderCellLength and not purely numeric; otherwise synthetic headers
// "Column 1".."Column N" are generated for the widest row. Existing headers
// are returned unchanged.
func RestoreHeaders(headers []string, rows [][]string) ([]string, [][]string) {
	if len(headers) > 0 || len(rows) == 0 {
		return headers, rows
	}
	if isHeaderLike(rows[0]) {
		return rows[0], rows[1:]
	}
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	synthetic := make([]string, width)
	for i := range synthetic {
		synthetic[i] = "Column " + strconv.Itoa(i+1)
	}
	return synthetic, rows
}

func isHeaderLike(row []string) bool {
	if len(row) == 0 {
		return false
	}
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" || len([]rune(cell)) >= MaxHeaderCellLength || IsNumeric(cell) {
			return false
		}
	}
	return true
}

// NormalizeColumns pads short rows with empty cells and truncates long rows
// to the header width, or to the widest row when there is no header.
func NormalizeColumns(headers []string, rows [][]string) [][]string {
	width := len(headers)
	if width == 0 {
		for _, row := range rows {
			width = max(width, len(row))
		}
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		switch {
		case len(row) > width:
			out[i] = row[:width]
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			out[i] = padded
		default:
			out[i] = row
		}
	}
	return out
}

// ValidateTable drops empty rows and empty columns, then rejects tables
// with fewer than two meaningful headers, no data rows, ragged rows or
// symbol-only data. Rejections carry the EREJECTED code.
//
// The returned column indexes map kept columns to their original position.
func ValidateTable(headers []string, rows [][]string) ([]string, [][]string, []int, error) {
	if len(headers) == 0 {
		return nil, nil, nil, Errorf(EREJECTED, "no headers")
	}
	for _, row := range rows {
		if len(row) != len(headers) {
			return nil, nil, nil, Errorf(EREJECTED, "ragged rows")
		}
	}

	kept := rows[:0:0]
	for _, row := range rows {
		if !isBlankRow(row) {
			kept = append(kept, row)
		}
	}
	rows = kept

	var cols []int
	for c := range headers {
		if strings.TrimSpace(headers[c]) != "" {
			cols = append(cols, c)
			continue
		}
		for _, row := range rows {
			if strings.TrimSpace(row[c]) != "" {
				cols = append(cols, c)
				break
			}
		}
	}
	headers = pick(headers, cols)
	for i, row := range rows {
		rows[i] = pick(row, cols)
	}

	if countMeaningful(headers) < 2 {
		return nil, nil, nil, Errorf(EREJECTED, "fewer than 2 meaningful headers")
	}
	if len(rows) == 0 {
		return nil, nil, nil, Errorf(EREJECTED, "no data rows")
	}
	if symbolOnly(rows) {
		return nil, nil, nil, Errorf(EREJECTED, "symbol-only content")
	}
	return headers, rows, cols, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func symbolOnly(rows [][]string) bool {
	for _, row := range rows {
		for _, c := range row {
			if IsMeaningful(c) {
				return false
			}
		}
	}
	return true
}

func pick[T any](s []T, idx []int) []T {
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = s[j]
	}
	return out
}

// Repair runs the enabled repair steps over a raw table.
// Returns an EREJECTED error when validation fails.
func Repair(raw *RawTable, opts RepairOptions) (*Extraction, error) {
	if raw == nil {
		return nil, Errorf(EREJECTED, "no table")
	}

	flatten := cellTexts
	if opts.ExpandMergedCells {
		flatten = ExpandMergedCells
	}

	var headers []string
	if len(raw.Header) > 0 {
		headers = flatten(raw.Header)
	}
	rows := make([][]string, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		rows = append(rows, flatten(row))
	}

	if opts.RestoreHeaders {
		headers, rows = RestoreHeaders(headers, rows)
	}
	if opts.NormalizeColumns {
		rows = NormalizeColumns(headers, rows)
	}

	var aligns []Alignment
	if len(raw.Alignments) > 0 {
		aligns = fitAlignments(append([]Alignment(nil), raw.Alignments...), len(headers))
	}
	if opts.Validate {
		var cols []int
		var err error
		headers, rows, cols, err = ValidateTable(headers, rows)
		if err != nil {
			return nil, err
		}
		if aligns != nil {
			aligns = pick(aligns, cols)
		}
	}

	return &Extraction{
		Format:       raw.Format,
		Headers:      headers,
		Rows:         rows,
		Alignments:   aligns,
		HasSeparator: raw.HasSeparator,
		Features:     raw.Features,
	}, nil
}
