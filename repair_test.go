package tablewatch_test

import (
	"testing"

	"github.com/fwojciec/tablewatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandMergedCells(t *testing.T) {
	t.Parallel()

	t.Run("expands colspan into empty cells", func(t *testing.T) {
		t.Parallel()

		got := tablewatch.ExpandMergedCells([]tablewatch.Cell{{Text: "Quarterly results", ColSpan: 3}})

		assert.Equal(t, []string{"Quarterly results", "", ""}, got)
	})

	t.Run("treats missing span as one column", func(t *testing.T) {
		t.Parallel()

		got := tablewatch.ExpandMergedCells([]tablewatch.Cell{{Text: "a"}, {Text: "b", ColSpan: 2}, {Text: "c", ColSpan: 1}})

		assert.Equal(t, []string{"a", "b", "", "c"}, got)
	})
}

func TestRestoreHeaders(t *testing.T) {
	t.Parallel()

	t.Run("promotes a header-like first row", func(t *testing.T) {
		t.Parallel()

		headers, rows := tablewatch.RestoreHeaders(nil, [][]string{{"Name", "Age"}, {"Alice", "30"}})

		assert.Equal(t, []string{"Name", "Age"}, headers)
		assert.Equal(t, [][]string{{"Alice", "30"}}, rows)
	})

	t.Run("generates synthetic headers for numeric first row", func(t *testing.T) {
		t.Parallel()

		headers, rows := tablewatch.RestoreHeaders(nil, [][]string{{"1", "2"}, {"3", "4", "5"}})

		assert.Equal(t, []string{"Column 1", "Column 2", "Column 3"}, headers)
		assert.Len(t, rows, 2)
	})

	t.Run("generates synthetic headers when a cell is empty", func(t *testing.T) {
		t.Parallel()

		headers, _ := tablewatch.RestoreHeaders(nil, [][]string{{"Name", ""}, {"Alice", "30"}})

		assert.Equal(t, []string{"Column 1", "Column 2"}, headers)
	})

	t.Run("generates synthetic headers when a cell is long", func(t *testing.T) {
		t.Parallel()

		long := "This sentence is clearly much too long to be the name of a column"
		headers, _ := tablewatch.RestoreHeaders(nil, [][]string{{"Name", long}, {"Alice", "30"}})

		assert.Equal(t, []string{"Column 1", "Column 2"}, headers)
	})

	t.Run("keeps existing headers", func(t *testing.T) {
		t.Parallel()

		headers, rows := tablewatch.RestoreHeaders([]string{"A", "B"}, [][]string{{"1", "2"}})

		assert.Equal(t, []string{"A", "B"}, headers)
		assert.Equal(t, [][]string{{"1", "2"}}, rows)
	})
}

func TestNormalizeColumns(t *testing.T) {
	t.Parallel()

	t.Run("pads and truncates ragged rows to header width", func(t *testing.T) {
		t.Parallel()

		rows := tablewatch.NormalizeColumns(
			[]string{"ID", "Name", "Email"},
			[][]string{{"1", "John"}, {"2", "Jane", "jane@x.com", "extra"}},
		)

		assert.Equal(t, [][]string{{"1", "John", ""}, {"2", "Jane", "jane@x.com"}}, rows)
	})

	t.Run("uses widest row without headers", func(t *testing.T) {
		t.Parallel()

		rows := tablewatch.NormalizeColumns(nil, [][]string{{"a"}, {"b", "c"}})

		assert.Equal(t, [][]string{{"a", ""}, {"b", "c"}}, rows)
	})
}

func TestValidateTable(t *testing.T) {
	t.Parallel()

	t.Run("drops empty rows and columns", func(t *testing.T) {
		t.Parallel()

		headers, rows, cols, err := tablewatch.ValidateTable(
			[]string{"A", "", "B"},
			[][]string{{"1", "", "2"}, {"", "", ""}, {"3", "", "4"}},
		)

		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, headers)
		assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, rows)
		assert.Equal(t, []int{0, 2}, cols)
	})

	t.Run("keeps columns with an empty header but data", func(t *testing.T) {
		t.Parallel()

		headers, rows, _, err := tablewatch.ValidateTable(
			[]string{"A", "B", ""},
			[][]string{{"1", "2", "note"}},
		)

		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", ""}, headers)
		assert.Equal(t, [][]string{{"1", "2", "note"}}, rows)
	})

	t.Run("rejects fewer than two meaningful headers", func(t *testing.T) {
		t.Parallel()

		_, _, _, err := tablewatch.ValidateTable([]string{"A", "--"}, [][]string{{"1", "2"}})

		assert.Equal(t, tablewatch.EREJECTED, tablewatch.ErrorCode(err))
	})

	t.Run("rejects tables without data rows", func(t *testing.T) {
		t.Parallel()

		_, _, _, err := tablewatch.ValidateTable([]string{"A", "B"}, [][]string{{"", ""}})

		assert.Equal(t, tablewatch.EREJECTED, tablewatch.ErrorCode(err))
		assert.Equal(t, "no data rows", tablewatch.ErrorMessage(err))
	})

	t.Run("rejects symbol-only data", func(t *testing.T) {
		t.Parallel()

		_, _, _, err := tablewatch.ValidateTable([]string{"A", "B"}, [][]string{{"---", "***"}, {"|", "-"}})

		assert.Equal(t, "symbol-only content", tablewatch.ErrorMessage(err))
	})

	t.Run("rejects ragged rows", func(t *testing.T) {
		t.Parallel()

		_, _, _, err := tablewatch.ValidateTable([]string{"A", "B"}, [][]string{{"1"}})

		assert.Equal(t, "ragged rows", tablewatch.ErrorMessage(err))
	})
}

func TestRepair(t *testing.T) {
	t.Parallel()

	t.Run("produces rectangular rows", func(t *testing.T) {
		t.Parallel()

		raw := &tablewatch.RawTable{
			Format: tablewatch.FormatMarkup,
			Header: []tablewatch.Cell{{Text: "ID"}, {Text: "Name"}, {Text: "Email"}},
			Rows: [][]tablewatch.Cell{
				{{Text: "1"}, {Text: "John"}},
				{{Text: "2"}, {Text: "Jane"}, {Text: "jane@x.com"}, {Text: "extra"}},
			},
		}

		ext, err := tablewatch.Repair(raw, tablewatch.DefaultRepairOptions())

		require.NoError(t, err)
		assert.Equal(t, []string{"ID", "Name", "Email"}, ext.Headers)
		assert.Equal(t, [][]string{{"1", "John", ""}, {"2", "Jane", "jane@x.com"}}, ext.Rows)
		for _, row := range ext.Rows {
			assert.Len(t, row, len(ext.Headers))
		}
	})

	t.Run("expands merged header cells before normalizing", func(t *testing.T) {
		t.Parallel()

		raw := &tablewatch.RawTable{
			Format: tablewatch.FormatMarkup,
			Header: []tablewatch.Cell{{Text: "Region", ColSpan: 1}, {Text: "Sales", ColSpan: 2}},
			Rows: [][]tablewatch.Cell{
				{{Text: "EU"}, {Text: "10"}, {Text: "12"}},
			},
		}

		ext, err := tablewatch.Repair(raw, tablewatch.DefaultRepairOptions())

		require.NoError(t, err)
		assert.Equal(t, []string{"Region", "Sales", ""}, ext.Headers)
		assert.Equal(t, [][]string{{"EU", "10", "12"}}, ext.Rows)
	})

	t.Run("restores headers for header-less sources", func(t *testing.T) {
		t.Parallel()

		raw := &tablewatch.RawTable{
			Format: tablewatch.FormatText,
			Rows: [][]tablewatch.Cell{
				{{Text: "City"}, {Text: "Population"}},
				{{Text: "Oslo"}, {Text: "700000"}},
			},
		}

		ext, err := tablewatch.Repair(raw, tablewatch.DefaultRepairOptions())

		require.NoError(t, err)
		assert.Equal(t, []string{"City", "Population"}, ext.Headers)
		assert.Equal(t, [][]string{{"Oslo", "700000"}}, ext.Rows)
	})

	t.Run("drops alignments of removed columns", func(t *testing.T) {
		t.Parallel()

		raw := &tablewatch.RawTable{
			Format:     tablewatch.FormatMarkdown,
			Header:     []tablewatch.Cell{{Text: "A"}, {Text: ""}, {Text: "B"}},
			Rows:       [][]tablewatch.Cell{{{Text: "1"}, {Text: ""}, {Text: "2"}}},
			Alignments: []tablewatch.Alignment{tablewatch.AlignLeft, tablewatch.AlignCenter, tablewatch.AlignRight},
		}

		ext, err := tablewatch.Repair(raw, tablewatch.DefaultRepairOptions())

		require.NoError(t, err)
		assert.Equal(t, []tablewatch.Alignment{tablewatch.AlignLeft, tablewatch.AlignRight}, ext.Alignments)
	})

	t.Run("skips disabled steps", func(t *testing.T) {
		t.Parallel()

		raw := &tablewatch.RawTable{
			Header: []tablewatch.Cell{{Text: "A", ColSpan: 2}},
			Rows:   [][]tablewatch.Cell{{{Text: "1"}}},
		}

		ext, err := tablewatch.Repair(raw, tablewatch.RepairOptions{})

		require.NoError(t, err)
		assert.Equal(t, []string{"A"}, ext.Headers)
		assert.Equal(t, [][]string{{"1"}}, ext.Rows)
	})

	t.Run("rejects nil tables", func(t *testing.T) {
		t.Parallel()

		_, err := tablewatch.Repair(nil, tablewatch.DefaultRepairOptions())

		assert.Equal(t, tablewatch.EREJECTED, tablewatch.ErrorCode(err))
	})
}
