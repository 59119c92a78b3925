package tablewatch_test

import (
	"testing"

	"github.com/fwojciec/tablewatch"
	"github.com/stretchr/testify/assert"
)

func TestFormatTables(t *testing.T) {
	t.Parallel()

	t.Run("formats single table with title", func(t *testing.T) {
		t.Parallel()

		results := []*tablewatch.TableDetectionResult{
			{Table: &tablewatch.TableData{
				ID:       "tbl-1",
				Title:    "Pricing comparison",
				Platform: tablewatch.PlatformChatGPT,
				Format:   tablewatch.FormatMarkup,
				Headers:  []string{"Plan", "Price"},
				Rows:     [][]string{{"Free", "$0"}, {"Pro", "$20"}},
			}},
		}

		result := tablewatch.FormatTables(results)

		expected := "## Table: Pricing comparison (chatgpt, markup)\n| Plan | Price |\n| --- | --- |\n| Free | $0 |\n| Pro | $20 |"
		assert.Equal(t, expected, result)
	})

	t.Run("uses table ID when title is empty", func(t *testing.T) {
		t.Parallel()

		results := []*tablewatch.TableDetectionResult{
			{Table: &tablewatch.TableData{
				ID:       "tbl-abc",
				Platform: tablewatch.PlatformGeneric,
				Format:   tablewatch.FormatText,
				Headers:  []string{"A", "B"},
				Rows:     [][]string{{"1", "2"}},
			}},
		}

		result := tablewatch.FormatTables(results)

		assert.Contains(t, result, "## Table: tbl-abc (generic, text)")
	})

	t.Run("renders declared alignments in the separator", func(t *testing.T) {
		t.Parallel()

		results := []*tablewatch.TableDetectionResult{
			{Table: &tablewatch.TableData{
				ID:         "tbl-1",
				Format:     tablewatch.FormatMarkdown,
				Headers:    []string{"Left", "Center", "Right"},
				Alignments: []tablewatch.Alignment{tablewatch.AlignLeft, tablewatch.AlignCenter, tablewatch.AlignRight},
				Rows:       [][]string{{"a", "b", "c"}},
			}},
		}

		result := tablewatch.FormatTables(results)

		assert.Contains(t, result, "| :--- | :---: | ---: |")
	})

	t.Run("escapes pipes inside cells", func(t *testing.T) {
		t.Parallel()

		results := []*tablewatch.TableDetectionResult{
			{Table: &tablewatch.TableData{
				ID:      "tbl-1",
				Headers: []string{"Expr", "Meaning"},
				Rows:    [][]string{{"a|b", "a or b"}},
			}},
		}

		result := tablewatch.FormatTables(results)

		assert.Contains(t, result, `| a\|b | a or b |`)
	})

	t.Run("separates multiple tables with blank line", func(t *testing.T) {
		t.Parallel()

		results := []*tablewatch.TableDetectionResult{
			{Table: &tablewatch.TableData{ID: "one", Headers: []string{"A", "B"}}},
			{Table: &tablewatch.TableData{ID: "two", Headers: []string{"C", "D"}}},
		}

		result := tablewatch.FormatTables(results)

		assert.Contains(t, result, "| --- | --- |\n\n## Table: two")
	})

	t.Run("returns empty string for nil slice", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, tablewatch.FormatTables(nil))
	})
}
