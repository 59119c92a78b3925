package tablewatch_test

import (
	"testing"

	"github.com/fwojciec/tablewatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTextTable(t *testing.T) {
	t.Parallel()

	t.Run("parses tab separated lines", func(t *testing.T) {
		t.Parallel()

		raw, ok := tablewatch.ParseTextTable("Name\tAge\tCity\nAlice\t30\tParis\nBob\t25\tRome")

		require.True(t, ok)
		assert.Equal(t, tablewatch.FormatText, raw.Format)
		assert.Nil(t, raw.Header)
		assert.Equal(t, [][]string{
			{"Name", "Age", "City"},
			{"Alice", "30", "Paris"},
			{"Bob", "25", "Rome"},
		}, rowTexts(raw.Rows))
		assert.Equal(t, 3, raw.Features.Lines)
		assert.Equal(t, 3, raw.Features.TotalLines)
	})

	t.Run("parses space aligned columns", func(t *testing.T) {
		t.Parallel()

		text := "Product     Price   Stock\nWidget      9.99    120\nGadget      19.50   8"
		raw, ok := tablewatch.ParseTextTable(text)

		require.True(t, ok)
		assert.Equal(t, []string{"Widget", "9.99", "120"}, texts(raw.Rows[1]))
	})

	t.Run("parses pipe lines without markup", func(t *testing.T) {
		t.Parallel()

		raw, ok := tablewatch.ParseTextTable("a | b | c\n1 | 2 | 3")

		require.True(t, ok)
		assert.Equal(t, [][]string{{"a", "b", "c"}, {"1", "2", "3"}}, rowTexts(raw.Rows))
	})

	t.Run("ignores lines with a different column count", func(t *testing.T) {
		t.Parallel()

		text := "Results below:\nName  Score\nAnn   10\nJoe   7\nThat is all."
		raw, ok := tablewatch.ParseTextTable(text)

		require.True(t, ok)
		assert.Len(t, raw.Rows, 3)
		assert.Equal(t, 3, raw.Features.Lines)
		assert.Equal(t, 5, raw.Features.TotalLines)
	})

	t.Run("declines a single qualifying line", func(t *testing.T) {
		t.Parallel()

		_, ok := tablewatch.ParseTextTable("Name  Score\nno columns here")

		assert.False(t, ok)
	})

	t.Run("declines plain prose", func(t *testing.T) {
		t.Parallel()

		_, ok := tablewatch.ParseTextTable("This is a sentence.\nAnd another one.")

		assert.False(t, ok)
	})
}
