package goquery_test

import (
	"testing"

	"github.com/fwojciec/tablewatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Apply(t *testing.T) {
	t.Parallel()

	t.Run("inserts a fragment under the target", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><div id="chat"></div></body>`)

		m, err := doc.Apply(tablewatch.MutationRecord{
			Op:    tablewatch.OpInsert,
			XPath: "//div[@id='chat']",
			HTML:  `<table><tr><td>a</td></tr></table><p>note</p>`,
		})

		require.NoError(t, err)
		require.Len(t, m.Added, 2)
		assert.Equal(t, "table", m.Added[0].Tag())
		assert.True(t, m.Added[0].Attached())
		assert.Equal(t, first(t, doc, "#chat"), m.Target)
		assert.Len(t, doc.Find("#chat table"), 1)
	})

	t.Run("detaches removed nodes", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><div><table id="t"></table></div></body>`)
		table := first(t, doc, "#t")

		m, err := doc.Apply(tablewatch.MutationRecord{Op: tablewatch.OpRemove, XPath: "/html/body/div/table"})

		require.NoError(t, err)
		assert.Equal(t, []tablewatch.Node{table}, m.Removed)
		assert.Equal(t, "div", m.Target.Tag())
		assert.False(t, table.Attached())
		assert.Empty(t, doc.Find("#t"))
	})

	t.Run("replaces text content", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><pre id="p"><b>old</b></pre></body>`)
		b := first(t, doc, "b")

		m, err := doc.Apply(tablewatch.MutationRecord{Op: tablewatch.OpText, XPath: "//pre", Value: "| a | b |"})

		require.NoError(t, err)
		assert.Equal(t, []tablewatch.Node{b}, m.Removed)
		assert.Equal(t, "| a | b |", first(t, doc, "#p").Text())
	})

	t.Run("sets and deletes attributes", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><div id="d"></div></body>`)
		div := first(t, doc, "#d")

		_, err := doc.Apply(tablewatch.MutationRecord{Op: tablewatch.OpAttr, XPath: "//div", Name: "hidden", Value: ""})
		require.NoError(t, err)
		assert.False(t, div.Visible())

		_, err = doc.Apply(tablewatch.MutationRecord{Op: tablewatch.OpAttrDel, XPath: "//div", Name: "hidden"})
		require.NoError(t, err)
		assert.True(t, div.Visible())
	})

	t.Run("replaces the whole document on reset", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><table id="old"></table></body>`)
		old := first(t, doc, "#old")

		m, err := doc.Apply(tablewatch.MutationRecord{Op: tablewatch.OpDocReset, HTML: `<body><table id="new"></table></body>`})

		require.NoError(t, err)
		assert.Equal(t, tablewatch.OpDocReset, m.Op)
		assert.False(t, old.Attached())
		assert.True(t, first(t, doc, "#new").Attached())
	})

	t.Run("returns not found for unmatched xpath", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body></body>`)

		_, err := doc.Apply(tablewatch.MutationRecord{Op: tablewatch.OpRemove, XPath: "//table"})

		assert.Equal(t, tablewatch.ENOTFOUND, tablewatch.ErrorCode(err))
	})

	t.Run("returns invalid for malformed records", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><div></div></body>`)

		_, err := doc.Apply(tablewatch.MutationRecord{Op: tablewatch.OpRemove, XPath: "//div[("})
		assert.Equal(t, tablewatch.EINVALID, tablewatch.ErrorCode(err))

		_, err = doc.Apply(tablewatch.MutationRecord{Op: tablewatch.OpInsert})
		assert.Equal(t, tablewatch.EINVALID, tablewatch.ErrorCode(err))

		_, err = doc.Apply(tablewatch.MutationRecord{Op: "move", XPath: "//div"})
		assert.Equal(t, tablewatch.EINVALID, tablewatch.ErrorCode(err))
	})
}
