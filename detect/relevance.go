package detect

import "github.com/fwojciec/tablewatch"

const tableBearing = "table, pre, code"

// IsRelevant reports whether a mutation may change the set of tables on
// the page. Mutations inside the engine's UI never are. Relevant mutations:
//   - document resets;
//   - inserted or removed tables and code blocks, or subtrees holding them;
//   - inserted elements whose text looks like a pipe table;
//   - text changes in code blocks and table cells, or to pipe-table text;
//   - attribute changes on elements holding a table (visibility toggles).
func IsRelevant(m *tablewatch.Mutation) bool {
	if m == nil {
		return false
	}
	if m.Op == tablewatch.OpDocReset {
		return true
	}
	if m.Target != nil && tablewatch.IsEngineUI(m.Target) {
		return false
	}

	switch m.Op {
	case tablewatch.OpInsert:
		for _, n := range m.Added {
			if tablewatch.IsEngineUI(n) {
				continue
			}
			if holdsTable(n) || tablewatch.LooksLikePipeTable(n.InnerText()) {
				return true
			}
		}
	case tablewatch.OpRemove:
		for _, n := range m.Removed {
			if holdsTable(n) {
				return true
			}
		}
	case tablewatch.OpText:
		if m.Target == nil {
			return false
		}
		switch m.Target.Tag() {
		case "pre", "code", "td", "th":
			return true
		}
		return tablewatch.LooksLikePipeTable(m.Target.InnerText())
	case tablewatch.OpAttr, tablewatch.OpAttrDel:
		return m.Target != nil && holdsTable(m.Target)
	}
	return false
}

func holdsTable(n tablewatch.Node) bool {
	switch n.Tag() {
	case "table", "pre", "code":
		return true
	}
	return len(n.Find(tableBearing)) > 0
}
