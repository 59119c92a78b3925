package detect

import (
	"regexp"

	"github.com/fwojciec/tablewatch"
)

var alignedLineRe = regexp.MustCompile(`\S(\t+|\s{2,})\S`)

// finder collects candidate nodes for one pass.
type finder struct {
	legacy bool
	known  []tablewatch.Node

	seen  map[tablewatch.Node]bool
	nodes []tablewatch.Node
}

// findCandidates searches the scopes for markup tables, preformatted and
// code blocks, and (unless legacy) div grids and text blocks with pipe or
// alignment patterns, in that order. When the scopes yield nothing the whole
// document is searched for markup tables, then for code blocks holding pipe
// tables. Candidates at or inside a known anchor are skipped.
func findCandidates(doc tablewatch.Document, scopes []tablewatch.Node, known []tablewatch.Node, legacy bool) []tablewatch.Node {
	f := &finder{
		legacy: legacy,
		known:  known,
		seen:   make(map[tablewatch.Node]bool),
	}

	f.collect(scopes, "table", isTag("table"))
	f.collect(scopes, "pre, code", codeBlock)
	if !legacy {
		f.collect(scopes, "[role='table'], [role='grid'], [class*='table'], [class*='grid'], div, section, ul, ol", gridLike)
		f.collect(scopes, "p, div", textTable)
	}
	if len(f.nodes) > 0 {
		return f.nodes
	}

	root := doc.Root()
	if root == nil {
		return nil
	}
	f.collect([]tablewatch.Node{root}, "table", isTag("table"))
	if len(f.nodes) == 0 {
		f.collect([]tablewatch.Node{root}, "pre, code", func(n tablewatch.Node) bool {
			return codeBlock(n) && tablewatch.LooksLikePipeTable(n.InnerText())
		})
	}
	return f.nodes
}

// collect adds the scopes themselves and their descendants that match the
// selector and accept.
func (f *finder) collect(scopes []tablewatch.Node, selector string, accept func(tablewatch.Node) bool) {
	for _, scope := range scopes {
		if accept(scope) {
			f.add(scope)
		}
		for _, n := range scope.Find(selector) {
			if accept(n) {
				f.add(n)
			}
		}
	}
}

func (f *finder) add(n tablewatch.Node) {
	if f.seen[n] || !n.Visible() || tablewatch.IsEngineUI(n) {
		return
	}
	for _, k := range f.known {
		if k.Contains(n) {
			return
		}
	}
	f.seen[n] = true
	f.nodes = append(f.nodes, n)
}

func isTag(tag string) func(tablewatch.Node) bool {
	return func(n tablewatch.Node) bool { return n.Tag() == tag }
}

// codeBlock accepts <pre> and <code> elements, skipping <code> inside
// <pre> since the <pre> already carries the same text.
func codeBlock(n tablewatch.Node) bool {
	switch n.Tag() {
	case "pre":
		return true
	case "code":
		p := n.Parent()
		return p == nil || p.Tag() != "pre"
	}
	return false
}

func gridLike(n tablewatch.Node) bool {
	switch n.Tag() {
	case "table", "pre", "code", "tr", "td", "th", "thead", "tbody", "html", "body":
		return false
	}
	return isRoleGrid(n) || len(classRows(n)) > 0 || structuralRows(n) != nil
}

func textTable(n tablewatch.Node) bool {
	switch n.Tag() {
	case "p", "div":
	default:
		return false
	}
	text := n.InnerText()
	if tablewatch.LooksLikePipeTable(text) {
		return true
	}
	aligned := 0
	for _, line := range tablewatch.Lines(text) {
		if alignedLineRe.MatchString(line) {
			aligned++
		}
	}
	return aligned >= tablewatch.MinTextLines
}
