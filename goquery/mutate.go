package goquery

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/fwojciec/tablewatch"
	"golang.org/x/net/html"
)

// Apply applies a mutation record to the document. Records other than
// doc_reset address their target with an XPath evaluated against the
// current tree.
func (d *Document) Apply(rec tablewatch.MutationRecord) (*tablewatch.Mutation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if rec.Op == tablewatch.OpDocReset {
		root, err := html.Parse(strings.NewReader(rec.HTML))
		if err != nil {
			return nil, tablewatch.Errorf(tablewatch.EINVALID, "failed to parse document: %v", err)
		}
		d.root = root
		d.resetHandles()
		m := &tablewatch.Mutation{Op: rec.Op}
		if el := htmlquery.FindOne(root, "/html"); el != nil {
			m.Target = d.wrap(el)
		}
		return m, nil
	}

	target, err := d.query(rec.XPath)
	if err != nil {
		return nil, err
	}
	m := &tablewatch.Mutation{Op: rec.Op, Target: d.wrap(target), Name: rec.Name}

	switch rec.Op {
	case tablewatch.OpInsert:
		nodes, err := html.ParseFragment(strings.NewReader(rec.HTML), target)
		if err != nil {
			return nil, tablewatch.Errorf(tablewatch.EINVALID, "failed to parse fragment: %v", err)
		}
		for _, n := range nodes {
			target.AppendChild(n)
			if n.Type == html.ElementNode {
				m.Added = append(m.Added, d.wrap(n))
			}
		}
	case tablewatch.OpRemove:
		parent := target.Parent
		if parent == nil || parent.Type != html.ElementNode {
			return nil, tablewatch.Errorf(tablewatch.EINVALID, "cannot remove root element %s", rec.XPath)
		}
		parent.RemoveChild(target)
		m.Target = d.wrap(parent)
		m.Removed = []tablewatch.Node{d.wrap(target)}
	case tablewatch.OpText:
		for c := target.FirstChild; c != nil; {
			next := c.NextSibling
			target.RemoveChild(c)
			if c.Type == html.ElementNode {
				m.Removed = append(m.Removed, d.wrap(c))
			}
			c = next
		}
		target.AppendChild(&html.Node{Type: html.TextNode, Data: rec.Value})
	case tablewatch.OpAttr:
		setAttr(target, rec.Name, rec.Value)
	case tablewatch.OpAttrDel:
		delAttr(target, rec.Name)
	default:
		return nil, tablewatch.Errorf(tablewatch.EINVALID, "unknown mutation op %q", rec.Op)
	}
	return m, nil
}

// query must be called with d.mu held.
func (d *Document) query(expr string) (*html.Node, error) {
	if expr == "" {
		return nil, tablewatch.Errorf(tablewatch.EINVALID, "xpath required")
	}
	n, err := htmlquery.Query(d.root, expr)
	if err != nil {
		return nil, tablewatch.Errorf(tablewatch.EINVALID, "invalid xpath %q: %v", expr, err)
	}
	if n == nil || n.Type != html.ElementNode {
		return nil, tablewatch.Errorf(tablewatch.ENOTFOUND, "no element at %s", expr)
	}
	return n, nil
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func delAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}
