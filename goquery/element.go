package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tablewatch"
	"golang.org/x/net/html"
)

var _ tablewatch.Node = (*Element)(nil)

// Element is a handle to an element of a Document.
type Element struct {
	doc *Document
	n   *html.Node
}

// HTMLNode returns the underlying node.
func (e *Element) HTMLNode() *html.Node {
	return e.n
}

// Tag returns the lowercase element name.
func (e *Element) Tag() string {
	return e.n.Data
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	return attr(e.n, name)
}

// Text returns the concatenated text content of the subtree.
func (e *Element) Text() string {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	return goquery.NewDocumentFromNode(e.n).Text()
}

// InnerText returns the rendered text of the subtree.
func (e *Element) InnerText() string {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	return innerText(e.n)
}

// Children returns the element children in document order.
func (e *Element) Children() []tablewatch.Node {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	var out []tablewatch.Node
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// Parent returns the parent element, or nil for the root element and for
// detached subtrees.
func (e *Element) Parent() tablewatch.Node {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	p := e.n.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Contains reports whether other is this element or one of its descendants.
func (e *Element) Contains(other tablewatch.Node) bool {
	o, ok := other.(*Element)
	if !ok || o == nil {
		return false
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	for n := o.n; n != nil; n = n.Parent {
		if n == e.n {
			return true
		}
	}
	return false
}

// Attached reports whether the element is still connected to its document.
func (e *Element) Attached() bool {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	n := e.n
	for n.Parent != nil {
		n = n.Parent
	}
	return n == e.doc.root
}

// Visible reports whether neither the element nor any ancestor is hidden.
func (e *Element) Visible() bool {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	for n := e.n; n != nil && n.Type == html.ElementNode; n = n.Parent {
		if hidden(n) {
			return false
		}
	}
	return true
}

// Find returns the descendants matching a CSS selector in document order.
func (e *Element) Find(selector string) []tablewatch.Node {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	return e.doc.find(e.n, selector)
}

// Path returns an absolute XPath such as /html/body/div[2]. Indexes count
// same-tag siblings and are omitted for the first one.
func (e *Element) Path() string {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	return xpath(e.n)
}

func xpath(n *html.Node) string {
	var parts []string
	for ; n != nil && n.Type == html.ElementNode; n = n.Parent {
		idx := 1
		for s := n.PrevSibling; s != nil; s = s.PrevSibling {
			if s.Type == html.ElementNode && s.Data == n.Data {
				idx++
			}
		}
		part := n.Data
		if idx > 1 {
			part += "[" + strconv.Itoa(idx) + "]"
		}
		parts = append(parts, part)
	}
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(parts[i])
	}
	return b.String()
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// hiddenTags are never rendered.
var hiddenTags = map[string]bool{
	"head":     true,
	"script":   true,
	"style":    true,
	"template": true,
	"noscript": true,
}

func hidden(n *html.Node) bool {
	if hiddenTags[n.Data] {
		return true
	}
	if _, ok := attr(n, "hidden"); ok {
		return true
	}
	if v, _ := attr(n, "aria-hidden"); v == "true" {
		return true
	}
	if n.Data == "input" {
		if v, _ := attr(n, "type"); strings.EqualFold(v, "hidden") {
			return true
		}
	}
	style, _ := attr(n, "style")
	style = strings.ToLower(strings.ReplaceAll(style, " ", ""))
	return strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden")
}
