package goquery

import (
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tablewatch"
	"golang.org/x/net/html"
)

var (
	_ tablewatch.Document = (*Document)(nil)
	_ tablewatch.Mutator  = (*Document)(nil)
)

// Document is a live HTML document backed by golang.org/x/net/html.
//
// Element handles are canonical: the same underlying node always yields the
// same *Element, so handles can be compared with ==. Reads are safe for
// concurrent use; Apply takes an exclusive lock.
type Document struct {
	url string

	mu   sync.RWMutex
	root *html.Node // the html.DocumentNode

	handlesMu sync.Mutex
	handles   map[*html.Node]*Element
}

// NewDocument parses HTML from r.
func NewDocument(r io.Reader, url string) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, tablewatch.Errorf(tablewatch.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{
		url:     url,
		root:    root,
		handles: make(map[*html.Node]*Element),
	}, nil
}

// NewDocumentFromString parses an HTML string.
func NewDocumentFromString(s string, url string) (*Document, error) {
	return NewDocument(strings.NewReader(s), url)
}

// URL returns the address of the document.
func (d *Document) URL() string {
	return d.url
}

// Title returns the trimmed text of the first <title> element.
func (d *Document) Title() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	sel := goquery.NewDocumentFromNode(d.root).Find("title").First()
	return tablewatch.NormalizeText(sel.Text())
}

// Root returns the <html> element.
func (d *Document) Root() tablewatch.Node {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return d.wrap(c)
		}
	}
	return nil
}

// Find returns the elements matching a CSS selector in document order.
func (d *Document) Find(selector string) []tablewatch.Node {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.find(d.root, selector)
}

// HTML renders the current document.
func (d *Document) HTML() (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var b strings.Builder
	if err := html.Render(&b, d.root); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Element returns the handle for n, or nil when n is not an element.
func (d *Document) Element(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return d.wrap(n)
}

// find must be called with d.mu held.
func (d *Document) find(n *html.Node, selector string) []tablewatch.Node {
	// goquery treats an invalid selector as matching nothing.
	nodes := goquery.NewDocumentFromNode(n).Find(selector).Nodes
	out := make([]tablewatch.Node, 0, len(nodes))
	for _, m := range nodes {
		out = append(out, d.wrap(m))
	}
	return out
}

func (d *Document) wrap(n *html.Node) *Element {
	d.handlesMu.Lock()
	defer d.handlesMu.Unlock()

	if e, ok := d.handles[n]; ok {
		return e
	}
	e := &Element{doc: d, n: n}
	d.handles[n] = e
	return e
}

func (d *Document) resetHandles() {
	d.handlesMu.Lock()
	defer d.handlesMu.Unlock()

	d.handles = make(map[*html.Node]*Element)
}
