package tablewatch

import "strings"

// Node is a handle to an element in a live document tree.
//
// Implementations must return the same handle for the same underlying
// element so that handles can be compared with == and used as map keys.
// Mutations are applied on a single goroutine; implementations must allow
// concurrent reads so registry snapshots can be taken from other goroutines.
type Node interface {
	// Tag returns the lowercase element name (e.g., "table", "div").
	Tag() string

	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)

	// Text returns the concatenated text content of the subtree.
	Text() string

	// InnerText returns the rendered text of the subtree: block elements and
	// <br> start new lines, table cells are separated by tabs and whitespace
	// is preserved inside preformatted elements.
	InnerText() string

	// Children returns the element children in document order.
	Children() []Node

	// Parent returns the parent element, or nil for the root element
	// and for detached subtrees.
	Parent() Node

	// Contains reports whether other is this node or one of its descendants.
	Contains(other Node) bool

	// Attached reports whether the node is still connected to its document.
	Attached() bool

	// Visible reports whether the node would be rendered. Nodes hidden by
	// themselves or by an ancestor are not visible.
	Visible() bool

	// Find returns the descendants matching a CSS selector in document order.
	// Invalid selectors match nothing.
	Find(selector string) []Node

	// Path returns a structural locator of the node, such as an XPath.
	Path() string
}

// Document is a live document tree.
type Document interface {
	// URL returns the address of the document.
	URL() string

	// Title returns the document title.
	Title() string

	// Root returns the root element.
	Root() Node

	// Find returns the elements matching a CSS selector in document order.
	Find(selector string) []Node
}

// Position is a snapshot of where a node sits in its document.
type Position struct {
	Path  string `json:"path"`
	Depth int    `json:"depth"`
}

// PositionOf returns a position snapshot of the node.
func PositionOf(n Node) Position {
	if n == nil {
		return Position{}
	}
	depth := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		depth++
	}
	return Position{Path: n.Path(), Depth: depth}
}

// Markers identifying the engine's own UI chrome (buttons, tooltips, menus)
// injected into the host page.
const (
	UIAttr        = "data-tablewatch-ui"
	UIClassPrefix = "tablewatch-"
)

// IsEngineUI reports whether the node or one of its ancestors belongs to
// the engine's own UI chrome.
func IsEngineUI(n Node) bool {
	for ; n != nil; n = n.Parent() {
		if _, ok := n.Attr(UIAttr); ok {
			return true
		}
		for _, class := range ClassList(n) {
			if strings.HasPrefix(class, UIClassPrefix) {
				return true
			}
		}
	}
	return false
}

// ClassList returns the node's class names.
func ClassList(n Node) []string {
	class, ok := n.Attr("class")
	if !ok {
		return nil
	}
	return strings.Fields(class)
}

// HasClassFragment reports whether any of the node's class names contains
// one of the fragments, case-insensitively.
func HasClassFragment(n Node, fragments ...string) bool {
	for _, class := range ClassList(n) {
		class = strings.ToLower(class)
		for _, frag := range fragments {
			if strings.Contains(class, frag) {
				return true
			}
		}
	}
	return false
}

// Overlaps reports whether a and b are the same node or one contains the other.
func Overlaps(a, b Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Contains(b) || b.Contains(a)
}
