package mock

import "github.com/fwojciec/tablewatch"

var _ tablewatch.Node = (*Node)(nil)

// Node is a mock implementation of tablewatch.Node.
// Unset functions return zero values, so a bare &Node{} is a detached,
// invisible leaf.
type Node struct {
	TagFn       func() string
	AttrFn      func(name string) (string, bool)
	TextFn      func() string
	InnerTextFn func() string
	ChildrenFn  func() []tablewatch.Node
	ParentFn    func() tablewatch.Node
	ContainsFn  func(other tablewatch.Node) bool
	AttachedFn  func() bool
	VisibleFn   func() bool
	FindFn      func(selector string) []tablewatch.Node
	PathFn      func() string
}

func (n *Node) Tag() string {
	if n.TagFn == nil {
		return ""
	}
	return n.TagFn()
}

func (n *Node) Attr(name string) (string, bool) {
	if n.AttrFn == nil {
		return "", false
	}
	return n.AttrFn(name)
}

func (n *Node) Text() string {
	if n.TextFn == nil {
		return ""
	}
	return n.TextFn()
}

func (n *Node) InnerText() string {
	if n.InnerTextFn == nil {
		return ""
	}
	return n.InnerTextFn()
}

func (n *Node) Children() []tablewatch.Node {
	if n.ChildrenFn == nil {
		return nil
	}
	return n.ChildrenFn()
}

func (n *Node) Parent() tablewatch.Node {
	if n.ParentFn == nil {
		return nil
	}
	return n.ParentFn()
}

func (n *Node) Contains(other tablewatch.Node) bool {
	if n.ContainsFn == nil {
		return other == tablewatch.Node(n)
	}
	return n.ContainsFn(other)
}

func (n *Node) Attached() bool {
	if n.AttachedFn == nil {
		return false
	}
	return n.AttachedFn()
}

func (n *Node) Visible() bool {
	if n.VisibleFn == nil {
		return false
	}
	return n.VisibleFn()
}

func (n *Node) Find(selector string) []tablewatch.Node {
	if n.FindFn == nil {
		return nil
	}
	return n.FindFn(selector)
}

func (n *Node) Path() string {
	if n.PathFn == nil {
		return ""
	}
	return n.PathFn()
}

var _ tablewatch.Document = (*Document)(nil)

// Document is a mock implementation of tablewatch.Document.
type Document struct {
	URLFn   func() string
	TitleFn func() string
	RootFn  func() tablewatch.Node
	FindFn  func(selector string) []tablewatch.Node
}

func (d *Document) URL() string {
	return d.URLFn()
}

func (d *Document) Title() string {
	if d.TitleFn == nil {
		return ""
	}
	return d.TitleFn()
}

func (d *Document) Root() tablewatch.Node {
	return d.RootFn()
}

func (d *Document) Find(selector string) []tablewatch.Node {
	if d.FindFn == nil {
		return nil
	}
	return d.FindFn(selector)
}
