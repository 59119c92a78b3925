package tablewatch

// MutationOp is the type of document mutation observed.
type MutationOp string

// Mutation operations.
const (
	OpInsert   MutationOp = "insert"    // subtree inserted under XPath
	OpRemove   MutationOp = "remove"    // node at XPath removed
	OpText     MutationOp = "text"      // text content of node at XPath replaced
	OpAttr     MutationOp = "attr"      // attribute set
	OpAttrDel  MutationOp = "attr_del"  // attribute removed
	OpDocReset MutationOp = "doc_reset" // entire document replaced
)

// MutationRecord is a serialized mutation as reported by a host page.
type MutationRecord struct {
	Op    MutationOp `json:"op"`
	XPath string     `json:"xpath,omitempty"`
	Name  string     `json:"name,omitempty"`  // attribute name for attr/attr_del
	Value string     `json:"value,omitempty"` // new text or attribute value
	HTML  string     `json:"html,omitempty"`  // inserted subtree or new document
}

// Mutation is a mutation that has been applied to a document.
type Mutation struct {
	Op      MutationOp
	Target  Node
	Added   []Node
	Removed []Node
	Name    string
}

// Mutator applies mutation records to a document.
type Mutator interface {
	// Apply applies the record and returns the resulting mutation.
	// Returns ENOTFOUND if the record's XPath matches nothing.
	Apply(rec MutationRecord) (*Mutation, error)
}
