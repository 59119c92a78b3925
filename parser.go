package tablewatch

// FormatParser turns a candidate node into a raw table for one source
// representation.
type FormatParser interface {
	// Format returns the representation the parser handles.
	Format() Format

	// CanParse is a cheap structural check of whether Parse may succeed.
	CanParse(n Node) bool

	// Parse extracts a raw table. The bool result is false when the node
	// does not hold a table in this representation.
	Parse(n Node) (*RawTable, bool)
}
