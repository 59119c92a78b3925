package tablewatch

// Registry is the live collection of currently valid detection results for
// one page session.
type Registry interface {
	// Add inserts or overwrites results by table ID. Results whose anchor is
	// detached, invisible or part of the engine UI are refused.
	// Returns the number of results stored.
	Add(results ...*TableDetectionResult) int

	// GetAll returns a snapshot of all entries, cleaning up invalid entries
	// first when the cleanup interval has elapsed.
	GetAll() []*TableDetectionResult

	// GetByIDs returns the entries with the given IDs whose anchors are
	// still valid. Unknown and invalid IDs are silently dropped.
	GetByIDs(ids ...string) []*TableDetectionResult

	// Cleanup removes every entry whose anchor is no longer valid.
	// Returns the number of entries removed.
	Cleanup() int

	// Clear removes all entries.
	Clear()
}
