package detect

import (
	"slices"
	"sync"
	"time"

	"github.com/fwojciec/tablewatch"
)

var _ tablewatch.Registry = (*Registry)(nil)

// DefaultCleanupInterval is the minimum time between lazy cleanups in GetAll.
const DefaultCleanupInterval = 5 * time.Second

// Registry holds the live detection results of one page session. It is
// safe for concurrent use.
//
// No two entries have anchors in an ancestor/descendant relation: Add
// refuses a result overlapping another live entry, and Cleanup removes the
// outer entry of any nested pair left behind by mutations.
type Registry struct {
	// CleanupInterval bounds how often GetAll cleans up.
	CleanupInterval time.Duration

	// Now returns the current time.
	Now func() time.Time

	mu          sync.Mutex
	entries     map[string]*tablewatch.TableDetectionResult
	order       []string
	lastCleanup time.Time
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		CleanupInterval: DefaultCleanupInterval,
		Now:             time.Now,
		entries:         make(map[string]*tablewatch.TableDetectionResult),
	}
}

// Valid reports whether a result's anchor is attached, visible and not part
// of the engine's UI.
func Valid(r *tablewatch.TableDetectionResult) bool {
	if r == nil || r.Table == nil || r.Anchor == nil {
		return false
	}
	return r.Anchor.Attached() && r.Anchor.Visible() && !tablewatch.IsEngineUI(r.Anchor)
}

// Add inserts or overwrites results by ID. A result anchored at the same
// node as a live entry replaces it; a result whose anchor contains or is
// contained by another live entry's anchor is refused, as is a table that
// fails TableData.Validate.
func (r *Registry) Add(results ...*tablewatch.TableDetectionResult) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := 0
	for _, res := range results {
		if !Valid(res) || res.Table.Validate() != nil {
			continue
		}
		id := res.Table.ID
		if _, ok := r.entries[id]; ok {
			r.entries[id] = res
			stored++
			continue
		}

		conflict := false
		for _, other := range r.order {
			e := r.entries[other]
			if !Valid(e) {
				continue
			}
			if e.Anchor == res.Anchor {
				r.remove(other)
				break
			}
			if tablewatch.Overlaps(e.Anchor, res.Anchor) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}
		r.entries[id] = res
		r.order = append(r.order, id)
		stored++
	}
	return stored
}

// GetAll returns a snapshot of all entries in insertion order, cleaning up
// first when CleanupInterval has elapsed since the last cleanup.
func (r *Registry) GetAll() []*tablewatch.TableDetectionResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Now().Sub(r.lastCleanup) >= r.CleanupInterval {
		r.cleanup()
	}
	out := make([]*tablewatch.TableDetectionResult, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

// GetByIDs returns the valid entries with the given IDs, in argument order.
func (r *Registry) GetByIDs(ids ...string) []*tablewatch.TableDetectionResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*tablewatch.TableDetectionResult
	for _, id := range ids {
		if e, ok := r.entries[id]; ok && Valid(e) {
			out = append(out, e)
		}
	}
	return out
}

// Cleanup removes invalid entries and the outer entry of nested pairs.
func (r *Registry) Cleanup() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.cleanup()
}

func (r *Registry) cleanup() int {
	r.lastCleanup = r.Now()

	before := len(r.order)
	for _, id := range slices.Clone(r.order) {
		if !Valid(r.entries[id]) {
			r.remove(id)
		}
	}
	for _, id := range slices.Clone(r.order) {
		e := r.entries[id]
		for _, other := range r.order {
			if other != id && e.Anchor.Contains(r.entries[other].Anchor) {
				r.remove(id)
				break
			}
		}
	}
	return before - len(r.order)
}

// Clear removes all entries.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]*tablewatch.TableDetectionResult)
	r.order = nil
}

// Reconcile replaces the registry contents with the results of a full
// scan. Entries absent from results are removed. It returns the number of
// results that were not registered before and the number of entries removed.
func (r *Registry) Reconcile(results []*tablewatch.TableDetectionResult) (added, removed int) {
	keep := make(map[string]bool, len(results))
	for _, res := range results {
		if res != nil && res.Table != nil {
			keep[res.Table.ID] = true
		}
	}

	r.mu.Lock()
	for _, id := range slices.Clone(r.order) {
		if !keep[id] {
			r.remove(id)
			removed++
		}
	}
	var fresh []*tablewatch.TableDetectionResult
	for _, res := range results {
		if res == nil || res.Table == nil {
			continue
		}
		if _, ok := r.entries[res.Table.ID]; !ok {
			fresh = append(fresh, res)
		}
	}
	r.mu.Unlock()

	r.Add(results...)
	for _, res := range fresh {
		if r.Has(res.Table.ID) {
			added++
		}
	}
	return added, removed
}

// Has reports whether an entry with the ID exists, valid or not.
func (r *Registry) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.entries[id]
	return ok
}

// Len returns the number of entries, valid or not.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.order)
}

// Anchors returns the anchors of all valid entries.
func (r *Registry) Anchors() []tablewatch.Node {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []tablewatch.Node
	for _, id := range r.order {
		if e := r.entries[id]; Valid(e) {
			out = append(out, e.Anchor)
		}
	}
	return out
}

func (r *Registry) remove(id string) {
	delete(r.entries, id)
	r.order = slices.DeleteFunc(r.order, func(o string) bool { return o == id })
}
