package mock

import "github.com/fwojciec/tablewatch"

var _ tablewatch.Registry = (*Registry)(nil)

// Registry is a mock implementation of tablewatch.Registry.
type Registry struct {
	AddFn      func(results ...*tablewatch.TableDetectionResult) int
	GetAllFn   func() []*tablewatch.TableDetectionResult
	GetByIDsFn func(ids ...string) []*tablewatch.TableDetectionResult
	CleanupFn  func() int
	ClearFn    func()
}

func (r *Registry) Add(results ...*tablewatch.TableDetectionResult) int {
	return r.AddFn(results...)
}

func (r *Registry) GetAll() []*tablewatch.TableDetectionResult {
	return r.GetAllFn()
}

func (r *Registry) GetByIDs(ids ...string) []*tablewatch.TableDetectionResult {
	return r.GetByIDsFn(ids...)
}

func (r *Registry) Cleanup() int {
	return r.CleanupFn()
}

func (r *Registry) Clear() {
	r.ClearFn()
}

var _ tablewatch.Mutator = (*Mutator)(nil)

// Mutator is a mock implementation of tablewatch.Mutator.
type Mutator struct {
	ApplyFn func(rec tablewatch.MutationRecord) (*tablewatch.Mutation, error)
}

func (m *Mutator) Apply(rec tablewatch.MutationRecord) (*tablewatch.Mutation, error) {
	return m.ApplyFn(rec)
}
