// Package bloom remembers which table fingerprints were already reported
// during a session.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Session sizing used by the scheduler.
const (
	DefaultCapacity          = 10000
	DefaultFalsePositiveRate = 0.001
)

// Filter is a Bloom filter of table fingerprints. It never forgets: a
// fingerprint seen once stays seen for the life of the filter.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n fingerprints at the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// TestAndAdd records the fingerprint and reports whether it may have been
// recorded before. A false result is certain.
func (f *Filter) TestAndAdd(fingerprint string) bool {
	return f.f.TestAndAddString(fingerprint)
}
