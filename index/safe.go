package index

import (
	"sync"

	"seriesindex/addr"
)

// SafeIndexView is a conventional sync.RWMutex-guarded read-only
// wrapper around an *Index, in the usual Safe*-wrapper style. Index
// is itself safe for
// concurrent readers once constructed — lazy fields are memoized
// under a one-shot initialization safe for concurrent first readers —
// so the lock here is a naming-convention wrapper for callers who
// expect one, not load-bearing for correctness.
type SafeIndexView[K comparable] struct {
	mu    sync.RWMutex
	inner *Index[K]
}

// NewSafeIndexView wraps idx.
func NewSafeIndexView[K comparable](idx *Index[K]) *SafeIndexView[K] {
	return &SafeIndexView[K]{inner: idx}
}

func (v *SafeIndexView[K]) Keys() []K {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.inner.Keys()
}

func (v *SafeIndexView[K]) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.inner.Len()
}

func (v *SafeIndexView[K]) Range() addr.Range {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.inner.Range()
}

func (v *SafeIndexView[K]) Mappings() []Mapping[K] {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.inner.Mappings()
}

func (v *SafeIndexView[K]) IsOrdered() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.inner.IsOrdered()
}

func (v *SafeIndexView[K]) KeyRange() (first, last K, err error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.inner.KeyRange()
}

func (v *SafeIndexView[K]) KeyAt(a addr.Address) (K, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.inner.KeyAt(a)
}

func (v *SafeIndexView[K]) Lookup(key K, sem Semantics, check Check) Result[K] {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.inner.Lookup(key, sem, check)
}

func (v *SafeIndexView[K]) Comparer() Less[K] {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.inner.Comparer()
}
