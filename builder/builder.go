// Package builder implements the IndexBuilder: the set of operations
// that produce a new Index together with the vector-relocation plan(s)
// needed to keep the backing vector aligned with it. Builder is a
// stateless value; the only state it carries is a reference to a
// VectorBuilder factory, used by Aggregate/GroupBy/Resample to
// materialize newly computed values.
package builder

import (
	"fmt"
	"sort"

	"seriesindex/addr"
	"seriesindex/align"
	"seriesindex/index"
	"seriesindex/plan"
)

// Builder orchestrates align/chunk/index into index-building
// operations that each return a new Index plus the plan(s) needed to
// relocate an existing vector to match it. V is the element type of
// the vector the plans produce; Vec is the vector layer's opaque
// vector type.
type Builder[K comparable, V, Vec any] struct {
	vb VectorBuilder[V, Vec]
}

// New constructs a Builder over the given vector-builder factory.
func New[K comparable, V, Vec any](vb VectorBuilder[V, Vec]) *Builder[K, V, Vec] {
	return &Builder[K, V, Vec]{vb: vb}
}

// Create constructs a brand new index from raw keys. The associated
// plan is a straight pass-through of input vector #0: a freshly
// created index is by definition already aligned with the vector the
// caller supplies alongside it.
func (b *Builder[K, V, Vec]) Create(keys []K, opts ...index.Option[K]) (*index.Index[K], plan.Plan[V], error) {
	idx, err := index.New(keys, opts...)
	if err != nil {
		return nil, nil, err
	}
	return idx, plan.NewReturn[V](0), nil
}

// Project is the identity operation: idx is already a fully evaluated
// linear index, so the plan is a bare pass-through.
func (b *Builder[K, V, Vec]) Project(idx *index.Index[K]) (*index.Index[K], plan.Plan[V]) {
	return idx, plan.NewReturn[V](0)
}

// Order stably sorts idx's keys under less and returns the reordered
// index plus a Relocate gathering each new address from the key's
// original address.
func (b *Builder[K, V, Vec]) Order(idx *index.Index[K], less index.Less[K]) (*index.Index[K], plan.Plan[V], error) {
	sorted := idx.Keys()
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	newIdx, err := index.New(sorted, index.WithLess(less), index.WithOrdered[K](true))
	if err != nil {
		return nil, nil, err
	}

	pairs := make([]plan.Pair, len(sorted))
	for i, k := range sorted {
		res := idx.Lookup(k, index.Exact, nil)
		if !res.Found {
			panic(fmt.Sprintf("builder: order lost key %v", k))
		}
		pairs[i] = plan.Pair{NewAddr: addr.Address(i), OldAddr: res.Addr}
	}

	return newIdx, plan.NewRelocate[V](plan.NewReturn[V](0), newIdx.Range(), pairs), nil
}

func cmpFromLess[K any](less index.Less[K]) align.Comparator[K] {
	return func(a, b K) int {
		if less(a, b) {
			return -1
		}
		if less(b, a) {
			return 1
		}
		return 0
	}
}

func toKeyAddr[K comparable](mappings []index.Mapping[K]) []align.KeyAddr[K] {
	out := make([]align.KeyAddr[K], len(mappings))
	for i, m := range mappings {
		out[i] = align.KeyAddr[K]{Key: m.Key, Addr: m.Addr}
	}
	return out
}

// alignBoth merges l and r's key streams, preferring AlignOrdered when
// both sides are ordered and degrading to AlignUnordered otherwise or
// when the comparator panics mid-merge.
func alignBoth[K comparable](l, r *index.Index[K]) (rows []align.Aligned[K], ordered bool, less index.Less[K]) {
	lrows := toKeyAddr(l.Mappings())
	rrows := toKeyAddr(r.Mappings())

	if l.IsOrdered() && r.IsOrdered() && l.Comparer() != nil {
		if merged, err := align.AlignOrdered(lrows, rrows, cmpFromLess(l.Comparer())); err == nil {
			return merged, true, l.Comparer()
		}
	}
	return align.AlignUnordered(lrows, rrows), false, nil
}

func newIndexFromAlignment[K comparable](rows []align.Aligned[K], ordered bool, less index.Less[K]) (*index.Index[K], error) {
	keys := make([]K, len(rows))
	for i, row := range rows {
		keys[i] = row.Key
	}
	opts := []index.Option[K]{index.WithOrdered[K](ordered)}
	if ordered && less != nil {
		opts = append(opts, index.WithLess(less))
	}
	return index.New(keys, opts...)
}

// Union merges l and r's key sets. Result keys are sorted under l's
// comparator when both inputs are ordered and the merge succeeds;
// otherwise the result is unordered, in L-then-(R\L) order.
func (b *Builder[K, V, Vec]) Union(l, r *index.Index[K]) (newIdx *index.Index[K], planL, planR plan.Plan[V], err error) {
	rows, ordered, less := alignBoth(l, r)
	newIdx, err = newIndexFromAlignment(rows, ordered, less)
	if err != nil {
		return nil, nil, nil, err
	}

	var lPairs, rPairs []plan.Pair
	for i, row := range rows {
		if row.Left != nil {
			lPairs = append(lPairs, plan.Pair{NewAddr: addr.Address(i), OldAddr: *row.Left})
		}
		if row.Right != nil {
			rPairs = append(rPairs, plan.Pair{NewAddr: addr.Address(i), OldAddr: *row.Right})
		}
	}

	newRange := newIdx.Range()
	planL = plan.NewRelocate[V](plan.NewReturn[V](0), newRange, lPairs)
	planR = plan.NewRelocate[V](plan.NewReturn[V](1), newRange, rPairs)
	return newIdx, planL, planR, nil
}

// Append unions l and r as Union does, then wraps the two relocations
// in a Combine under transform.
func (b *Builder[K, V, Vec]) Append(l, r *index.Index[K], transform plan.Transform[V]) (*index.Index[K], plan.Plan[V], error) {
	newIdx, planL, planR, err := b.Union(l, r)
	if err != nil {
		return nil, nil, err
	}
	return newIdx, plan.NewCombine(planL, planR, transform), nil
}

// Intersect aligns l and r as Union does, then keeps only rows present
// on both sides.
func (b *Builder[K, V, Vec]) Intersect(l, r *index.Index[K]) (newIdx *index.Index[K], planL, planR plan.Plan[V], err error) {
	rows, ordered, less := alignBoth(l, r)

	kept := rows[:0:0]
	for _, row := range rows {
		if row.Left != nil && row.Right != nil {
			kept = append(kept, row)
		}
	}

	newIdx, err = newIndexFromAlignment(kept, ordered, less)
	if err != nil {
		return nil, nil, nil, err
	}

	lPairs := make([]plan.Pair, len(kept))
	rPairs := make([]plan.Pair, len(kept))
	for i, row := range kept {
		lPairs[i] = plan.Pair{NewAddr: addr.Address(i), OldAddr: *row.Left}
		rPairs[i] = plan.Pair{NewAddr: addr.Address(i), OldAddr: *row.Right}
	}

	newRange := newIdx.Range()
	planL = plan.NewRelocate[V](plan.NewReturn[V](0), newRange, lPairs)
	planR = plan.NewRelocate[V](plan.NewReturn[V](1), newRange, rPairs)
	return newIdx, planL, planR, nil
}

// WithIndex maps each address to an optional new key via f, keeping
// only rows where f returned present, re-addressed from 0 in original
// order. The result is always unordered.
func WithIndex[K, K2 comparable, V any](idx *index.Index[K], f func(addr.Address) (K2, bool)) (*index.Index[K2], plan.Plan[V], error) {
	var newKeys []K2
	var pairs []plan.Pair
	for a := addr.Address(0); int(a) < idx.Len(); a++ {
		if k2, ok := f(a); ok {
			pairs = append(pairs, plan.Pair{NewAddr: addr.Address(len(newKeys)), OldAddr: a})
			newKeys = append(newKeys, k2)
		}
	}

	newIdx, err := index.New(newKeys)
	if err != nil {
		return nil, nil, err
	}
	return newIdx, plan.NewRelocate[V](plan.NewReturn[V](0), newIdx.Range(), pairs), nil
}

// Reindex produces, for r's index, the relocation that gathers each of
// r's addresses from wherever l resolves that key to under sem. The
// resulting index is r itself; only the plan is new.
func Reindex[K comparable, V any](l, r *index.Index[K], sem index.Semantics, check index.Check) plan.Plan[V] {
	var pairs []plan.Pair
	for _, m := range r.Mappings() {
		if res := l.Lookup(m.Key, sem, check); res.Found {
			pairs = append(pairs, plan.Pair{NewAddr: m.Addr, OldAddr: res.Addr})
		}
	}
	return plan.NewRelocate[V](plan.NewReturn[V](0), r.Range(), pairs)
}

// LookupLevel filters idx's addresses to those whose key satisfies
// matches, re-addressing from 0 while preserving relative order. The
// result inherits idx's ordering.
func (b *Builder[K, V, Vec]) LookupLevel(idx *index.Index[K], matches func(K) bool) (*index.Index[K], plan.Plan[V], error) {
	var newKeys []K
	var pairs []plan.Pair
	for _, m := range idx.Mappings() {
		if matches(m.Key) {
			pairs = append(pairs, plan.Pair{NewAddr: addr.Address(len(newKeys)), OldAddr: m.Addr})
			newKeys = append(newKeys, m.Key)
		}
	}

	opts := []index.Option[K]{index.WithOrdered[K](idx.IsOrdered())}
	if less := idx.Comparer(); less != nil {
		opts = append(opts, index.WithLess(less))
	}
	newIdx, err := index.New(newKeys, opts...)
	if err != nil {
		return nil, nil, err
	}
	return newIdx, plan.NewRelocate[V](plan.NewReturn[V](0), newIdx.Range(), pairs), nil
}

// DropItem removes k from idx. The dropped address is always a
// single, therefore trivially contiguous, slice.
func (b *Builder[K, V, Vec]) DropItem(idx *index.Index[K], k K) (*index.Index[K], plan.Plan[V], error) {
	res := idx.Lookup(k, index.Exact, nil)
	if !res.Found {
		return nil, nil, fmt.Errorf("%w: %v", ErrKeyNotFound, k)
	}

	keys := idx.Keys()
	newKeys := make([]K, 0, len(keys)-1)
	newKeys = append(newKeys, keys[:res.Addr]...)
	newKeys = append(newKeys, keys[res.Addr+1:]...)

	opts := []index.Option[K]{index.WithOrdered[K](idx.IsOrdered())}
	if less := idx.Comparer(); less != nil {
		opts = append(opts, index.WithLess(less))
	}
	newIdx, err := index.New(newKeys, opts...)
	if err != nil {
		return nil, nil, err
	}
	return newIdx, plan.NewDropRange[V](plan.NewReturn[V](0), addr.Range{Lo: res.Addr, Hi: res.Addr}), nil
}

// GetRange slices idx to the keys between lo and hi (either may be
// nil, meaning "use the natural end"). If either resolved bound is
// missing or the bounds cross after exclusive adjustment, the result
// is the empty index with an Empty plan rather than an error. The
// incoming idx is assumed already in canonical address order — this
// module's Index has only one concrete representation, always stored
// address-ordered by construction, so there is no separate
// normalization step for non-linear index layouts.
func (b *Builder[K, V, Vec]) GetRange(idx *index.Index[K], lo, hi *Bound[K]) (*index.Index[K], plan.Plan[V], error) {
	loAddr, hiAddr, ok := resolveBounds(idx, lo, hi)
	if !ok || loAddr > hiAddr {
		empty, err := index.New([]K(nil), index.WithOrdered[K](idx.IsOrdered()))
		if err != nil {
			return nil, nil, err
		}
		return empty, plan.NewEmpty[V](), nil
	}

	keys := idx.Keys()[loAddr : hiAddr+1]
	opts := []index.Option[K]{index.WithOrdered[K](idx.IsOrdered())}
	if less := idx.Comparer(); less != nil {
		opts = append(opts, index.WithLess(less))
	}
	newIdx, err := index.New(keys, opts...)
	if err != nil {
		return nil, nil, err
	}
	return newIdx, plan.NewGetRange[V](plan.NewReturn[V](0), addr.Range{Lo: loAddr, Hi: hiAddr}), nil
}

func resolveBounds[K comparable](idx *index.Index[K], lo, hi *Bound[K]) (loAddr, hiAddr addr.Address, ok bool) {
	if lo == nil {
		loAddr = 0
	} else {
		res := idx.Lookup(lo.Key, index.NearestGreater, func(addr.Address) bool { return true })
		if !res.Found {
			return 0, 0, false
		}
		loAddr = res.Addr
		if lo.Inclusivity == Exclusive {
			loAddr = addr.Increment(loAddr)
		}
	}

	if hi == nil {
		hiAddr = addr.Address(idx.Len() - 1)
	} else {
		res := idx.Lookup(hi.Key, index.NearestSmaller, func(addr.Address) bool { return true })
		if !res.Found {
			return 0, 0, false
		}
		hiAddr = res.Addr
		if hi.Inclusivity == Exclusive {
			hiAddr = addr.Decrement(hiAddr)
		}
	}
	return loAddr, hiAddr, true
}
