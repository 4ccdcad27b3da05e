package builder

import (
	"seriesindex/addr"
	"seriesindex/chunk"
	"seriesindex/index"
	"seriesindex/plan"
)

// KeySelector produces the new key for one window/chunk, given its
// completeness tag and the (sub_index, sub_plan) pair GetRange built
// for it.
type KeySelector[K comparable, K2 any, V any] func(completeness chunk.Completeness, subIdx *index.Index[K], subPlan plan.Plan[V]) K2

// ValueSelector computes the new cell for one window/chunk/group, or
// nil for a missing cell.
type ValueSelector[K comparable, V any] func(subIdx *index.Index[K], subPlan plan.Plan[V]) *V

// Aggregate partitions idx's ordered keys per agg, and for each
// partition builds its (sub_index, sub_plan) via GetRange, then
// derives a new key and value. The resulting index is always
// unordered (its keys come from an arbitrary key_sel, not necessarily
// sorted) and the vector is materialized immediately via the
// Builder's VectorBuilder, rather than described by a plan: the
// per-partition values are freshly computed, not a relocation of an
// existing vector: the aggregation math itself is external; only the
// chunk assembly feeding it lives here.
//
// Aggregate is a free function, not a method, because it introduces a
// new key type parameter K2 that Go does not allow adding to a method
// of Builder[K, V, Vec].
func Aggregate[K, K2 comparable, V, Vec any](
	b *Builder[K, V, Vec],
	idx *index.Index[K],
	agg Aggregation[K],
	keySel KeySelector[K, K2, V],
	valSel ValueSelector[K, V],
) (*index.Index[K2], Vec, error) {
	var zero Vec
	if !idx.IsOrdered() {
		return nil, zero, index.ErrUnorderedIndex
	}

	keys := idx.Keys()
	var newKeys []K2
	var values []*V

	for w := range agg.windows(keys) {
		subIdx, subPlan, err := b.GetRange(idx, NewBound(w.Keys[0], Inclusive), NewBound(w.Keys[len(w.Keys)-1], Inclusive))
		if err != nil {
			return nil, zero, err
		}
		newKeys = append(newKeys, keySel(w.Completeness, subIdx, subPlan))
		values = append(values, valSel(subIdx, subPlan))
	}

	newIdx, err := index.New(newKeys)
	if err != nil {
		return nil, zero, err
	}
	return newIdx, b.vb.CreateMissing(values), nil
}

// GroupBy partitions idx's addresses by keySel(key), preserving each
// group's first-occurrence order in the result. Each group's
// sub_index/sub_plan gather its original addresses in original order;
// valSel collapses each group to one cell. The resulting index is
// always unordered.
func GroupBy[K, K2 comparable, V, Vec any](
	b *Builder[K, V, Vec],
	idx *index.Index[K],
	keySel func(K) (K2, bool),
	valSel ValueSelector[K, V],
) (*index.Index[K2], Vec, error) {
	var zero Vec

	var order []K2
	groups := make(map[K2][]addr.Address)
	for _, m := range idx.Mappings() {
		k2, ok := keySel(m.Key)
		if !ok {
			continue
		}
		if _, exists := groups[k2]; !exists {
			order = append(order, k2)
		}
		groups[k2] = append(groups[k2], m.Addr)
	}

	values := make([]*V, 0, len(order))
	for _, k2 := range order {
		addrs := groups[k2]
		groupKeys := make([]K, len(addrs))
		pairs := make([]plan.Pair, len(addrs))
		for i, a := range addrs {
			k, _ := idx.KeyAt(a)
			groupKeys[i] = k
			pairs[i] = plan.Pair{NewAddr: addr.Address(i), OldAddr: a}
		}
		subIdx, err := index.New(groupKeys)
		if err != nil {
			return nil, zero, err
		}
		subPlan := plan.NewRelocate[V](plan.NewReturn[V](0), subIdx.Range(), pairs)
		values = append(values, valSel(subIdx, subPlan))
	}

	newIdx, err := index.New(order)
	if err != nil {
		return nil, zero, err
	}
	return newIdx, b.vb.CreateMissing(values), nil
}

// Resample requires idx ordered with a usable comparator; it splits
// idx's keys by markers via chunk.ChunkedUsing and otherwise proceeds
// exactly as Aggregate.
func Resample[K, K2 comparable, V, Vec any](
	b *Builder[K, V, Vec],
	idx *index.Index[K],
	markers []K,
	dir addr.Direction,
	keySel KeySelector[K, K2, V],
	valSel ValueSelector[K, V],
) (*index.Index[K2], Vec, error) {
	var zero Vec
	if !idx.IsOrdered() {
		return nil, zero, index.ErrUnorderedIndex
	}
	less := idx.Comparer()
	if less == nil {
		return nil, zero, index.ErrUnorderedIndex
	}

	keys := idx.Keys()
	cmp := cmpFromLess(less)

	var newKeys []K2
	var values []*V
	for w := range chunk.ChunkedUsing(keys, markers, dir, cmp) {
		subIdx, subPlan, err := b.GetRange(idx, NewBound(w.Keys[0], Inclusive), NewBound(w.Keys[len(w.Keys)-1], Inclusive))
		if err != nil {
			return nil, zero, err
		}
		newKeys = append(newKeys, keySel(w.Completeness, subIdx, subPlan))
		values = append(values, valSel(subIdx, subPlan))
	}

	newIdx, err := index.New(newKeys)
	if err != nil {
		return nil, zero, err
	}
	return newIdx, b.vb.CreateMissing(values), nil
}
