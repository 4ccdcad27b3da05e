package builder

import "seriesindex/plan"

// VectorBuilder is the external collaborator a concrete vector layer
// implements. Builder holds only a reference to one, as a stateless
// factory used by Aggregate/GroupBy/Resample to materialize the new
// vector from per-chunk computed values. Build is never invoked by
// this package — evaluating a Plan against concrete vectors is the
// vector layer's job — but it is declared here to mirror the full
// consumed interface.
type VectorBuilder[V, Vec any] interface {
	// CreateMissing builds a vector from optional cells: a nil entry
	// is a missing cell.
	CreateMissing(values []*V) Vec
	// Build executes a plan against its input vectors.
	Build(p plan.Plan[V], inputs []Vec) Vec
}
