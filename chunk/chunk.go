// Package chunk implements the sequence chunkers: lazy, single-pass
// producers of window/chunk views over an ordered key sequence, each
// tagged Complete or Incomplete per its boundary policy.
package chunk

import (
	"cmp"
	"iter"

	"seriesindex/addr"
)

// Completeness tags whether a window/chunk reached its full intended
// size.
type Completeness int

const (
	Complete Completeness = iota
	Incomplete
)

// Boundary controls how an incomplete leading/trailing window or
// chunk is treated by the size-based chunkers.
type Boundary int

const (
	// Skip emits only complete windows/chunks.
	Skip Boundary = iota
	// AtBeginning emits growing incomplete windows at the start.
	// ChunkedSize treats it like AtEnding.
	AtBeginning
	// AtEnding emits shrinking incomplete windows, or the trailing
	// incomplete chunk, at the end.
	AtEnding
)

// View is one window or chunk: a contiguous run of keys plus its
// completeness tag.
type View[K any] struct {
	Keys         []K
	Completeness Completeness
}

// WindowedSize produces sliding windows of size n over keys.
func WindowedSize[K any](keys []K, n int, boundary Boundary) iter.Seq[View[K]] {
	return func(yield func(View[K]) bool) {
		if n <= 0 || len(keys) == 0 {
			return
		}
		if boundary == AtBeginning {
			for end := 1; end < n && end <= len(keys); end++ {
				if !yield(View[K]{Keys: keys[0:end], Completeness: Incomplete}) {
					return
				}
			}
		}
		for start := 0; start+n <= len(keys); start++ {
			if !yield(View[K]{Keys: keys[start : start+n], Completeness: Complete}) {
				return
			}
		}
		if boundary == AtEnding {
			start := len(keys) - n + 1
			if start < 1 {
				start = 1
			}
			for s := start; s < len(keys); s++ {
				if !yield(View[K]{Keys: keys[s:], Completeness: Incomplete}) {
					return
				}
			}
		}
	}
}

// ChunkedSize produces non-overlapping adjacent chunks of size n over
// keys, applying boundary to the final partial chunk (AtBeginning is
// meaningless for disjoint chunking and behaves like AtEnding: the
// only possible incomplete chunk is the trailing remainder).
func ChunkedSize[K any](keys []K, n int, boundary Boundary) iter.Seq[View[K]] {
	return func(yield func(View[K]) bool) {
		if n <= 0 || len(keys) == 0 {
			return
		}
		i := 0
		for i+n <= len(keys) {
			if !yield(View[K]{Keys: keys[i : i+n], Completeness: Complete}) {
				return
			}
			i += n
		}
		if i < len(keys) {
			if boundary == Skip {
				return
			}
			yield(View[K]{Keys: keys[i:], Completeness: Incomplete})
		}
	}
}

// Cond reports whether the window/chunk started at first may still
// extend to include cur.
type Cond[K any] func(first, cur K) bool

// WindowedWhile starts a window at every position and extends it
// while cond(first_key, current_key) holds.
func WindowedWhile[K any](keys []K, cond Cond[K]) iter.Seq[View[K]] {
	return func(yield func(View[K]) bool) {
		for start := range keys {
			end := start + 1
			for end < len(keys) && cond(keys[start], keys[end]) {
				end++
			}
			if !yield(View[K]{Keys: keys[start:end], Completeness: Complete}) {
				return
			}
		}
	}
}

// ChunkedWhile starts a chunk, extends it while cond(first_key_of_chunk,
// current_key) holds, then starts a new chunk at the first key that
// broke the condition.
func ChunkedWhile[K any](keys []K, cond Cond[K]) iter.Seq[View[K]] {
	return func(yield func(View[K]) bool) {
		start := 0
		for start < len(keys) {
			end := start + 1
			for end < len(keys) && cond(keys[start], keys[end]) {
				end++
			}
			if !yield(View[K]{Keys: keys[start:end], Completeness: Complete}) {
				return
			}
			start = end
		}
	}
}

// ChunkedUsing partitions a sorted key stream by a sorted sequence of
// marker keys. In Forward direction each marker is the inclusive
// lower bound of its chunk, so keys before the first marker attach to
// that marker's chunk. In Backward direction each marker is the
// inclusive upper bound of its chunk, so keys after the last marker
// attach to that marker's chunk.
func ChunkedUsing[K any](keys []K, markers []K, dir addr.Direction, cmp func(a, b K) int) iter.Seq[View[K]] {
	switch dir {
	case addr.Forward:
		return chunkedUsingForward(keys, markers, cmp)
	default:
		return chunkedUsingBackward(keys, markers, cmp)
	}
}

// chunkedUsingForward: marker[i] is the inclusive lower bound of chunk
// i; chunk i runs up to (exclusive) marker[i+1], or to the end of keys
// for the last marker. Keys strictly before marker[0] have no
// preceding marker to be a lower bound for them, so they attach to
// marker[0]'s chunk (symmetric with the backward case, where trailing
// keys attach to the last marker's chunk).
func chunkedUsingForward[K any](keys []K, markers []K, cmp func(a, b K) int) iter.Seq[View[K]] {
	return func(yield func(View[K]) bool) {
		if len(markers) == 0 {
			if len(keys) > 0 {
				yield(View[K]{Keys: keys, Completeness: Complete})
			}
			return
		}
		pos := 0
		for mi := 0; mi < len(markers); mi++ {
			var end int
			if mi+1 < len(markers) {
				end = lowerBound(keys, markers[mi+1], cmp)
			} else {
				end = len(keys)
			}
			if !yield(View[K]{Keys: keys[pos:end], Completeness: Complete}) {
				return
			}
			pos = end
		}
	}
}

// chunkedUsingBackward: marker[i] is the inclusive upper bound of
// chunk i; chunk i starts (exclusive) after marker[i-1], or from the
// start of keys for the first marker. Keys strictly after the last
// marker attach to the last marker's chunk.
func chunkedUsingBackward[K any](keys []K, markers []K, cmp func(a, b K) int) iter.Seq[View[K]] {
	return func(yield func(View[K]) bool) {
		if len(markers) == 0 {
			if len(keys) > 0 {
				yield(View[K]{Keys: keys, Completeness: Complete})
			}
			return
		}
		pos := 0
		for mi := 0; mi < len(markers); mi++ {
			end := upperBound(keys, markers[mi], cmp)
			last := mi == len(markers)-1
			if last {
				end = len(keys)
			}
			if !yield(View[K]{Keys: keys[pos:end], Completeness: Complete}) {
				return
			}
			pos = end
		}
	}
}

// lowerBound returns the index of the first key >= target.
func lowerBound[K any](keys []K, target K, cmpFn func(a, b K) int) int {
	lo, hi := 0, len(keys)
	for lo < hi {
		mid := (lo + hi) / 2
		if cmpFn(keys[mid], target) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// upperBound returns the index just past the last key <= target.
func upperBound[K any](keys []K, target K, cmpFn func(a, b K) int) int {
	lo, hi := 0, len(keys)
	for lo < hi {
		mid := (lo + hi) / 2
		if cmpFn(keys[mid], target) <= 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// IntCompare is a convenience Comparator for ordered.Ordered-like
// built-in numeric/string keys, mirroring the stdlib cmp.Compare
// signature chunkers expect.
func IntCompare[K cmp.Ordered](a, b K) int {
	return cmp.Compare(a, b)
}
