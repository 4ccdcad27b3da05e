// Package addr implements the address space: contiguous non-negative
// integer offsets into a backing storage vector, plus the small set of
// range operations the index and plan layers build on.
package addr

import "iter"

// Address is a non-negative offset into a backing vector.
type Address int

// Direction is Forward or Backward. It parametrizes FillMissing's
// directional fill policy, ChunkedUsing's marker attachment, and
// Resample's chunking direction — one shared vocabulary across the
// layers that need "which way do I walk/attach".
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Range is an inclusive address range [Lo, Hi]. An empty range is
// represented by Lo > Hi; callers should check IsEmpty rather than
// comparing fields directly.
type Range struct {
	Lo, Hi Address
}

// EmptyRange is the canonical empty range.
var EmptyRange = Range{Lo: 0, Hi: -1}

// IsEmpty reports whether r contains no addresses.
func (r Range) IsEmpty() bool {
	return r.Lo > r.Hi
}

// Len returns the number of addresses in r, or 0 if empty.
func (r Range) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return int(r.Hi-r.Lo) + 1
}

// RangeOf returns the address range covering n contiguous keys:
// (0, n-1), or the empty range when n is 0.
func RangeOf(n int) Range {
	if n <= 0 {
		return EmptyRange
	}
	return Range{Lo: 0, Hi: Address(n - 1)}
}

// Increment returns a+1.
func Increment(a Address) Address {
	return a + 1
}

// Decrement returns a-1.
func Decrement(a Address) Address {
	return a - 1
}

// GenerateRange yields the inclusive sequence from lo to hi: ascending
// when lo <= hi, descending otherwise. The sequence is lazy.
func GenerateRange(lo, hi Address) iter.Seq[Address] {
	return func(yield func(Address) bool) {
		if lo <= hi {
			for a := lo; a <= hi; a++ {
				if !yield(a) {
					return
				}
			}
			return
		}
		for a := lo; a >= hi; a-- {
			if !yield(a) {
				return
			}
		}
	}
}
