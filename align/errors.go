package align

import "errors"

// ErrComparisonFailed is returned by AlignOrdered when the supplied
// comparator panics mid-merge (e.g. comparing an incomparable tuple
// component). Callers degrade to AlignUnordered on this error.
var ErrComparisonFailed = errors.New("align: comparison failed")
