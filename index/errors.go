package index

import "errors"

// ErrDuplicateKey is returned by New when two input keys compare
// equal; the offending key is included via fmt.Errorf wrapping at the
// call site.
var ErrDuplicateKey = errors.New("index: duplicate key")

// ErrUnorderedIndex is returned by KeyRange when the index cannot
// prove its keys are sorted.
var ErrUnorderedIndex = errors.New("index: index is not ordered")
