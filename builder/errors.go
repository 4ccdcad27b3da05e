package builder

import "errors"

// ErrKeyNotFound is returned by DropItem when the target key is
// absent.
var ErrKeyNotFound = errors.New("builder: key not found")
