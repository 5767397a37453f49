package taxonomydb

import "errors"

// ErrNotFound indicates no tile rows exist in the backend.
var ErrNotFound = errors.New("no tiles found")
