package submissiondb

import "errors"

// ErrAppendFailed wraps backend write failures so callers can treat any
// append problem uniformly: abort, post nothing, track nothing.
var ErrAppendFailed = errors.New("ledger append failed")
