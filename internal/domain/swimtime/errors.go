package swimtime

import "errors"

// ErrMalformedTime marks input that is neither an accepted time shape nor
// a recognized no-time sentinel. Batch callers skip the offending record
// and continue.
var ErrMalformedTime = errors.New("malformed race time")
