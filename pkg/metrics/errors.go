package metrics

import "errors"

// ErrRegister marks metric registration failures with a custom registry.
var ErrRegister = errors.New("metric registration failed")
