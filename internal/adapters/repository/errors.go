package repository

import "errors"

// Sentinel kinds for store errors.
var ErrMissingResultID = errors.New("result id must not be empty")
