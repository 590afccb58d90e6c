package domain

import "errors"

// ErrNotFound marks an absent row. Callers distinguish it from genuine
// backend errors: a missing profile or cart line is a normal empty result.
var ErrNotFound = errors.New("not found")
