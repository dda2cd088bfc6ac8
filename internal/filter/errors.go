package filter

import "errors"

// ErrNoFiles is returned when the arguments select no file at all.
var ErrNoFiles = errors.New("no files matched")
