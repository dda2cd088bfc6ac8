package pathmatch

import "errors"

// ErrSyntax is returned for patterns that cannot be parsed.
var ErrSyntax = errors.New("invalid pattern")
