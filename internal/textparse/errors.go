package textparse

import "errors"

// ErrMalformedPair is returned when a delimited item is not a single key=value pair.
var ErrMalformedPair = errors.New("item must contain exactly one '='")
