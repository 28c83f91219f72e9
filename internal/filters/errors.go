package filters

import "errors"

var (
	// ErrUnknownObjectType is returned when filters are requested for anything other than issues or pulls.
	ErrUnknownObjectType = errors.New("object type must be issue or pull")
	// ErrInvalidFilter is returned when an override names a filter the object type does not support.
	ErrInvalidFilter = errors.New("invalid filter")
)
