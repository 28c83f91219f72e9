package report

import "errors"

var (
	// ErrUnexpectedItem is returned when a row is requested for a value that does not match the kind.
	ErrUnexpectedItem = errors.New("item does not match object kind")
	// ErrNoMembershipLookup is reported to the logger when user rows are printed without a lookup.
	ErrNoMembershipLookup = errors.New("no membership lookup configured")
)
