// Package filters builds the query parameters used when listing issues and
// pull requests, validating operator overrides against the known defaults.
package filters

import (
	"fmt"
	"maps"
	"slices"

	"github.com/eugenenazirov/ghreport/internal/textparse"
)

const (
	ObjectIssue = "issue"
	ObjectPull  = "pull"
)

var pullDefaults = map[string]string{
	"state":     "open",
	"assignee":  "none",
	"sort":      "created",
	"direction": "desc",
}

var issueDefaults = map[string]string{
	"state":     "open",
	"assignee":  "none",
	"milestone": "none",
	"sort":      "created",
	"direction": "desc",
}

// Defaults returns a fresh copy of the default filters for objectType.
func Defaults(objectType string) (map[string]string, error) {
	switch objectType {
	case ObjectIssue:
		return maps.Clone(issueDefaults), nil
	case ObjectPull:
		return maps.Clone(pullDefaults), nil
	default:
		return nil, fmt.Errorf("%q: %w", objectType, ErrUnknownObjectType)
	}
}

// Validate overlays overrides on the defaults for objectType. Every override
// key must already be present in the defaults.
func Validate(objectType string, overrides map[string]string) (map[string]string, error) {
	out, err := Defaults(objectType)
	if err != nil {
		return nil, err
	}

	for _, key := range slices.Sorted(maps.Keys(overrides)) {
		if _, ok := out[key]; !ok {
			return nil, fmt.Errorf("%q for %s: %w", key, objectType, ErrInvalidFilter)
		}
		out[key] = overrides[key]
	}
	return out, nil
}

// Parse reads overrides in "key=value<delim>key=value" form and validates them.
func Parse(objectType, raw, delimiter string) (map[string]string, error) {
	overrides, err := textparse.DictFromString(raw, delimiter)
	if err != nil {
		return nil, fmt.Errorf("parse filters: %w", err)
	}
	return Validate(objectType, overrides)
}
