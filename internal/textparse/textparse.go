package textparse

import (
	"fmt"
	"strings"
)

var canonicalReplacer = strings.NewReplacer(
	"/", "_",
	"-", "",
	".", "",
	" ", "",
)

// CanonicalName converts an identifier such as "org/some-repo.name" into a
// form safe for file and metric names ("org_somereponame").
func CanonicalName(raw string) string {
	return canonicalReplacer.Replace(raw)
}

// DictFromString parses "k1=v1<delim>k2=v2" into a map. An empty input yields a
// nil map and no error.
func DictFromString(s, delimiter string) (map[string]string, error) {
	if s == "" {
		return nil, nil
	}

	items := strings.Split(s, delimiter)
	out := make(map[string]string, len(items))
	for _, item := range items {
		key, value, err := splitPair(item)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

// ListFromString splits s on delimiter without trimming or dropping empty items.
func ListFromString(s, delimiter string) []string {
	return strings.Split(s, delimiter)
}

// MergeMaps folds a list of (usually single-entry) maps into one map. Later
// entries win on key collision.
func MergeMaps[K comparable, V any](list []map[K]V) map[K]V {
	out := make(map[K]V)
	for _, item := range list {
		for k, v := range item {
			out[k] = v
		}
	}
	return out
}

func splitPair(item string) (string, string, error) {
	if strings.Count(item, "=") != 1 {
		return "", "", fmt.Errorf("parse %q: %w", item, ErrMalformedPair)
	}
	key, value, _ := strings.Cut(item, "=")
	return key, value, nil
}
