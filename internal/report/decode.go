package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeItems reads a JSON array of GitHub REST objects (as returned by the
// API or `gh api`) into the record type of kind. KindOther keeps the generic
// JSON values.
func DecodeItems(kind Kind, r io.Reader) ([]any, error) {
	switch kind {
	case KindEvent:
		return decodeAll[Event](r)
	case KindIssue, KindPull:
		return decodeAll[Issue](r)
	case KindLabel:
		return decodeAll[Label](r)
	case KindRepository:
		return decodeAll[Repository](r)
	case KindUser:
		return decodeAll[User](r)
	default:
		return decodeAll[any](r)
	}
}

func decodeAll[T any](r io.Reader) ([]any, error) {
	var records []T
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}

	out := make([]any, len(records))
	for i, record := range records {
		out[i] = record
	}
	return out, nil
}
