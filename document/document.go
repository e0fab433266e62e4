package document

import (
	"fmt"

	"github.com/go-json-experiment/json"
)

// Fragment is the unwrapped attribute/association map produced for a single
// object. Values nest as fragments, slices, and scalars.
type Fragment map[string]any

// Document is a finished top-level serialization result: the root-wrapped
// fragment plus any side-loaded entity buckets merged alongside it.
type Document map[string]any

// Merge copies every key of other into d. Keys already present in d win,
// so callers install side-loaded buckets first and the root key last.
func (d Document) Merge(other Document) {
	for k, v := range other {
		if _, ok := d[k]; !ok {
			d[k] = v
		}
	}
}

// Set assigns a key unconditionally, replacing any bucket that collided
// with it.
func (d Document) Set(key string, v any) {
	d[key] = v
}

// Marshal encodes a document, fragment, or bare array with deterministic
// key ordering, so two serializations of the same graph are byte-identical.
func Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v, json.Deterministic(true))
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	return data, nil
}
