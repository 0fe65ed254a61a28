// Package document loads key-value documents from disk into the in-memory
// form the diff engine consumes. Loading can fail in two distinct ways —
// unreadable source vs. unparseable content — and both are reported to the
// caller before any diffing starts.
package document

import (
	"errors"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/kvdiff-project/kvdiff/pkg/mapdiff"
)

var (
	// ErrUnreadable wraps I/O failures while reading the source.
	ErrUnreadable = errors.New("document unreadable")
	// ErrMalformed wraps parse failures, including a non-object top level.
	ErrMalformed = errors.New("document malformed")
)

// Load reads the file at path and parses it into a mapping. JSON and YAML
// are both accepted; YAML is converted to JSON first, so values come out as
// ordinary JSON types (string, float64, bool, nil, map[string]any, []any).
//
// The top level must be an object. An empty file yields an empty mapping.
func Load(path string) (mapdiff.Mapping[any], error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	return Parse(path, raw)
}

// Parse parses raw document bytes. The name is only used in error messages.
func Parse(name string, raw []byte) (mapdiff.Mapping[any], error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}
