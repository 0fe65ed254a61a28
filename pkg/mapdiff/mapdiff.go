// Package mapdiff classifies every key of two flat key-value mappings into
// one diff record: unchanged, value modified, entry added, entry removed, or
// — when a removed key and an added key carry an equal value — a single
// "key modified" rename record instead of an unrelated delete+insert pair.
//
// Values are opaque: two unequal values yield one ValueModified record, the
// engine never descends into them. Equality is a pluggable contract; see
// [ValueEqual] for the default over parsed JSON values.
//
// All iteration is key-sorted, so the same inputs always produce the same
// record sequence, including the rename tie-break (first equal value in
// ascending key order wins).
package mapdiff

// Mapping is a finite collection of unique string keys, each holding one value.
type Mapping[V any] map[string]V

// EqualFunc reports whether two values are equal. It must be reflexive and
// symmetric; the engine calls it for classification and rename matching alike.
type EqualFunc[V any] func(a, b V) bool
