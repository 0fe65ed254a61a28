package mapdiff

// Kind tags a [Record] with the outcome of comparing one key (or key pair).
type Kind uint8

const (
	KindUnchanged Kind = iota
	KindValueModified
	KindKeyModified
	KindEntryRemoved
	KindEntryAdded
)

func (k Kind) String() string {
	switch k {
	case KindUnchanged:
		return "unchanged"
	case KindValueModified:
		return "modified"
	case KindKeyModified:
		return "renamed"
	case KindEntryRemoved:
		return "removed"
	case KindEntryAdded:
		return "added"
	}
	return "unknown"
}

// Record is one classified outcome. Which fields are meaningful depends on
// Kind:
//
//   - KindUnchanged, KindEntryAdded, KindEntryRemoved: Key and Value.
//   - KindValueModified: Key, OldValue and NewValue.
//   - KindKeyModified: Key (the key on the left side), NewKey (the key on the
//     right side) and Value, the shared value. Key and NewKey always differ.
//
// Records are plain values with no identity beyond their fields; use the
// constructors below so unused fields stay zero.
type Record[V any] struct {
	Kind   Kind
	Key    string
	NewKey string

	Value    V
	OldValue V
	NewValue V
}

// Unchanged records a key present on both sides with equal values.
func Unchanged[V any](key string, value V) Record[V] {
	return Record[V]{Kind: KindUnchanged, Key: key, Value: value}
}

// EntryAdded records a key present only on the right side.
func EntryAdded[V any](key string, value V) Record[V] {
	return Record[V]{Kind: KindEntryAdded, Key: key, Value: value}
}

// EntryRemoved records a key present only on the left side.
func EntryRemoved[V any](key string, value V) Record[V] {
	return Record[V]{Kind: KindEntryRemoved, Key: key, Value: value}
}

// ValueModified records a key present on both sides with unequal values.
func ValueModified[V any](key string, oldValue, newValue V) Record[V] {
	return Record[V]{Kind: KindValueModified, Key: key, OldValue: oldValue, NewValue: newValue}
}

// KeyModified records a removal and an addition reconciled into a rename:
// oldKey is absent from the right mapping, newKey absent from the left, and
// both carried an equal value.
func KeyModified[V any](oldKey, newKey string, value V) Record[V] {
	return Record[V]{Kind: KindKeyModified, Key: oldKey, NewKey: newKey, Value: value}
}

// IsChange reports whether the record describes anything other than an
// unchanged entry.
func (r Record[V]) IsChange() bool {
	return r.Kind != KindUnchanged
}

// Equal reports whether two records describe the same outcome, comparing
// value fields with eq.
func (r Record[V]) Equal(o Record[V], eq EqualFunc[V]) bool {
	return r.Kind == o.Kind &&
		r.Key == o.Key &&
		r.NewKey == o.NewKey &&
		eq(r.Value, o.Value) &&
		eq(r.OldValue, o.OldValue) &&
		eq(r.NewValue, o.NewValue)
}

// RecordsEqual reports whether two diff lists are equal element-for-element in
// the same order.
func RecordsEqual[V any](a, b []Record[V], eq EqualFunc[V]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i], eq) {
			return false
		}
	}
	return true
}

// Changes filters a diff down to the records that describe an actual change.
func Changes[V any](records []Record[V]) []Record[V] {
	var out []Record[V]
	for _, r := range records {
		if r.IsChange() {
			out = append(out, r)
		}
	}
	return out
}
