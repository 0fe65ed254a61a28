package mapdiff

import "slices"

// Diff computes one record for every key in the union of [left] and [right].
//
// Keys present on both sides classify immediately (equal under eq →
// Unchanged, otherwise ValueModified). Keys present on one side only become
// rename candidates first: a removed key whose value equals a still-unmatched
// added key's value collapses into a single KeyModified record. Matching is
// one-to-one and first-match-wins in ascending key order on both pools, so
// repeated runs on the same inputs yield the same pairing.
//
// The returned slice is ordered: Unchanged and ValueModified ascending by
// key, then KeyModified and EntryRemoved ascending by left-side key, then
// the remaining EntryAdded ascending by key.
func Diff[V any](left, right Mapping[V], eq EqualFunc[V]) []Record[V] {
	allKeys := make([]string, 0, len(left)+len(right))
	for key := range left {
		allKeys = append(allKeys, key)
	}
	for key := range right {
		if _, shared := left[key]; !shared {
			allKeys = append(allKeys, key)
		}
	}
	slices.Sort(allKeys)

	records := make([]Record[V], 0, len(allKeys))
	var removed, added []Record[V] // candidate pools, key-sorted by construction

	for _, key := range allKeys {
		leftValue, inLeft := left[key]
		rightValue, inRight := right[key]
		switch {
		case inLeft && inRight:
			if eq(leftValue, rightValue) {
				records = append(records, Unchanged(key, leftValue))
			} else {
				records = append(records, ValueModified(key, leftValue, rightValue))
			}
		case inLeft:
			removed = append(removed, EntryRemoved(key, leftValue))
		case inRight:
			added = append(added, EntryAdded(key, rightValue))
		default:
			panic("mapdiff: enumerated key present in neither mapping")
		}
	}

	// Reconciliation pass: pair each removed candidate with the first added
	// candidate carrying an equal value. A matched added entry leaves the
	// pool so it cannot be reused; the delete preserves pool order.
	for _, entry := range removed {
		matched := -1
		for i, candidate := range added {
			if eq(entry.Value, candidate.Value) {
				matched = i
				break
			}
		}
		if matched < 0 {
			records = append(records, entry)
			continue
		}
		records = append(records, KeyModified(entry.Key, added[matched].Key, entry.Value))
		added = slices.Delete(added, matched, matched+1)
	}

	return append(records, added...)
}

// DiffValues diffs two parsed-document mappings under the default
// [ValueEqual] contract.
func DiffValues(left, right Mapping[any]) []Record[any] {
	return Diff(left, right, ValueEqual)
}
