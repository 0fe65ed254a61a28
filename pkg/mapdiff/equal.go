package mapdiff

import "reflect"

// ValueEqual is the default equality contract for parsed document values.
// It is deep structural equality, not a diff: a nested difference anywhere
// inside a composite value makes the whole value unequal.
//
// Scalars (the common case after JSON parsing) are compared without
// reflection; maps, slices and anything else fall back to
// [reflect.DeepEqual].
func ValueEqual(a, b any) bool {
	switch va := a.(type) {
	case string:
		vb, ok := b.(string)
		return ok && va == vb
	case float64:
		vb, ok := b.(float64)
		return ok && va == vb
	case int:
		vb, ok := b.(int)
		return ok && va == vb
	case int64:
		vb, ok := b.(int64)
		return ok && va == vb
	case bool:
		vb, ok := b.(bool)
		return ok && va == vb
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}
