package mapdiff_test

import (
	"testing"

	"github.com/kvdiff-project/kvdiff/pkg/mapdiff"
)

func TestValueEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"strings equal", "x", "x", true},
		{"strings differ", "x", "y", false},
		{"floats equal", float64(3), float64(3), true},
		{"float vs int", float64(3), 3, false},
		{"bools", true, true, true},
		{"nil both", nil, nil, true},
		{"nil one side", nil, "x", false},
		{"maps equal",
			map[string]any{"a": float64(1), "b": []any{"x"}},
			map[string]any{"a": float64(1), "b": []any{"x"}},
			true},
		{"maps nested differ",
			map[string]any{"a": map[string]any{"deep": float64(1)}},
			map[string]any{"a": map[string]any{"deep": float64(2)}},
			false},
		{"slices order matters", []any{"a", "b"}, []any{"b", "a"}, false},
		{"string vs map", "x", map[string]any{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapdiff.ValueEqual(tc.a, tc.b); got != tc.want {
				t.Fatalf("ValueEqual(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			if got := mapdiff.ValueEqual(tc.b, tc.a); got != tc.want {
				t.Fatalf("ValueEqual not symmetric for (%v, %v)", tc.a, tc.b)
			}
		})
	}
}
