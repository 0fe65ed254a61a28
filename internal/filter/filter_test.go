package filter_test

import (
	"testing"

	"github.com/kvdiff-project/kvdiff/internal/filter"
	"github.com/kvdiff-project/kvdiff/pkg/mapdiff"
)

var records = []mapdiff.Record[any]{
	mapdiff.Unchanged[any]("app", "kvdiff"),
	mapdiff.ValueModified[any]("replicas", float64(2), float64(3)),
	mapdiff.KeyModified[any]("metadata.owner", "metadata.team", "core"),
	mapdiff.EntryRemoved[any]("legacy", true),
	mapdiff.EntryAdded[any]("metadata.labels", "x"),
}

func TestCompileError(t *testing.T) {
	if _, err := filter.Compile("Kind("); err == nil {
		t.Fatal("want compile error for broken expression")
	}
	// non-boolean result must be rejected at compile time
	if _, err := filter.Compile(`Record.Key`); err == nil {
		t.Fatal("want compile error for non-boolean expression")
	}
}

func TestApply(t *testing.T) {
	cases := []struct {
		expr string
		want []string // keys of surviving records
	}{
		{`All()`, []string{"app", "replicas", "metadata.owner", "legacy", "metadata.labels"}},
		{`None()`, []string{}},
		{`Changed()`, []string{"replicas", "metadata.owner", "legacy", "metadata.labels"}},
		{`Kind("renamed")`, []string{"metadata.owner"}},
		{`Kind("removed", "added")`, []string{"legacy", "metadata.labels"}},
		{`Key("metadata.team")`, []string{"metadata.owner"}}, // rename matches on its new key too
		{`KeyPrefix("metadata.")`, []string{"metadata.owner", "metadata.labels"}},
		{`Changed() && !Kind("renamed")`, []string{"replicas", "legacy", "metadata.labels"}},
		{`Record.Key == "replicas"`, []string{"replicas"}},
	}
	for _, tc := range cases {
		f, err := filter.Compile(tc.expr)
		if err != nil {
			t.Fatalf("%s: compile: %v", tc.expr, err)
		}
		got, err := f.Apply(records)
		if err != nil {
			t.Fatalf("%s: apply: %v", tc.expr, err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("%s: want %d records, got %v", tc.expr, len(tc.want), got)
		}
		for i, record := range got {
			if record.Key != tc.want[i] {
				t.Fatalf("%s: position %d: want key %q, got %q", tc.expr, i, tc.want[i], record.Key)
			}
		}
	}
}
