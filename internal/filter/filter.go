// Package filter selects diff records with a compiled expr-lang expression,
// e.g. `Changed()`, `Kind("renamed", "removed")` or `KeyPrefix("metadata.")`.
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/kvdiff-project/kvdiff/pkg/mapdiff"
)

// Env is the expression environment for a single record. Field access
// (`Record.Key`, `Record.NewKey`) works alongside the helper methods.
type Env struct {
	Record mapdiff.Record[any]
}

func (e Env) All() bool {
	return true
}

func (e Env) None() bool {
	return false
}

// Changed reports whether the record is anything but Unchanged.
func (e Env) Changed() bool {
	return e.Record.IsChange()
}

// Kind matches the record kind against any of the given names
// ("unchanged", "modified", "renamed", "removed", "added").
func (e Env) Kind(names ...string) bool {
	if len(names) == 0 {
		return true
	}
	kind := e.Record.Kind.String()
	for _, name := range names {
		if strings.EqualFold(name, kind) {
			return true
		}
	}
	return false
}

// Key matches the record key exactly; for renames both sides count.
func (e Env) Key(keys ...string) bool {
	if len(keys) == 0 {
		return true
	}
	for _, key := range keys {
		if key == e.Record.Key || (e.Record.NewKey != "" && key == e.Record.NewKey) {
			return true
		}
	}
	return false
}

// KeyPrefix matches the record key (either side of a rename) by prefix.
func (e Env) KeyPrefix(prefixes ...string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(e.Record.Key, prefix) ||
			(e.Record.NewKey != "" && strings.HasPrefix(e.Record.NewKey, prefix)) {
			return true
		}
	}
	return false
}

// Filter is a compiled record predicate.
type Filter struct {
	program *vm.Program
}

// Compile builds a Filter from an expression source. The expression must
// evaluate to a boolean.
func Compile(src string) (*Filter, error) {
	program, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling filter expression: %w", err)
	}
	return &Filter{program: program}, nil
}

// Match evaluates the filter against one record.
func (f *Filter) Match(record mapdiff.Record[any]) (bool, error) {
	out, err := expr.Run(f.program, Env{Record: record})
	if err != nil {
		return false, fmt.Errorf("evaluating filter expression: %w", err)
	}
	return out.(bool), nil
}

// Apply keeps the records the filter matches, preserving order.
func (f *Filter) Apply(records []mapdiff.Record[any]) ([]mapdiff.Record[any], error) {
	out := make([]mapdiff.Record[any], 0, len(records))
	for _, record := range records {
		ok, err := f.Match(record)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, record)
		}
	}
	return out, nil
}
