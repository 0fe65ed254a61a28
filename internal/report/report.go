// Package report renders an ordered diff record sequence for humans (styled
// text lines) or machines (JSON). The engine imposes no formatting; all of it
// lives here.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize/english"

	"github.com/kvdiff-project/kvdiff/pkg/mapdiff"
)

// Renderer writes one line per record.
type Renderer struct {
	Theme Theme
	// ShowUnchanged also prints the Unchanged records (off by default, they
	// are noise for most consumers).
	ShowUnchanged bool
}

// Render writes the text report.
func (r Renderer) Render(w io.Writer, records []mapdiff.Record[any]) error {
	for _, record := range records {
		if record.Kind == mapdiff.KindUnchanged && !r.ShowUnchanged {
			continue
		}
		if _, err := io.WriteString(w, r.line(record)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func (r Renderer) line(record mapdiff.Record[any]) string {
	t := r.Theme
	switch record.Kind {
	case mapdiff.KindUnchanged:
		return t.Unchanged.Render(fmt.Sprintf("  %s: %s", record.Key, formatValue(record.Value)))
	case mapdiff.KindEntryAdded:
		return t.Added.Render(fmt.Sprintf("+ %s: %s", record.Key, formatValue(record.Value)))
	case mapdiff.KindEntryRemoved:
		return t.Removed.Render(fmt.Sprintf("- %s: %s", record.Key, formatValue(record.Value)))
	case mapdiff.KindValueModified:
		return t.Modified.Render(fmt.Sprintf("~ %s: %s -> %s",
			record.Key, formatValue(record.OldValue), formatValue(record.NewValue)))
	case mapdiff.KindKeyModified:
		return t.Renamed.Render(fmt.Sprintf("> %s -> %s: %s",
			record.Key, record.NewKey, formatValue(record.Value)))
	}
	return fmt.Sprintf("? %s", record.Key)
}

// formatValue renders a value as compact JSON, falling back to %v for
// anything the encoder rejects.
func formatValue(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}

// Summary returns a one-line overview, e.g. "3 changes across 12 keys".
func Summary(records []mapdiff.Record[any]) string {
	changed := len(mapdiff.Changes(records))
	if changed == 0 {
		return fmt.Sprintf("no changes across %s", english.Plural(len(records), "key", ""))
	}
	return fmt.Sprintf("%s across %s",
		english.Plural(changed, "change", ""),
		english.Plural(len(records), "key", ""))
}

// recordJSON is the wire shape for one record. Only the fields that are
// meaningful for the kind are emitted.
type recordJSON struct {
	Kind     string `json:"kind"`
	Key      string `json:"key"`
	NewKey   string `json:"newKey,omitempty"`
	Value    any    `json:"value,omitempty"`
	OldValue any    `json:"oldValue,omitempty"`
	NewValue any    `json:"newValue,omitempty"`
}

// RenderJSON writes the records as an indented JSON array.
func RenderJSON(w io.Writer, records []mapdiff.Record[any]) error {
	out := make([]recordJSON, 0, len(records))
	for _, record := range records {
		entry := recordJSON{Kind: record.Kind.String(), Key: record.Key, NewKey: record.NewKey}
		switch record.Kind {
		case mapdiff.KindValueModified:
			entry.OldValue = record.OldValue
			entry.NewValue = record.NewValue
		default:
			entry.Value = record.Value
		}
		out = append(out, entry)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
