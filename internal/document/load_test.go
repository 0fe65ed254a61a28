package document_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kvdiff-project/kvdiff/internal/document"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "doc.json", `{"name": "svc", "replicas": 3, "debug": false}`)
	doc, err := document.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := map[string]any{"name": "svc", "replicas": float64(3), "debug": false}
	if !reflect.DeepEqual(map[string]any(doc), want) {
		t.Fatalf("want %v, got %v", want, doc)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "doc.yaml", "name: svc\nreplicas: 3\nlabels:\n  tier: web\n")
	doc, err := document.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// YAML goes through a JSON round-trip, so numbers land as float64.
	want := map[string]any{
		"name":     "svc",
		"replicas": float64(3),
		"labels":   map[string]any{"tier": "web"},
	}
	if !reflect.DeepEqual(map[string]any(doc), want) {
		t.Fatalf("want %v, got %v", want, doc)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.json", "")
	doc, err := document.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc) != 0 {
		t.Fatalf("empty file should yield empty mapping, got %v", doc)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := document.Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, document.ErrUnreadable) {
		t.Fatalf("want ErrUnreadable, got %v", err)
	}
	if errors.Is(err, document.ErrMalformed) {
		t.Fatalf("read failure must not also be a parse failure: %v", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeFile(t, "broken.json", `{"name": `)
	_, err := document.Load(path)
	if !errors.Is(err, document.ErrMalformed) {
		t.Fatalf("want ErrMalformed, got %v", err)
	}
	if errors.Is(err, document.ErrUnreadable) {
		t.Fatalf("parse failure must not also be a read failure: %v", err)
	}
}

func TestLoadNonObjectTopLevel(t *testing.T) {
	for name, content := range map[string]string{
		"scalar.json": `"just a string"`,
		"list.json":   `[1, 2, 3]`,
	} {
		path := writeFile(t, name, content)
		if _, err := document.Load(path); !errors.Is(err, document.ErrMalformed) {
			t.Fatalf("%s: want ErrMalformed, got %v", name, err)
		}
	}
}
