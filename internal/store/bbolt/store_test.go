package bbolt

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kvdiff-project/kvdiff/internal/store"
)

// handy constants -----------------------------------------------------------

var (
	ctx = context.Background()
	id  = "config.json"
)

// TestNewAndBuckets checks that the DB opens and buckets exist.
func TestNewAndBuckets(t *testing.T) {
	dir := t.TempDir()
	s, err := New(filepath.Join(dir, "db.bb"), nil, false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	// verify buckets truly created in file
	info, _ := os.Stat(s.db.Path())
	if info.Size() == 0 {
		t.Fatal("DB file should not be empty")
	}
}

// TestSaveGetRoundtrip covers claimNextRevision, Save, Get and Latest.
func TestSaveGetRoundtrip(t *testing.T) {
	dir := t.TempDir()
	s, _ := New(filepath.Join(dir, "db.bb"), nil, false)
	t.Cleanup(func() { _ = s.Close() })

	if _, err := s.Latest(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("latest on empty store: want ErrNotFound, got %v", err)
	}

	rev0 := &store.Revision{
		RecordedAt: time.Now().UTC().Truncate(time.Second),
		Document:   map[string]any{"foo": "bar"},
	}
	if err := s.Save(ctx, id, rev0); err != nil {
		t.Fatalf("save rev0: %v", err)
	}
	if rev0.ID != 0 {
		t.Fatalf("first revision should have ID 0, got %d", rev0.ID)
	}

	rev1 := &store.Revision{
		PreviousID: rev0.ID,
		RecordedAt: time.Now().UTC().Truncate(time.Second),
		Document:   map[string]any{"foo": "baz"},
	}
	if err := s.Save(ctx, id, rev1); err != nil {
		t.Fatalf("save rev1: %v", err)
	}
	if rev1.ID != 1 {
		t.Fatalf("second revision should have ID 1, got %d", rev1.ID)
	}

	latest, err := s.Latest(ctx, id)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest != 1 {
		t.Fatalf("latest want 1, got %d", latest)
	}

	got, err := s.Get(ctx, id, 0)
	if err != nil {
		t.Fatalf("get rev0: %v", err)
	}
	if got.Document["foo"] != "bar" {
		t.Fatalf("rev0 document mangled: %v", got.Document)
	}

	if _, err := s.Get(ctx, id, 99); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("get missing rev: want ErrNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	s, _ := New(filepath.Join(dir, "db.bb"), nil, false)
	t.Cleanup(func() { _ = s.Close() })

	for i := 0; i < 5; i++ {
		err := s.Save(ctx, id, &store.Revision{Document: map[string]any{"n": i}})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	// another source must not leak into the listing
	_ = s.Save(ctx, "other.json", &store.Revision{Document: map[string]any{"x": 1}})

	revisions, err := s.List(ctx, id)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(revisions) != 5 {
		t.Fatalf("want 5 revisions, got %d", len(revisions))
	}
	for i, revision := range revisions {
		if revision.ID != store.RevisionID(i) {
			t.Fatalf("position %d: want ID %d, got %d", i, i, revision.ID)
		}
	}
}

// TestConcurrentClaims ensures claimNextRevision is atomic.
func TestConcurrentClaims(t *testing.T) {
	dir := t.TempDir()
	s, _ := New(filepath.Join(dir, "db.bb"), nil, false)
	t.Cleanup(func() { _ = s.Close() })

	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func() {
			errs <- s.Save(ctx, id, &store.Revision{Document: map[string]any{"x": i}})
		}()
	}
	for i := 0; i < 20; i++ {
		if e := <-errs; e != nil {
			t.Fatalf("concurrent Save failed: %v", e)
		}
	}

	if latest, _ := s.Latest(ctx, id); latest != 19 {
		t.Fatalf("after 20 writes, latest should be 19, got %d", latest)
	}
}

// TestPersistedValues verifies that bytes written are real MessagePack.
func TestPersistedValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.bb")
	s, _ := New(path, nil, true)
	_ = s.Save(ctx, id, &store.Revision{Document: map[string]any{"k": "v"}})
	_ = s.Close()

	// reopen raw file and search for the msgpack fixstr "k"
	blob, _ := os.ReadFile(path)
	if !bytes.Contains(blob, []byte{0xa1, 'k'}) {
		t.Fatalf("file does not appear to contain msgpack payload")
	}
}
