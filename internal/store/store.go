// Package store persists document revisions so a source can be diffed
// against the state it had when it was last committed.
package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// RevisionStore stores full document snapshots per source.
type RevisionStore interface {
	// Get returns revision rev of sourceID, or ErrNotFound.
	Get(ctx context.Context, sourceID string, rev RevisionID) (*Revision, error)

	// Save persists a new revision and assigns its ID.
	Save(ctx context.Context, sourceID string, revision *Revision) error

	// Latest returns the highest committed revision ID for sourceID,
	// or ErrNotFound if nothing was committed yet.
	Latest(ctx context.Context, sourceID string) (RevisionID, error)

	// List returns every stored revision of sourceID in ascending ID order.
	List(ctx context.Context, sourceID string) ([]*Revision, error)

	Close() error
}
