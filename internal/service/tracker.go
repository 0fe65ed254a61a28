// Package service ties the revision store to the diff engine: committing a
// document stores a snapshot and reports how it differs from the previous
// revision of the same source.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kvdiff-project/kvdiff/internal/store"
	"github.com/kvdiff-project/kvdiff/pkg/mapdiff"
)

// Tracker records document revisions and diffs consecutive states.
type Tracker struct {
	revisions store.RevisionStore
}

// NewTracker creates a new Tracker instance.
func NewTracker(revisions store.RevisionStore) *Tracker {
	return &Tracker{revisions: revisions}
}

// Commit persists doc as a new revision of sourceID and returns it together
// with the diff against the previous revision. A source committed for the
// first time is diffed against an empty mapping, so every key surfaces as an
// added entry.
func (t *Tracker) Commit(
	ctx context.Context,
	sourceID string,
	doc mapdiff.Mapping[any],
) (*store.Revision, []mapdiff.Record[any], error) {
	previous := mapdiff.Mapping[any]{}
	revision := &store.Revision{
		RecordedAt: time.Now().UTC(),
		Document:   doc,
	}

	latest, err := t.revisions.Latest(ctx, sourceID)
	switch {
	case err == nil:
		base, getErr := t.revisions.Get(ctx, sourceID, latest)
		if getErr != nil {
			return nil, nil, fmt.Errorf("loading revision %s: %w", latest, getErr)
		}
		previous = base.Document
		revision.PreviousID = latest
	case errors.Is(err, store.ErrNotFound):
		// first commit for this source
	default:
		return nil, nil, err
	}

	records := mapdiff.DiffValues(previous, doc)

	if err := t.revisions.Save(ctx, sourceID, revision); err != nil {
		return nil, nil, fmt.Errorf("saving revision: %w", err)
	}
	return revision, records, nil
}

// At returns the document stored at revision rev of sourceID.
func (t *Tracker) At(ctx context.Context, sourceID string, rev store.RevisionID) (mapdiff.Mapping[any], error) {
	revision, err := t.revisions.Get(ctx, sourceID, rev)
	if err != nil {
		return nil, err
	}
	return revision.Document, nil
}

// DiffRevisions diffs two stored revisions of the same source.
func (t *Tracker) DiffRevisions(
	ctx context.Context,
	sourceID string,
	from, to store.RevisionID,
) ([]mapdiff.Record[any], error) {
	left, err := t.At(ctx, sourceID, from)
	if err != nil {
		return nil, fmt.Errorf("loading revision %s: %w", from, err)
	}
	right, err := t.At(ctx, sourceID, to)
	if err != nil {
		return nil, fmt.Errorf("loading revision %s: %w", to, err)
	}
	return mapdiff.DiffValues(left, right), nil
}

// History lists the stored revisions of a source in ascending ID order.
func (t *Tracker) History(ctx context.Context, sourceID string) ([]*store.Revision, error) {
	return t.revisions.List(ctx, sourceID)
}
