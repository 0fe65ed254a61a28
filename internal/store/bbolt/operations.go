package bbolt

import (
	"bytes"
	"context"
	"encoding/binary"

	"go.etcd.io/bbolt"

	"github.com/kvdiff-project/kvdiff/internal/store"
)

// Save stores a full revision and bumps the per-source counter.
func (s *Store) Save(
	_ context.Context,
	sourceID string,
	revision *store.Revision,
) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		revNum, err := s.claimNextRevision(tx, sourceID)
		if err != nil {
			return err
		}
		revision.ID = revNum

		payload, err := s.codec.Marshal(revision)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketRevisions).Put(keySourceRevision(sourceID, revNum), payload)
	})
}

func (s *Store) Get(_ context.Context, sourceID string, rev store.RevisionID) (*store.Revision, error) {
	var revision store.Revision
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketRevisions).Get(keySourceRevision(sourceID, rev))
		if v == nil {
			return store.ErrNotFound
		}
		return s.codec.Unmarshal(v, &revision)
	})
	if err != nil {
		return nil, err
	}
	return &revision, nil
}

// Latest returns the highest committed revision for sourceID.
func (s *Store) Latest(_ context.Context, sourceID string) (store.RevisionID, error) {
	// check cache first
	s.nextRevisionCounterMutex.RLock()
	if next, ok := s.nextRevisionCounter[sourceID]; ok {
		s.nextRevisionCounterMutex.RUnlock()
		return store.RevisionID(next - 1), nil
	}
	s.nextRevisionCounterMutex.RUnlock()

	var next uint64
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketLatest).Get([]byte(sourceID))
		if v == nil {
			return store.ErrNotFound
		}
		next = binary.BigEndian.Uint64(v)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.nextRevisionCounterMutex.Lock()
	s.nextRevisionCounter[sourceID] = next
	s.nextRevisionCounterMutex.Unlock()
	return store.RevisionID(next - 1), nil
}

// List walks the source's key range with a cursor; keys are adjacent and
// ID-ordered thanks to the big-endian suffix.
func (s *Store) List(_ context.Context, sourceID string) ([]*store.Revision, error) {
	prefix := append([]byte(sourceID), '|')
	var revisions []*store.Revision
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketRevisions).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var revision store.Revision
			if err := s.codec.Unmarshal(v, &revision); err != nil {
				return err
			}
			revisions = append(revisions, &revision)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return revisions, nil
}
