package bbolt

import (
	"encoding/binary"

	"go.etcd.io/bbolt"

	"github.com/kvdiff-project/kvdiff/internal/store"
)

// keySourceRevision builds the `<source>|bigendian(rev)` bucket key. The
// big-endian suffix keeps a source's revisions adjacent and in ID order
// under bbolt's byte-wise cursor.
func keySourceRevision(sourceID string, id store.RevisionID) []byte {
	buf := make([]byte, len(sourceID)+1+8)
	copy(buf, sourceID)
	buf[len(sourceID)] = '|'
	binary.BigEndian.PutUint64(buf[len(sourceID)+1:], uint64(id))
	return buf
}

// claimNextRevision atomically increments the per-source counter in
// bucketLatest *and* updates the in-memory cache. It returns the newly
// assigned revision number.
func (s *Store) claimNextRevision(tx *bbolt.Tx, sourceID string) (store.RevisionID, error) {
	latest := tx.Bucket(bucketLatest)

	var next uint64
	if raw := latest.Get([]byte(sourceID)); raw != nil {
		next = binary.BigEndian.Uint64(raw)
	}
	revisionNumber := store.RevisionID(next)
	next++

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, next)
	if err := latest.Put([]byte(sourceID), buf); err != nil {
		return 0, err
	}

	s.nextRevisionCounterMutex.Lock()
	s.nextRevisionCounter[sourceID] = next
	s.nextRevisionCounterMutex.Unlock()

	return revisionNumber, nil
}
