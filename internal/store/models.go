package store

import (
	"fmt"
	"time"
)

type RevisionID uint64

func (id RevisionID) String() string {
	return fmt.Sprintf("%08x", uint64(id))
}

// Revision is one full snapshot of a source document. Revisions are
// immutable once saved; only Save assigns the ID.
type Revision struct {
	// ID of the revision, assigned by the store.
	ID RevisionID `msgpack:"i" json:"id"`
	// PreviousID is the revision this one was diffed against. Zero for the
	// first revision of a source.
	PreviousID RevisionID `msgpack:"p,omitempty" json:"previousID,omitempty"`
	// RecordedAt is when the revision was committed.
	RecordedAt time.Time `msgpack:"t" json:"recordedAt"`
	// Document is the full parsed document at this revision.
	Document map[string]any `msgpack:"d" json:"document"`
}
