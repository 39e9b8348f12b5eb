// Package store implements the per-kind entity store: a UID to record map
// that is the sole strong owner of its records. Collaborators only ever get
// weak handles.
package store

import (
	"github.com/mesh-intelligence/atlas/pkg/types"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

// Minter produces fresh UIDs. The registry passes one minter to every store
// so that identities are unique across kinds.
type Minter func() uid.UID

var _ types.Resolver[types.Slide, types.SlideGPU] = (*Store[types.Slide, types.SlideGPU])(nil)

// Store holds every record of one entity kind.
type Store[C, G any] struct {
	kind    types.Kind
	mint    Minter
	records map[uid.UID]*types.Record[C, G]
}

// New creates an empty store for kind. A nil mint uses uid.New.
func New[C, G any](kind types.Kind, mint Minter) *Store[C, G] {
	if mint == nil {
		mint = uid.New
	}
	return &Store[C, G]{
		kind:    kind,
		mint:    mint,
		records: make(map[uid.UID]*types.Record[C, G]),
	}
}

// Kind returns the entity kind this store holds.
func (s *Store[C, G]) Kind() types.Kind {
	return s.kind
}

// Insert mints a UID, assigns it to rec and stores rec. It rejects empty
// records and records that already carry a UID.
func (s *Store[C, G]) Insert(rec *types.Record[C, G]) (uid.UID, bool) {
	if rec.Empty() || !rec.UID().IsNil() {
		return uid.Nil, false
	}
	id := s.mint()
	if id.IsNil() || !rec.Assign(id) {
		return uid.Nil, false
	}
	s.records[id] = rec
	return id, true
}

// Get returns the record for id.
func (s *Store[C, G]) Get(id uid.UID) (*types.Record[C, G], bool) {
	rec, ok := s.records[id]
	return rec, ok
}

// Handle returns a weak handle to id, or false if id is not stored.
func (s *Store[C, G]) Handle(id uid.UID) (types.Handle[C, G], bool) {
	if _, ok := s.records[id]; !ok {
		return types.Handle[C, G]{}, false
	}
	return types.NewHandle[C, G](s, id), true
}

// Contains reports whether id is stored.
func (s *Store[C, G]) Contains(id uid.UID) bool {
	_, ok := s.records[id]
	return ok
}

// Remove drops the record for id. It returns false if id was not stored.
func (s *Store[C, G]) Remove(id uid.UID) bool {
	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	return true
}

// Len returns the number of stored records.
func (s *Store[C, G]) Len() int {
	return len(s.records)
}

// UIDs returns a snapshot of the stored UIDs in no particular order.
func (s *Store[C, G]) UIDs() []uid.UID {
	ids := make([]uid.UID, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	return ids
}

// Any returns an arbitrary stored UID, or false if the store is empty. The
// choice follows map iteration order and is not deterministic.
func (s *Store[C, G]) Any() (uid.UID, bool) {
	for id := range s.records {
		return id, true
	}
	return uid.Nil, false
}
