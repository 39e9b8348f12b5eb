package assoc

import (
	"maps"

	"github.com/mesh-intelligence/atlas/pkg/uid"
)

type keyedRef struct {
	owner uid.UID
	key   int
}

// Keyed maps an owner to children under unique integer keys, and each child
// back to its owner and key.
type Keyed struct {
	entries map[uid.UID]map[int]uid.UID
	inverse map[uid.UID]keyedRef
}

// NewKeyed returns an empty keyed map.
func NewKeyed() *Keyed {
	return &Keyed{
		entries: make(map[uid.UID]map[int]uid.UID),
		inverse: make(map[uid.UID]keyedRef),
	}
}

// Set maps owner[key] to child. A child previously under that key is
// displaced: it loses its inverse entry but is otherwise untouched. The
// displaced UID is returned so callers can decide what to do with it.
func (k *Keyed) Set(owner uid.UID, key int, child uid.UID) (displaced uid.UID, ok bool) {
	if owner.IsNil() || child.IsNil() {
		return uid.Nil, false
	}
	if ref, held := k.inverse[child]; held {
		if ref.owner == owner && ref.key == key {
			return uid.Nil, true
		}
		k.detach(child, ref)
	}
	e, exists := k.entries[owner]
	if !exists {
		e = make(map[int]uid.UID)
		k.entries[owner] = e
	}
	if prev, taken := e[key]; taken {
		delete(k.inverse, prev)
		displaced = prev
	}
	e[key] = child
	k.inverse[child] = keyedRef{owner: owner, key: key}
	return displaced, true
}

// Remove detaches child from its owner, both directions.
func (k *Keyed) Remove(child uid.UID) bool {
	ref, ok := k.inverse[child]
	if !ok {
		return false
	}
	k.detach(child, ref)
	return true
}

func (k *Keyed) detach(child uid.UID, ref keyedRef) {
	delete(k.inverse, child)
	if e, ok := k.entries[ref.owner]; ok && e[ref.key] == child {
		delete(e, ref.key)
	}
}

// DeleteOwner drops owner's entries. Children keep their inverse entries.
func (k *Keyed) DeleteOwner(owner uid.UID) bool {
	if _, ok := k.entries[owner]; !ok {
		return false
	}
	delete(k.entries, owner)
	return true
}

// Entries returns a copy of owner's key to child map.
func (k *Keyed) Entries(owner uid.UID) map[int]uid.UID {
	e, ok := k.entries[owner]
	if !ok {
		return map[int]uid.UID{}
	}
	return maps.Clone(e)
}

// Get returns the child under owner[key].
func (k *Keyed) Get(owner uid.UID, key int) (uid.UID, bool) {
	child, ok := k.entries[owner][key]
	return child, ok
}

// Owner returns the owner and key of child.
func (k *Keyed) Owner(child uid.UID) (uid.UID, int, bool) {
	ref, ok := k.inverse[child]
	return ref.owner, ref.key, ok
}
