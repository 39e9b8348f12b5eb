package assoc

import "github.com/mesh-intelligence/atlas/pkg/uid"

// One maps an owner to at most one target.
type One struct {
	m map[uid.UID]uid.UID
}

// NewOne returns an empty single-valued map.
func NewOne() *One {
	return &One{m: make(map[uid.UID]uid.UID)}
}

// Set maps a to b, replacing any earlier target.
func (o *One) Set(a, b uid.UID) {
	o.m[a] = b
}

// Get returns the target of a.
func (o *One) Get(a uid.UID) (uid.UID, bool) {
	b, ok := o.m[a]
	return b, ok
}

// Delete drops the entry keyed by a.
func (o *One) Delete(a uid.UID) bool {
	if _, ok := o.m[a]; !ok {
		return false
	}
	delete(o.m, a)
	return true
}

// KeysFor returns every owner mapped to b, in no particular order.
func (o *One) KeysFor(b uid.UID) []uid.UID {
	var keys []uid.UID
	for a, target := range o.m {
		if target == b {
			keys = append(keys, a)
		}
	}
	return keys
}

// Len returns the number of entries.
func (o *One) Len() int {
	return len(o.m)
}
