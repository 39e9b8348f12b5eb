package assoc

import (
	"github.com/mesh-intelligence/atlas/internal/ordering"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

// Many maps an owner to an ordered set of children, and each child back to
// its single owner.
type Many struct {
	children map[uid.UID]*ordering.List
	owner    map[uid.UID]uid.UID
}

// NewMany returns an empty multi-valued map.
func NewMany() *Many {
	return &Many{
		children: make(map[uid.UID]*ordering.List),
		owner:    make(map[uid.UID]uid.UID),
	}
}

// Add appends child to owner's list. A child already held by another owner
// moves, so the inverse stays a function. Adding a child to its current
// owner is a no-op that succeeds.
func (m *Many) Add(owner, child uid.UID) bool {
	if owner.IsNil() || child.IsNil() {
		return false
	}
	if prev, ok := m.owner[child]; ok {
		if prev == owner {
			return true
		}
		if l, ok := m.children[prev]; ok {
			l.Remove(child)
		}
	}
	l, ok := m.children[owner]
	if !ok {
		l = &ordering.List{}
		m.children[owner] = l
	}
	l.Append(child)
	m.owner[child] = owner
	return true
}

// Remove detaches child from its owner, both directions.
func (m *Many) Remove(child uid.UID) bool {
	owner, ok := m.owner[child]
	if !ok {
		return false
	}
	delete(m.owner, child)
	if l, ok := m.children[owner]; ok {
		l.Remove(child)
	}
	return true
}

// DeleteOwner drops owner's child list. The children keep their inverse
// entries, which now name a missing owner; callers that unload an owner
// rely on this and do not cascade.
func (m *Many) DeleteOwner(owner uid.UID) bool {
	if _, ok := m.children[owner]; !ok {
		return false
	}
	delete(m.children, owner)
	return true
}

// Children returns owner's children in order.
func (m *Many) Children(owner uid.UID) []uid.UID {
	l, ok := m.children[owner]
	if !ok {
		return nil
	}
	return l.UIDs()
}

// Owner returns the owner of child.
func (m *Many) Owner(child uid.UID) (uid.UID, bool) {
	o, ok := m.owner[child]
	return o, ok
}

// List returns owner's ordered list for in-place moves, or nil.
func (m *Many) List(owner uid.UID) *ordering.List {
	return m.children[owner]
}

// Reorder replaces owner's order with a permutation of it.
func (m *Many) Reorder(owner uid.UID, ids []uid.UID) bool {
	l, ok := m.children[owner]
	if !ok {
		return len(ids) == 0
	}
	return l.Replace(ids)
}
