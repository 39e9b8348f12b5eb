// Package ordering keeps the presentation order of registry records: a
// duplicate-free UID sequence maintained independently of store iteration
// order.
package ordering

import (
	"slices"

	"github.com/mesh-intelligence/atlas/pkg/uid"
)

// List is an ordered, duplicate-free sequence of UIDs. The zero value is an
// empty list ready to use.
type List struct {
	ids []uid.UID
}

// Append adds id at the end. It rejects uid.Nil and UIDs already present.
func (l *List) Append(id uid.UID) bool {
	if id.IsNil() || l.Contains(id) {
		return false
	}
	l.ids = append(l.ids, id)
	return true
}

// Remove deletes id, preserving the relative order of the rest.
func (l *List) Remove(id uid.UID) bool {
	i := slices.Index(l.ids, id)
	if i < 0 {
		return false
	}
	l.ids = slices.Delete(l.ids, i, i+1)
	return true
}

// Replace installs ids as the new order. It accepts only a permutation of
// the current contents: same length, no duplicates, same members. Anything
// else returns false and leaves the list unchanged.
func (l *List) Replace(ids []uid.UID) bool {
	if !IsPermutation(l.ids, ids) {
		return false
	}
	l.ids = slices.Clone(ids)
	return true
}

// Index returns the position of id.
func (l *List) Index(id uid.UID) (int, bool) {
	i := slices.Index(l.ids, id)
	return i, i >= 0
}

// At returns the UID at position i.
func (l *List) At(i int) (uid.UID, bool) {
	if i < 0 || i >= len(l.ids) {
		return uid.Nil, false
	}
	return l.ids[i], true
}

// Contains reports whether id is in the list.
func (l *List) Contains(id uid.UID) bool {
	return slices.Contains(l.ids, id)
}

// Len returns the number of UIDs.
func (l *List) Len() int {
	return len(l.ids)
}

// UIDs returns a copy of the order. Callers may modify it freely.
func (l *List) UIDs() []uid.UID {
	return slices.Clone(l.ids)
}

// MoveBackward swaps id with its predecessor. An id already at the front is
// left in place and reported as moved.
func (l *List) MoveBackward(id uid.UID) bool {
	i, ok := l.Index(id)
	if !ok {
		return false
	}
	if i > 0 {
		l.ids[i-1], l.ids[i] = l.ids[i], l.ids[i-1]
	}
	return true
}

// MoveForward swaps id with its successor.
func (l *List) MoveForward(id uid.UID) bool {
	i, ok := l.Index(id)
	if !ok {
		return false
	}
	if i < len(l.ids)-1 {
		l.ids[i], l.ids[i+1] = l.ids[i+1], l.ids[i]
	}
	return true
}

// MoveToBack moves id to position 0.
func (l *List) MoveToBack(id uid.UID) bool {
	i, ok := l.Index(id)
	if !ok {
		return false
	}
	l.ids = slices.Insert(slices.Delete(l.ids, i, i+1), 0, id)
	return true
}

// MoveToFront moves id to the last position.
func (l *List) MoveToFront(id uid.UID) bool {
	i, ok := l.Index(id)
	if !ok {
		return false
	}
	l.ids = append(slices.Delete(l.ids, i, i+1), id)
	return true
}

// IsPermutation reports whether next holds exactly the members of cur, each
// once.
func IsPermutation(cur, next []uid.UID) bool {
	if len(cur) != len(next) {
		return false
	}
	members := make(map[uid.UID]bool, len(cur))
	for _, id := range cur {
		members[id] = true
	}
	seen := make(map[uid.UID]bool, len(next))
	for _, id := range next {
		if !members[id] || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}
