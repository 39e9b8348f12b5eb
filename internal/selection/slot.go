// Package selection holds the nullable "active" UID slots and the rules for
// reassigning them when the active record is unloaded.
package selection

import "github.com/mesh-intelligence/atlas/pkg/uid"

// Slot holds at most one active UID. The zero value is empty.
type Slot struct {
	id uid.UID
}

// Get returns the active UID, or false when none is set.
func (s *Slot) Get() (uid.UID, bool) {
	return s.id, !s.id.IsNil()
}

// Is reports whether id is the active UID.
func (s *Slot) Is(id uid.UID) bool {
	return !id.IsNil() && s.id == id
}

// Set makes id active. uid.Nil always succeeds and clears the slot; any
// other id succeeds only if exists reports it present, otherwise the slot is
// left unchanged.
func (s *Slot) Set(id uid.UID, exists func(uid.UID) bool) bool {
	if id.IsNil() {
		s.id = uid.Nil
		return true
	}
	if exists == nil || !exists(id) {
		return false
	}
	s.id = id
	return true
}

// Clear empties the slot.
func (s *Slot) Clear() {
	s.id = uid.Nil
}

// SlideAfterRemoval picks the slide to activate after the active one, which
// sat at prevIndex, was removed. remaining is the updated order. The index
// steps down by one, never below zero; an empty stack yields none.
func SlideAfterRemoval(prevIndex int, remaining []uid.UID) (uid.UID, bool) {
	if len(remaining) == 0 {
		return uid.Nil, false
	}
	i := max(prevIndex-1, 0)
	if i >= len(remaining) {
		i = len(remaining) - 1
	}
	return remaining[i], true
}

// ImageAfterRemoval picks any remaining image using pick, which returns an
// arbitrary member of the image store.
func ImageAfterRemoval(pick func() (uid.UID, bool)) (uid.UID, bool) {
	if pick == nil {
		return uid.Nil, false
	}
	return pick()
}

// ParcellationAfterRemoval always clears the slot.
func ParcellationAfterRemoval() (uid.UID, bool) {
	return uid.Nil, false
}
