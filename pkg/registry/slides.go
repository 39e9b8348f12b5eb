package registry

import (
	"github.com/mesh-intelligence/atlas/internal/ordering"
	"github.com/mesh-intelligence/atlas/internal/selection"
	"github.com/mesh-intelligence/atlas/pkg/types"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

// InsertSlide stores a slide and appends it to the top of the slide stack.
// Fires SlideData then SlideStack (created).
func (r *Registry) InsertSlide(cpu *types.Slide, gpu *types.SlideGPU) (uid.UID, bool) {
	id, ok := insertRecord(r.slides, cpu, gpu)
	if !ok {
		return uid.Nil, false
	}
	r.slideOrder.Append(id)
	emit(r.signals.SlideData, CreatedEvent, id)
	emit(r.signals.SlideStack, CreatedEvent, id)
	return id, true
}

// UnloadSlide removes a slide from the store and the stack, and drops its
// landmark group and annotation lists; those records stay loaded. If the
// slide was active, the slide just below it in the stack becomes active (the
// bottom slide when it was already at the bottom), or none if the stack is
// now empty. Fires SlideData, SlideStack (deleted), then ActiveSlide
// (activated) when the selection moved.
func (r *Registry) UnloadSlide(id uid.UID) bool {
	prevIndex, _ := r.slideOrder.Index(id)
	if !r.slides.Remove(id) {
		return false
	}
	r.slideOrder.Remove(id)
	r.slideLandmarkGroups.DeleteOwner(id)
	r.slideAnnotations.DeleteOwner(id)

	activeMoved := false
	if r.activeSlide.Is(id) {
		next, ok := selection.SlideAfterRemoval(prevIndex, r.slideOrder.UIDs())
		if ok {
			r.activeSlide.Set(next, r.slides.Contains)
		} else {
			r.activeSlide.Clear()
		}
		activeMoved = true
	}

	emit(r.signals.SlideData, DeletedEvent, id)
	emit(r.signals.SlideStack, DeletedEvent, id)
	if activeMoved {
		next, _ := r.activeSlide.Get()
		emit(r.signals.ActiveSlide, ActivatedEvent, next)
	}
	return true
}

// Slide returns a weak handle to a slide.
func (r *Registry) Slide(id uid.UID) (SlideHandle, bool) {
	return r.slides.Handle(id)
}

// UpdateSlide edits the CPU payload of a slide in place. Fires SlideData
// (updated).
func (r *Registry) UpdateSlide(id uid.UID, fn func(*types.Slide)) bool {
	if !updateRecord(r.slides, id, fn) {
		return false
	}
	emit(r.signals.SlideData, UpdatedEvent, id)
	return true
}

// NumSlides returns the number of loaded slides.
func (r *Registry) NumSlides() int {
	return r.slides.Len()
}

// OrderedSlideUIDs returns the slide stack from bottom to top.
func (r *Registry) OrderedSlideUIDs() []uid.UID {
	return r.slideOrder.UIDs()
}

// SlideIndex returns the stack position of a slide.
func (r *Registry) SlideIndex(id uid.UID) (int, bool) {
	return r.slideOrder.Index(id)
}

// SlideUID returns the slide at stack position i.
func (r *Registry) SlideUID(i int) (uid.UID, bool) {
	return r.slideOrder.At(i)
}

// SetSlideOrder replaces the stack order with a permutation of it. Fires
// SlideStack (reordered, nil UID).
func (r *Registry) SetSlideOrder(ids []uid.UID) bool {
	if !r.slideOrder.Replace(ids) {
		return false
	}
	emit(r.signals.SlideStack, ReorderedEvent, uid.Nil)
	return true
}

// MoveSlideBackward moves a slide one step down the stack.
func (r *Registry) MoveSlideBackward(id uid.UID) bool {
	return r.moveSlide(id, (*ordering.List).MoveBackward)
}

// MoveSlideForward moves a slide one step up the stack.
func (r *Registry) MoveSlideForward(id uid.UID) bool {
	return r.moveSlide(id, (*ordering.List).MoveForward)
}

// MoveSlideToBack moves a slide to the bottom of the stack.
func (r *Registry) MoveSlideToBack(id uid.UID) bool {
	return r.moveSlide(id, (*ordering.List).MoveToBack)
}

// MoveSlideToFront moves a slide to the top of the stack.
func (r *Registry) MoveSlideToFront(id uid.UID) bool {
	return r.moveSlide(id, (*ordering.List).MoveToFront)
}

// moveSlide applies move and fires SlideStack (reordered).
func (r *Registry) moveSlide(id uid.UID, move func(*ordering.List, uid.UID) bool) bool {
	if !move(&r.slideOrder, id) {
		return false
	}
	emit(r.signals.SlideStack, ReorderedEvent, id)
	return true
}

// ActiveSlide returns the active slide.
func (r *Registry) ActiveSlide() (uid.UID, bool) {
	return r.activeSlide.Get()
}

// SetActiveSlide makes id the active slide. uid.Nil clears the selection;
// an id that is not a loaded slide is rejected. Fires ActiveSlide
// (activated) on success.
func (r *Registry) SetActiveSlide(id uid.UID) bool {
	if !r.activeSlide.Set(id, r.slides.Contains) {
		return false
	}
	emit(r.signals.ActiveSlide, ActivatedEvent, id)
	return true
}
