package registry

import (
	"github.com/mesh-intelligence/atlas/internal/ordering"
	"github.com/mesh-intelligence/atlas/pkg/types"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

// InsertAnnotation stores a slide annotation. Fires SlideAnnotation
// (created).
func (r *Registry) InsertAnnotation(cpu *types.Annotation, gpu *types.AnnotationGPU) (uid.UID, bool) {
	id, ok := insertRecord(r.annotations, cpu, gpu)
	if !ok {
		return uid.Nil, false
	}
	emit(r.signals.SlideAnnotation, CreatedEvent, id)
	return id, true
}

// InsertAnnotationForSlide stores an annotation and appends it to slide's
// annotations in one step. Nothing happens if slide is not loaded. Fires
// SlideAnnotation (created, associated).
func (r *Registry) InsertAnnotationForSlide(slide uid.UID, cpu *types.Annotation, gpu *types.AnnotationGPU) (uid.UID, bool) {
	if !r.slides.Contains(slide) || cpu == nil {
		return uid.Nil, false
	}
	id, ok := r.InsertAnnotation(cpu, gpu)
	if !ok {
		return uid.Nil, false
	}
	r.AssociateAnnotationWithSlide(slide, id)
	return id, true
}

// UnloadAnnotation removes an annotation and detaches it from its slide.
// Fires SlideAnnotation (deleted).
func (r *Registry) UnloadAnnotation(id uid.UID) bool {
	if !r.annotations.Remove(id) {
		return false
	}
	r.slideAnnotations.Remove(id)
	emit(r.signals.SlideAnnotation, DeletedEvent, id)
	return true
}

// Annotation returns a weak handle to an annotation.
func (r *Registry) Annotation(id uid.UID) (AnnotationHandle, bool) {
	return r.annotations.Handle(id)
}

// UpdateAnnotation edits an annotation in place. Fires SlideAnnotation
// (updated).
func (r *Registry) UpdateAnnotation(id uid.UID, fn func(*types.Annotation)) bool {
	if !updateRecord(r.annotations, id, fn) {
		return false
	}
	emit(r.signals.SlideAnnotation, UpdatedEvent, id)
	return true
}

// AnnotationUIDs returns every annotation, in no particular order.
func (r *Registry) AnnotationUIDs() []uid.UID {
	return r.annotations.UIDs()
}

// NumAnnotations returns the number of loaded annotations.
func (r *Registry) NumAnnotations() int {
	return r.annotations.Len()
}

// AssociateAnnotationWithSlide appends ann to slide's annotations, on top
// of the existing ones. Fires SlideAnnotation (associated).
func (r *Registry) AssociateAnnotationWithSlide(slide, ann uid.UID) bool {
	if !r.slides.Contains(slide) || !r.annotations.Contains(ann) {
		return false
	}
	r.slideAnnotations.Add(slide, ann)
	emit(r.signals.SlideAnnotation, AssociatedEvent, ann)
	return true
}

// AnnotationsOfSlide returns slide's annotations from bottom to top.
func (r *Registry) AnnotationsOfSlide(slide uid.UID) []uid.UID {
	return r.slideAnnotations.Children(slide)
}

// SlideOfAnnotation returns the slide an annotation is drawn on.
func (r *Registry) SlideOfAnnotation(ann uid.UID) (uid.UID, bool) {
	return r.slideAnnotations.Owner(ann)
}

// AnnotationIndex returns the layer position of ann among its slide's
// annotations.
func (r *Registry) AnnotationIndex(ann uid.UID) (int, bool) {
	slide, ok := r.slideAnnotations.Owner(ann)
	if !ok {
		return 0, false
	}
	l := r.slideAnnotations.List(slide)
	if l == nil {
		return 0, false
	}
	return l.Index(ann)
}

// SetAnnotationOrder replaces slide's annotation order with a permutation
// of it. Fires SlideAnnotation (reordered, slide UID).
func (r *Registry) SetAnnotationOrder(slide uid.UID, ids []uid.UID) bool {
	if !r.slides.Contains(slide) || !r.slideAnnotations.Reorder(slide, ids) {
		return false
	}
	emit(r.signals.SlideAnnotation, ReorderedEvent, slide)
	return true
}

// MoveAnnotationBackward moves ann one layer down.
func (r *Registry) MoveAnnotationBackward(ann uid.UID) bool {
	return r.moveAnnotation(ann, (*ordering.List).MoveBackward)
}

// MoveAnnotationForward moves ann one layer up.
func (r *Registry) MoveAnnotationForward(ann uid.UID) bool {
	return r.moveAnnotation(ann, (*ordering.List).MoveForward)
}

// MoveAnnotationToBack moves ann to the bottom layer.
func (r *Registry) MoveAnnotationToBack(ann uid.UID) bool {
	return r.moveAnnotation(ann, (*ordering.List).MoveToBack)
}

// MoveAnnotationToFront moves ann to the top layer.
func (r *Registry) MoveAnnotationToFront(ann uid.UID) bool {
	return r.moveAnnotation(ann, (*ordering.List).MoveToFront)
}

// moveAnnotation applies move within the annotation's slide and fires
// SlideAnnotation (reordered, annotation UID).
func (r *Registry) moveAnnotation(ann uid.UID, move func(*ordering.List, uid.UID) bool) bool {
	if !r.annotations.Contains(ann) {
		return false
	}
	slide, ok := r.slideAnnotations.Owner(ann)
	if !ok {
		return false
	}
	l := r.slideAnnotations.List(slide)
	if l == nil || !move(l, ann) {
		return false
	}
	emit(r.signals.SlideAnnotation, ReorderedEvent, ann)
	return true
}
