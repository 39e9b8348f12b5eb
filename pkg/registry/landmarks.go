package registry

import (
	"github.com/mesh-intelligence/atlas/pkg/types"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

// Reference-image landmark groups.

// InsertImageLandmarkGroup stores a landmark group for reference images.
// Fires ImageLandmarkGroup (created).
func (r *Registry) InsertImageLandmarkGroup(cpu *types.LandmarkGroup) (uid.UID, bool) {
	id, ok := insertRecord[types.LandmarkGroup, types.NoGPU](r.imageLandmarks, cpu, nil)
	if !ok {
		return uid.Nil, false
	}
	emit(r.signals.ImageLandmarkGroup, CreatedEvent, id)
	return id, true
}

// InsertLandmarkGroupForImage stores a group and appends it to img's
// groups in one step. Nothing happens if img is not loaded.
func (r *Registry) InsertLandmarkGroupForImage(img uid.UID, cpu *types.LandmarkGroup) (uid.UID, bool) {
	if !r.images.Contains(img) || cpu == nil {
		return uid.Nil, false
	}
	id, ok := r.InsertImageLandmarkGroup(cpu)
	if !ok {
		return uid.Nil, false
	}
	r.AssociateLandmarkGroupWithImage(img, id)
	return id, true
}

// UnloadImageLandmarkGroup removes a group and detaches it from its image.
// Fires ImageLandmarkGroup (deleted).
func (r *Registry) UnloadImageLandmarkGroup(id uid.UID) bool {
	if !r.imageLandmarks.Remove(id) {
		return false
	}
	r.imageLandmarkGroups.Remove(id)
	emit(r.signals.ImageLandmarkGroup, DeletedEvent, id)
	return true
}

// ImageLandmarkGroup returns a weak handle to a reference-image group.
func (r *Registry) ImageLandmarkGroup(id uid.UID) (LandmarkGroupHandle, bool) {
	return r.imageLandmarks.Handle(id)
}

// UpdateImageLandmarkGroup edits a group in place. Fires
// ImageLandmarkGroup (updated).
func (r *Registry) UpdateImageLandmarkGroup(id uid.UID, fn func(*types.LandmarkGroup)) bool {
	if !updateRecord(r.imageLandmarks, id, fn) {
		return false
	}
	emit(r.signals.ImageLandmarkGroup, UpdatedEvent, id)
	return true
}

// ImageLandmarkGroupUIDs returns every reference-image group, in no
// particular order.
func (r *Registry) ImageLandmarkGroupUIDs() []uid.UID {
	return r.imageLandmarks.UIDs()
}

// NumImageLandmarkGroups returns the number of reference-image groups.
func (r *Registry) NumImageLandmarkGroups() int {
	return r.imageLandmarks.Len()
}

// AssociateLandmarkGroupWithImage appends grp to img's groups. Fires
// ImageLandmarkGroup (associated).
func (r *Registry) AssociateLandmarkGroupWithImage(img, grp uid.UID) bool {
	if !r.images.Contains(img) || !r.imageLandmarks.Contains(grp) {
		return false
	}
	r.imageLandmarkGroups.Add(img, grp)
	emit(r.signals.ImageLandmarkGroup, AssociatedEvent, grp)
	return true
}

// LandmarkGroupsOfImage returns img's groups in order.
func (r *Registry) LandmarkGroupsOfImage(img uid.UID) []uid.UID {
	return r.imageLandmarkGroups.Children(img)
}

// ImageOfLandmarkGroup returns the image a group belongs to. The image may
// have been unloaded since.
func (r *Registry) ImageOfLandmarkGroup(grp uid.UID) (uid.UID, bool) {
	return r.imageLandmarkGroups.Owner(grp)
}

// SetImageLandmarkGroupOrder replaces img's group order with a permutation
// of it. Fires ImageLandmarkGroup (reordered, image UID).
func (r *Registry) SetImageLandmarkGroupOrder(img uid.UID, ids []uid.UID) bool {
	if !r.images.Contains(img) || !r.imageLandmarkGroups.Reorder(img, ids) {
		return false
	}
	emit(r.signals.ImageLandmarkGroup, ReorderedEvent, img)
	return true
}

// Slide landmark groups.

// InsertSlideLandmarkGroup stores a landmark group for slides. Fires
// SlideLandmarkGroup (created).
func (r *Registry) InsertSlideLandmarkGroup(cpu *types.LandmarkGroup) (uid.UID, bool) {
	id, ok := insertRecord[types.LandmarkGroup, types.NoGPU](r.slideLandmarks, cpu, nil)
	if !ok {
		return uid.Nil, false
	}
	emit(r.signals.SlideLandmarkGroup, CreatedEvent, id)
	return id, true
}

// InsertLandmarkGroupForSlide stores a group and appends it to slide's
// groups in one step. Nothing happens if slide is not loaded.
func (r *Registry) InsertLandmarkGroupForSlide(slide uid.UID, cpu *types.LandmarkGroup) (uid.UID, bool) {
	if !r.slides.Contains(slide) || cpu == nil {
		return uid.Nil, false
	}
	id, ok := r.InsertSlideLandmarkGroup(cpu)
	if !ok {
		return uid.Nil, false
	}
	r.AssociateLandmarkGroupWithSlide(slide, id)
	return id, true
}

// UnloadSlideLandmarkGroup removes a group and detaches it from its slide.
// Fires SlideLandmarkGroup (deleted).
func (r *Registry) UnloadSlideLandmarkGroup(id uid.UID) bool {
	if !r.slideLandmarks.Remove(id) {
		return false
	}
	r.slideLandmarkGroups.Remove(id)
	emit(r.signals.SlideLandmarkGroup, DeletedEvent, id)
	return true
}

// SlideLandmarkGroup returns a weak handle to a slide group.
func (r *Registry) SlideLandmarkGroup(id uid.UID) (LandmarkGroupHandle, bool) {
	return r.slideLandmarks.Handle(id)
}

// UpdateSlideLandmarkGroup edits a group in place. Fires
// SlideLandmarkGroup (updated).
func (r *Registry) UpdateSlideLandmarkGroup(id uid.UID, fn func(*types.LandmarkGroup)) bool {
	if !updateRecord(r.slideLandmarks, id, fn) {
		return false
	}
	emit(r.signals.SlideLandmarkGroup, UpdatedEvent, id)
	return true
}

// SlideLandmarkGroupUIDs returns every slide group, in no particular order.
func (r *Registry) SlideLandmarkGroupUIDs() []uid.UID {
	return r.slideLandmarks.UIDs()
}

// NumSlideLandmarkGroups returns the number of slide groups.
func (r *Registry) NumSlideLandmarkGroups() int {
	return r.slideLandmarks.Len()
}

// AssociateLandmarkGroupWithSlide appends grp to slide's groups. Fires
// SlideLandmarkGroup (associated).
func (r *Registry) AssociateLandmarkGroupWithSlide(slide, grp uid.UID) bool {
	if !r.slides.Contains(slide) || !r.slideLandmarks.Contains(grp) {
		return false
	}
	r.slideLandmarkGroups.Add(slide, grp)
	emit(r.signals.SlideLandmarkGroup, AssociatedEvent, grp)
	return true
}

// LandmarkGroupsOfSlide returns slide's groups in order.
func (r *Registry) LandmarkGroupsOfSlide(slide uid.UID) []uid.UID {
	return r.slideLandmarkGroups.Children(slide)
}

// SlideOfLandmarkGroup returns the slide a group belongs to.
func (r *Registry) SlideOfLandmarkGroup(grp uid.UID) (uid.UID, bool) {
	return r.slideLandmarkGroups.Owner(grp)
}

// SetSlideLandmarkGroupOrder replaces slide's group order with a
// permutation of it. Fires SlideLandmarkGroup (reordered, slide UID).
func (r *Registry) SetSlideLandmarkGroupOrder(slide uid.UID, ids []uid.UID) bool {
	if !r.slides.Contains(slide) || !r.slideLandmarkGroups.Reorder(slide, ids) {
		return false
	}
	emit(r.signals.SlideLandmarkGroup, ReorderedEvent, slide)
	return true
}
