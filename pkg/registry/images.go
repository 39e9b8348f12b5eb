package registry

import (
	"github.com/mesh-intelligence/atlas/internal/selection"
	"github.com/mesh-intelligence/atlas/pkg/types"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

// InsertImage stores a reference image and appends it to the image order.
// Fires ImageData (created).
func (r *Registry) InsertImage(cpu *types.Image, gpu *types.ImageGPU) (uid.UID, bool) {
	id, ok := insertRecord(r.images, cpu, gpu)
	if !ok {
		return uid.Nil, false
	}
	r.imageOrder.Append(id)
	emit(r.signals.ImageData, CreatedEvent, id)
	return id, true
}

// UnloadImage removes an image, its place in the order, and the
// associations keyed by it: default parcellation, color map, iso meshes and
// landmark groups. The associated records stay loaded, and the meshes and
// landmark groups keep naming the image as their owner. If the image was
// active, some other image becomes active, or none if it was the last.
// Fires ImageData (deleted).
func (r *Registry) UnloadImage(id uid.UID) bool {
	if !r.images.Remove(id) {
		return false
	}
	r.imageOrder.Remove(id)
	r.imageParcellation.Delete(id)
	r.imageColorMap.Delete(id)
	r.imageIsoMeshes.DeleteOwner(id)
	r.imageLandmarkGroups.DeleteOwner(id)

	if r.activeImage.Is(id) {
		next, ok := selection.ImageAfterRemoval(r.images.Any)
		if ok {
			r.activeImage.Set(next, r.images.Contains)
		} else {
			r.activeImage.Clear()
		}
	}
	emit(r.signals.ImageData, DeletedEvent, id)
	return true
}

// Image returns a weak handle to an image.
func (r *Registry) Image(id uid.UID) (ImageHandle, bool) {
	return r.images.Handle(id)
}

// UpdateImage edits the CPU payload of an image in place. Fires ImageData
// (updated).
func (r *Registry) UpdateImage(id uid.UID, fn func(*types.Image)) bool {
	if !updateRecord(r.images, id, fn) {
		return false
	}
	emit(r.signals.ImageData, UpdatedEvent, id)
	return true
}

// NumImages returns the number of loaded images.
func (r *Registry) NumImages() int {
	return r.images.Len()
}

// OrderedImageUIDs returns the images in presentation order.
func (r *Registry) OrderedImageUIDs() []uid.UID {
	return r.imageOrder.UIDs()
}

// ImageIndex returns the position of an image in the order.
func (r *Registry) ImageIndex(id uid.UID) (int, bool) {
	return r.imageOrder.Index(id)
}

// ImageUID returns the image at position i of the order.
func (r *Registry) ImageUID(i int) (uid.UID, bool) {
	return r.imageOrder.At(i)
}

// SetImageOrder replaces the image order. ids must be a permutation of the
// current order. Fires ImageData (reordered, nil UID).
func (r *Registry) SetImageOrder(ids []uid.UID) bool {
	if !r.imageOrder.Replace(ids) {
		return false
	}
	emit(r.signals.ImageData, ReorderedEvent, uid.Nil)
	return true
}

// SetReferenceImage moves an image to the head of the order. The first
// image is the reference image that every other one is registered to.
// Fires ImageData (reordered).
func (r *Registry) SetReferenceImage(id uid.UID) bool {
	if !r.imageOrder.MoveToBack(id) {
		return false
	}
	emit(r.signals.ImageData, ReorderedEvent, id)
	return true
}

// AssociateDefaultParcellationWithImage makes parc the default
// parcellation of img, replacing any earlier one. Fires ImageData
// (associated).
func (r *Registry) AssociateDefaultParcellationWithImage(img, parc uid.UID) bool {
	if !r.images.Contains(img) || !r.parcellations.Contains(parc) {
		return false
	}
	r.imageParcellation.Set(img, parc)
	emit(r.signals.ImageData, AssociatedEvent, img)
	return true
}

// DefaultParcellationOfImage returns the default parcellation of img. The
// result may name a parcellation that has since been unloaded.
func (r *Registry) DefaultParcellationOfImage(img uid.UID) (uid.UID, bool) {
	return r.imageParcellation.Get(img)
}

// ImagesUsingParcellation returns the images whose default parcellation is
// parc, in image order.
func (r *Registry) ImagesUsingParcellation(parc uid.UID) []uid.UID {
	return r.inImageOrder(r.imageParcellation.KeysFor(parc))
}

// AssociateColorMapWithImage makes cmap the color map of img, replacing any
// earlier one. Fires ImageData (associated).
func (r *Registry) AssociateColorMapWithImage(img, cmap uid.UID) bool {
	if !r.images.Contains(img) || !r.colorMaps.Contains(cmap) {
		return false
	}
	r.imageColorMap.Set(img, cmap)
	emit(r.signals.ImageData, AssociatedEvent, img)
	return true
}

// ColorMapOfImage returns the color map of img.
func (r *Registry) ColorMapOfImage(img uid.UID) (uid.UID, bool) {
	return r.imageColorMap.Get(img)
}

// ImagesUsingColorMap returns the images that use cmap, in image order.
func (r *Registry) ImagesUsingColorMap(cmap uid.UID) []uid.UID {
	return r.inImageOrder(r.imageColorMap.KeysFor(cmap))
}

// inImageOrder filters the image order down to the members of ids.
func (r *Registry) inImageOrder(ids []uid.UID) []uid.UID {
	if len(ids) == 0 {
		return nil
	}
	want := make(map[uid.UID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []uid.UID
	for _, id := range r.imageOrder.UIDs() {
		if want[id] {
			out = append(out, id)
		}
	}
	return out
}

// ReferenceImage returns the first image in the order.
func (r *Registry) ReferenceImage() (uid.UID, bool) {
	return r.imageOrder.At(0)
}

// ActiveImage returns the active image.
func (r *Registry) ActiveImage() (uid.UID, bool) {
	return r.activeImage.Get()
}

// SetActiveImage makes id the active image. uid.Nil clears the selection;
// an id that is not a loaded image is rejected.
func (r *Registry) SetActiveImage(id uid.UID) bool {
	return r.activeImage.Set(id, r.images.Contains)
}
