package registry

import (
	"github.com/mesh-intelligence/atlas/pkg/types"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

// InsertColorMap stores an image color map and appends it to the color map
// order. Fires ColorMapData (created).
func (r *Registry) InsertColorMap(cpu *types.ColorMap, gpu *types.ColorMapGPU) (uid.UID, bool) {
	id, ok := insertRecord(r.colorMaps, cpu, gpu)
	if !ok {
		return uid.Nil, false
	}
	r.colorMapOrder.Append(id)
	emit(r.signals.ColorMapData, CreatedEvent, id)
	return id, true
}

// UnloadColorMap removes a color map and its place in the order. Images
// that use it keep the stale entry. Fires ColorMapData (deleted).
func (r *Registry) UnloadColorMap(id uid.UID) bool {
	if !r.colorMaps.Remove(id) {
		return false
	}
	r.colorMapOrder.Remove(id)
	emit(r.signals.ColorMapData, DeletedEvent, id)
	return true
}

// ColorMap returns a weak handle to a color map.
func (r *Registry) ColorMap(id uid.UID) (ColorMapHandle, bool) {
	return r.colorMaps.Handle(id)
}

// UpdateColorMap edits a color map in place. Fires ColorMapData (updated).
func (r *Registry) UpdateColorMap(id uid.UID, fn func(*types.ColorMap)) bool {
	if !updateRecord(r.colorMaps, id, fn) {
		return false
	}
	emit(r.signals.ColorMapData, UpdatedEvent, id)
	return true
}

// NumColorMaps returns the number of loaded color maps.
func (r *Registry) NumColorMaps() int {
	return r.colorMaps.Len()
}

// OrderedColorMapUIDs returns the color maps in presentation order.
func (r *Registry) OrderedColorMapUIDs() []uid.UID {
	return r.colorMapOrder.UIDs()
}

// ColorMapIndex returns the position of a color map in the order.
func (r *Registry) ColorMapIndex(id uid.UID) (int, bool) {
	return r.colorMapOrder.Index(id)
}

// ColorMapUID returns the color map at position i of the order.
func (r *Registry) ColorMapUID(i int) (uid.UID, bool) {
	return r.colorMapOrder.At(i)
}

// SetColorMapOrder replaces the color map order with a permutation of it.
// Fires ColorMapData (reordered, nil UID).
func (r *Registry) SetColorMapOrder(ids []uid.UID) bool {
	if !r.colorMapOrder.Replace(ids) {
		return false
	}
	emit(r.signals.ColorMapData, ReorderedEvent, uid.Nil)
	return true
}
