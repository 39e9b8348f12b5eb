package registry

import (
	"github.com/mesh-intelligence/atlas/pkg/types"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

// InsertIsoMesh stores an iso-surface mesh. Fires IsoMeshData (created).
func (r *Registry) InsertIsoMesh(cpu *types.Mesh, gpu *types.MeshGPU) (uid.UID, bool) {
	id, ok := insertRecord(r.isoMeshes, cpu, gpu)
	if !ok {
		return uid.Nil, false
	}
	emit(r.signals.IsoMeshData, CreatedEvent, id)
	return id, true
}

// InsertIsoMeshForImage stores a mesh generated from img and associates it
// in one step. Nothing happens if img is not loaded. Fires IsoMeshData
// (created, associated).
func (r *Registry) InsertIsoMeshForImage(img uid.UID, cpu *types.Mesh, gpu *types.MeshGPU) (uid.UID, bool) {
	if !r.images.Contains(img) || cpu == nil {
		return uid.Nil, false
	}
	id, ok := r.InsertIsoMesh(cpu, gpu)
	if !ok {
		return uid.Nil, false
	}
	r.AssociateIsoMeshWithImage(img, id)
	return id, true
}

// UnloadIsoMesh removes an iso mesh and detaches it from its image. Fires
// IsoMeshData (deleted).
func (r *Registry) UnloadIsoMesh(id uid.UID) bool {
	if !r.isoMeshes.Remove(id) {
		return false
	}
	r.imageIsoMeshes.Remove(id)
	emit(r.signals.IsoMeshData, DeletedEvent, id)
	return true
}

// IsoMesh returns a weak handle to an iso mesh.
func (r *Registry) IsoMesh(id uid.UID) (IsoMeshHandle, bool) {
	return r.isoMeshes.Handle(id)
}

// UpdateIsoMesh edits an iso mesh in place. Fires IsoMeshData (updated).
func (r *Registry) UpdateIsoMesh(id uid.UID, fn func(*types.Mesh)) bool {
	if !updateRecord(r.isoMeshes, id, fn) {
		return false
	}
	emit(r.signals.IsoMeshData, UpdatedEvent, id)
	return true
}

// IsoMeshUIDs returns every iso mesh, in no particular order.
func (r *Registry) IsoMeshUIDs() []uid.UID {
	return r.isoMeshes.UIDs()
}

// NumIsoMeshes returns the number of loaded iso meshes.
func (r *Registry) NumIsoMeshes() int {
	return r.isoMeshes.Len()
}

// AssociateIsoMeshWithImage adds mesh to the iso meshes of img. A mesh
// belongs to one image; associating it again moves it. Fires IsoMeshData
// (associated).
func (r *Registry) AssociateIsoMeshWithImage(img, mesh uid.UID) bool {
	if !r.images.Contains(img) || !r.isoMeshes.Contains(mesh) {
		return false
	}
	r.imageIsoMeshes.Add(img, mesh)
	emit(r.signals.IsoMeshData, AssociatedEvent, mesh)
	return true
}

// IsoMeshesOfImage returns the iso meshes of img in association order.
func (r *Registry) IsoMeshesOfImage(img uid.UID) []uid.UID {
	return r.imageIsoMeshes.Children(img)
}

// ImageOfIsoMesh returns the image a mesh was generated from.
func (r *Registry) ImageOfIsoMesh(mesh uid.UID) (uid.UID, bool) {
	return r.imageIsoMeshes.Owner(mesh)
}

// InsertLabelMesh stores a label mesh. Fires LabelMeshData (created).
func (r *Registry) InsertLabelMesh(cpu *types.LabelMesh, gpu *types.MeshGPU) (uid.UID, bool) {
	id, ok := insertRecord(r.labelMeshes, cpu, gpu)
	if !ok {
		return uid.Nil, false
	}
	emit(r.signals.LabelMeshData, CreatedEvent, id)
	return id, true
}

// InsertLabelMeshForParcellation stores a mesh generated for one label of
// parc and associates it under its label index in one step. Nothing happens
// if parc is not loaded. Fires LabelMeshData (created, associated).
func (r *Registry) InsertLabelMeshForParcellation(parc uid.UID, cpu *types.LabelMesh, gpu *types.MeshGPU) (uid.UID, bool) {
	if !r.parcellations.Contains(parc) || cpu == nil {
		return uid.Nil, false
	}
	id, ok := r.InsertLabelMesh(cpu, gpu)
	if !ok {
		return uid.Nil, false
	}
	r.AssociateLabelMeshWithParcellation(parc, id)
	return id, true
}

// UnloadLabelMesh removes a label mesh and detaches it from its
// parcellation. Fires LabelMeshData (deleted).
func (r *Registry) UnloadLabelMesh(id uid.UID) bool {
	if !r.labelMeshes.Remove(id) {
		return false
	}
	r.parcellationLabelMeshes.Remove(id)
	emit(r.signals.LabelMeshData, DeletedEvent, id)
	return true
}

// LabelMesh returns a weak handle to a label mesh.
func (r *Registry) LabelMesh(id uid.UID) (LabelMeshHandle, bool) {
	return r.labelMeshes.Handle(id)
}

// UpdateLabelMesh edits a label mesh in place. The label index is part of
// the payload but changing it does not re-key an existing association.
// Fires LabelMeshData (updated).
func (r *Registry) UpdateLabelMesh(id uid.UID, fn func(*types.LabelMesh)) bool {
	if !updateRecord(r.labelMeshes, id, fn) {
		return false
	}
	emit(r.signals.LabelMeshData, UpdatedEvent, id)
	return true
}

// LabelMeshUIDs returns every label mesh, in no particular order.
func (r *Registry) LabelMeshUIDs() []uid.UID {
	return r.labelMeshes.UIDs()
}

// NumLabelMeshes returns the number of loaded label meshes.
func (r *Registry) NumLabelMeshes() int {
	return r.labelMeshes.Len()
}

// AssociateLabelMeshWithParcellation maps the mesh's label index in parc to
// mesh. A mesh already mapped at that index is displaced but stays loaded;
// unload it separately if it is no longer wanted. Fires LabelMeshData
// (associated).
func (r *Registry) AssociateLabelMeshWithParcellation(parc, mesh uid.UID) bool {
	if !r.parcellations.Contains(parc) {
		return false
	}
	rec, ok := r.labelMeshes.Get(mesh)
	if !ok {
		return false
	}
	if _, ok := r.parcellationLabelMeshes.Set(parc, rec.CPU().LabelIndex, mesh); !ok {
		return false
	}
	emit(r.signals.LabelMeshData, AssociatedEvent, mesh)
	return true
}

// LabelMeshesOfParcellation returns the label index to mesh map of parc.
// The map is a copy.
func (r *Registry) LabelMeshesOfParcellation(parc uid.UID) map[int]uid.UID {
	return r.parcellationLabelMeshes.Entries(parc)
}

// LabelMeshOfParcellation returns the mesh mapped at label index of parc.
func (r *Registry) LabelMeshOfParcellation(parc uid.UID, label int) (uid.UID, bool) {
	return r.parcellationLabelMeshes.Get(parc, label)
}

// ParcellationOfLabelMesh returns the parcellation a label mesh is mapped
// in.
func (r *Registry) ParcellationOfLabelMesh(mesh uid.UID) (uid.UID, bool) {
	parc, _, ok := r.parcellationLabelMeshes.Owner(mesh)
	return parc, ok
}
