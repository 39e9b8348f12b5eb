package registry

import (
	"github.com/mesh-intelligence/atlas/pkg/types"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

// InsertParcellation stores a parcellation and appends it to the
// parcellation order. Fires ParcellationData (created).
func (r *Registry) InsertParcellation(cpu *types.Parcellation, gpu *types.ImageGPU) (uid.UID, bool) {
	id, ok := insertRecord(r.parcellations, cpu, gpu)
	if !ok {
		return uid.Nil, false
	}
	r.parcellationOrder.Append(id)
	emit(r.signals.ParcellationData, CreatedEvent, id)
	return id, true
}

// UnloadParcellation removes a parcellation, its place in the order, its
// label table association and its label mesh map. The label meshes and the
// label table stay loaded; images that used it as their default keep the
// stale entry. An active parcellation is cleared, never reassigned.
// Fires ParcellationData (deleted).
func (r *Registry) UnloadParcellation(id uid.UID) bool {
	if !r.parcellations.Remove(id) {
		return false
	}
	r.parcellationOrder.Remove(id)
	r.parcellationLabelTable.Delete(id)
	r.parcellationLabelMeshes.DeleteOwner(id)
	if r.activeParcellation.Is(id) {
		r.activeParcellation.Clear()
	}
	emit(r.signals.ParcellationData, DeletedEvent, id)
	return true
}

// Parcellation returns a weak handle to a parcellation.
func (r *Registry) Parcellation(id uid.UID) (ParcellationHandle, bool) {
	return r.parcellations.Handle(id)
}

// UpdateParcellation edits the CPU payload of a parcellation in place.
// Fires ParcellationData (updated).
func (r *Registry) UpdateParcellation(id uid.UID, fn func(*types.Parcellation)) bool {
	if !updateRecord(r.parcellations, id, fn) {
		return false
	}
	emit(r.signals.ParcellationData, UpdatedEvent, id)
	return true
}

// NumParcellations returns the number of loaded parcellations.
func (r *Registry) NumParcellations() int {
	return r.parcellations.Len()
}

// OrderedParcellationUIDs returns the parcellations in presentation order.
func (r *Registry) OrderedParcellationUIDs() []uid.UID {
	return r.parcellationOrder.UIDs()
}

// ParcellationIndex returns the position of a parcellation in the order.
func (r *Registry) ParcellationIndex(id uid.UID) (int, bool) {
	return r.parcellationOrder.Index(id)
}

// ParcellationUID returns the parcellation at position i of the order.
func (r *Registry) ParcellationUID(i int) (uid.UID, bool) {
	return r.parcellationOrder.At(i)
}

// SetParcellationOrder replaces the parcellation order with a permutation
// of it. Fires ParcellationData (reordered, nil UID).
func (r *Registry) SetParcellationOrder(ids []uid.UID) bool {
	if !r.parcellationOrder.Replace(ids) {
		return false
	}
	emit(r.signals.ParcellationData, ReorderedEvent, uid.Nil)
	return true
}

// AssociateLabelTableWithParcellation makes table the label table of parc,
// replacing any earlier one. Fires LabelTableData (associated).
func (r *Registry) AssociateLabelTableWithParcellation(parc, table uid.UID) bool {
	if !r.parcellations.Contains(parc) || !r.labelTables.Contains(table) {
		return false
	}
	r.parcellationLabelTable.Set(parc, table)
	emit(r.signals.LabelTableData, AssociatedEvent, table)
	return true
}

// LabelTableOfParcellation returns the label table of parc.
func (r *Registry) LabelTableOfParcellation(parc uid.UID) (uid.UID, bool) {
	return r.parcellationLabelTable.Get(parc)
}

// ActiveParcellation returns the active parcellation.
func (r *Registry) ActiveParcellation() (uid.UID, bool) {
	return r.activeParcellation.Get()
}

// SetActiveParcellation makes id the active parcellation. uid.Nil clears
// the selection; an id that is not a loaded parcellation is rejected.
func (r *Registry) SetActiveParcellation(id uid.UID) bool {
	return r.activeParcellation.Set(id, r.parcellations.Contains)
}
