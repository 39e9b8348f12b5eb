package registry

import (
	"github.com/mesh-intelligence/atlas/pkg/types"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

// InsertLabelTable stores a label table. Fires LabelTableData (created).
func (r *Registry) InsertLabelTable(cpu *types.LabelTable, gpu *types.LabelTableGPU) (uid.UID, bool) {
	id, ok := insertRecord(r.labelTables, cpu, gpu)
	if !ok {
		return uid.Nil, false
	}
	emit(r.signals.LabelTableData, CreatedEvent, id)
	return id, true
}

// UnloadLabelTable removes a label table. Parcellations that reference it
// keep the stale entry. Fires LabelTableData (deleted).
func (r *Registry) UnloadLabelTable(id uid.UID) bool {
	if !r.labelTables.Remove(id) {
		return false
	}
	emit(r.signals.LabelTableData, DeletedEvent, id)
	return true
}

// LabelTable returns a weak handle to a label table.
func (r *Registry) LabelTable(id uid.UID) (LabelTableHandle, bool) {
	return r.labelTables.Handle(id)
}

// UpdateLabelTable edits a label table in place, typically a label color or
// visibility. Fires LabelTableData (updated).
func (r *Registry) UpdateLabelTable(id uid.UID, fn func(*types.LabelTable)) bool {
	if !updateRecord(r.labelTables, id, fn) {
		return false
	}
	emit(r.signals.LabelTableData, UpdatedEvent, id)
	return true
}

// LabelTableUIDs returns every label table, in no particular order.
func (r *Registry) LabelTableUIDs() []uid.UID {
	return r.labelTables.UIDs()
}

// NumLabelTables returns the number of loaded label tables.
func (r *Registry) NumLabelTables() int {
	return r.labelTables.Len()
}
