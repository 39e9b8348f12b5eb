package types

import "github.com/mesh-intelligence/atlas/pkg/uid"

// Record pairs an owned CPU payload with an owned, possibly nil, GPU payload
// under one UID. The UID is written once, by the store that accepts the
// record; payload code never sets it.
type Record[C, G any] struct {
	id  uid.UID
	cpu *C
	gpu *G
}

// NewRecord wraps the payloads. A nil gpu is the empty GPU representation.
func NewRecord[C, G any](cpu *C, gpu *G) *Record[C, G] {
	return &Record[C, G]{cpu: cpu, gpu: gpu}
}

// UID returns the identifier assigned at insertion, or uid.Nil before it.
func (r *Record[C, G]) UID() uid.UID {
	return r.id
}

// CPU returns the CPU resident payload.
func (r *Record[C, G]) CPU() *C {
	return r.cpu
}

// GPU returns the GPU resident payload, nil when the record has none.
func (r *Record[C, G]) GPU() *G {
	return r.gpu
}

// HasGPU reports whether the record carries a GPU payload.
func (r *Record[C, G]) HasGPU() bool {
	return r.gpu != nil
}

// Empty reports whether the record is unusable for insertion: a nil record
// or a nil CPU payload.
func (r *Record[C, G]) Empty() bool {
	return r == nil || r.cpu == nil
}

// Assign sets the UID. It succeeds once, with a non-nil id.
func (r *Record[C, G]) Assign(id uid.UID) bool {
	if r == nil || id.IsNil() || !r.id.IsNil() {
		return false
	}
	r.id = id
	return true
}

// Resolver looks a record up by UID. The entity store implements it.
type Resolver[C, G any] interface {
	Get(id uid.UID) (*Record[C, G], bool)
}

// Handle is a non-owning reference to a record. It holds the UID and the
// store, never the record, so it goes empty as soon as the store drops the
// record. Renderers resolve it once per frame and do not cache the result.
type Handle[C, G any] struct {
	src Resolver[C, G]
	id  uid.UID
}

// NewHandle returns a handle to id in src.
func NewHandle[C, G any](src Resolver[C, G], id uid.UID) Handle[C, G] {
	return Handle[C, G]{src: src, id: id}
}

// UID returns the identifier the handle refers to.
func (h Handle[C, G]) UID() uid.UID {
	return h.id
}

// Resolve returns the live record, or false once it has been removed.
func (h Handle[C, G]) Resolve() (*Record[C, G], bool) {
	if h.src == nil || h.id.IsNil() {
		return nil, false
	}
	return h.src.Get(h.id)
}

// Valid reports whether the handle currently resolves.
func (h Handle[C, G]) Valid() bool {
	_, ok := h.Resolve()
	return ok
}
