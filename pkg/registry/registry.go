// Package registry is the authoritative in-process store for every atlas
// domain object: images, parcellations, slides, generated meshes, color
// maps, label tables, landmark groups and annotations, together with the
// relationships between them, the active selections, and the change
// notification channels.
//
// Registry is the only surface collaborators touch. Loaders insert and
// associate records, presentation mappers subscribe to Signals and re-query,
// renderers resolve weak handles once per frame.
//
// Every mutating operation either applies completely (store, order,
// associations, selection, then notifications) or does nothing and reports
// false. Expected failures are never errors and the registry never logs.
//
// A Registry is not safe for concurrent use. The embedding application
// drives it from one goroutine. Handlers run synchronously inside the
// mutating call and must not mutate the registry.
package registry

import (
	"github.com/mesh-intelligence/atlas/internal/assoc"
	"github.com/mesh-intelligence/atlas/internal/ordering"
	"github.com/mesh-intelligence/atlas/internal/selection"
	"github.com/mesh-intelligence/atlas/internal/store"
	"github.com/mesh-intelligence/atlas/pkg/types"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

// Record and handle aliases, one per entity kind.
type (
	ImageRecord         = types.Record[types.Image, types.ImageGPU]
	ImageHandle         = types.Handle[types.Image, types.ImageGPU]
	ParcellationRecord  = types.Record[types.Parcellation, types.ImageGPU]
	ParcellationHandle  = types.Handle[types.Parcellation, types.ImageGPU]
	SlideRecord         = types.Record[types.Slide, types.SlideGPU]
	SlideHandle         = types.Handle[types.Slide, types.SlideGPU]
	IsoMeshRecord       = types.Record[types.Mesh, types.MeshGPU]
	IsoMeshHandle       = types.Handle[types.Mesh, types.MeshGPU]
	LabelMeshRecord     = types.Record[types.LabelMesh, types.MeshGPU]
	LabelMeshHandle     = types.Handle[types.LabelMesh, types.MeshGPU]
	ColorMapRecord      = types.Record[types.ColorMap, types.ColorMapGPU]
	ColorMapHandle      = types.Handle[types.ColorMap, types.ColorMapGPU]
	LabelTableRecord    = types.Record[types.LabelTable, types.LabelTableGPU]
	LabelTableHandle    = types.Handle[types.LabelTable, types.LabelTableGPU]
	LandmarkGroupRecord = types.Record[types.LandmarkGroup, types.NoGPU]
	LandmarkGroupHandle = types.Handle[types.LandmarkGroup, types.NoGPU]
	AnnotationRecord    = types.Record[types.Annotation, types.AnnotationGPU]
	AnnotationHandle    = types.Handle[types.Annotation, types.AnnotationGPU]
)

// Registry owns every record and relationship of one atlas session.
type Registry struct {
	source func() uid.UID
	issued map[uid.UID]struct{}

	images         *store.Store[types.Image, types.ImageGPU]
	parcellations  *store.Store[types.Parcellation, types.ImageGPU]
	slides         *store.Store[types.Slide, types.SlideGPU]
	isoMeshes      *store.Store[types.Mesh, types.MeshGPU]
	labelMeshes    *store.Store[types.LabelMesh, types.MeshGPU]
	colorMaps      *store.Store[types.ColorMap, types.ColorMapGPU]
	labelTables    *store.Store[types.LabelTable, types.LabelTableGPU]
	imageLandmarks *store.Store[types.LandmarkGroup, types.NoGPU]
	slideLandmarks *store.Store[types.LandmarkGroup, types.NoGPU]
	annotations    *store.Store[types.Annotation, types.AnnotationGPU]

	imageOrder        ordering.List
	parcellationOrder ordering.List
	slideOrder        ordering.List
	colorMapOrder     ordering.List

	imageParcellation       *assoc.One
	imageColorMap           *assoc.One
	imageIsoMeshes          *assoc.Many
	imageLandmarkGroups     *assoc.Many
	parcellationLabelTable  *assoc.One
	parcellationLabelMeshes *assoc.Keyed
	slideLandmarkGroups     *assoc.Many
	slideAnnotations        *assoc.Many

	activeImage        selection.Slot
	activeParcellation selection.Slot
	activeSlide        selection.Slot

	signals *Signals
}

// Option configures a Registry.
type Option func(*Registry)

// WithUIDSource replaces the UID generator, for deterministic tests. The
// registry still refuses to hand out a UID twice: a source that repeats
// itself is called again until it yields a fresh, non-nil value.
func WithUIDSource(src func() uid.UID) Option {
	return func(r *Registry) {
		if src != nil {
			r.source = src
		}
	}
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		source: uid.New,
		issued: make(map[uid.UID]struct{}),

		imageParcellation:       assoc.NewOne(),
		imageColorMap:           assoc.NewOne(),
		imageIsoMeshes:          assoc.NewMany(),
		imageLandmarkGroups:     assoc.NewMany(),
		parcellationLabelTable:  assoc.NewOne(),
		parcellationLabelMeshes: assoc.NewKeyed(),
		slideLandmarkGroups:     assoc.NewMany(),
		slideAnnotations:        assoc.NewMany(),

		signals: newSignals(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.images = store.New[types.Image, types.ImageGPU](types.KindImage, r.mint)
	r.parcellations = store.New[types.Parcellation, types.ImageGPU](types.KindParcellation, r.mint)
	r.slides = store.New[types.Slide, types.SlideGPU](types.KindSlide, r.mint)
	r.isoMeshes = store.New[types.Mesh, types.MeshGPU](types.KindIsoMesh, r.mint)
	r.labelMeshes = store.New[types.LabelMesh, types.MeshGPU](types.KindLabelMesh, r.mint)
	r.colorMaps = store.New[types.ColorMap, types.ColorMapGPU](types.KindColorMap, r.mint)
	r.labelTables = store.New[types.LabelTable, types.LabelTableGPU](types.KindLabelTable, r.mint)
	r.imageLandmarks = store.New[types.LandmarkGroup, types.NoGPU](types.KindImageLandmarkGroup, r.mint)
	r.slideLandmarks = store.New[types.LandmarkGroup, types.NoGPU](types.KindSlideLandmarkGroup, r.mint)
	r.annotations = store.New[types.Annotation, types.AnnotationGPU](types.KindAnnotation, r.mint)
	return r
}

// maxMintAttempts bounds the retry loop against a broken UID source.
const maxMintAttempts = 64

// mint returns a UID this registry has never issued, or uid.Nil if the
// source keeps repeating itself.
func (r *Registry) mint() uid.UID {
	for range maxMintAttempts {
		id := r.source()
		if id.IsNil() {
			continue
		}
		if _, dup := r.issued[id]; dup {
			continue
		}
		r.issued[id] = struct{}{}
		return id
	}
	return uid.Nil
}

// Signals returns the change notification channels.
func (r *Registry) Signals() *Signals {
	return r.signals
}

// insertRecord stores a new record built from the payloads.
func insertRecord[C, G any](s *store.Store[C, G], cpu *C, gpu *G) (uid.UID, bool) {
	if cpu == nil {
		return uid.Nil, false
	}
	return s.Insert(types.NewRecord(cpu, gpu))
}

// updateRecord applies fn to the CPU payload of id.
func updateRecord[C, G any](s *store.Store[C, G], id uid.UID, fn func(*C)) bool {
	if fn == nil {
		return false
	}
	rec, ok := s.Get(id)
	if !ok {
		return false
	}
	fn(rec.CPU())
	return true
}

// KindOf reports which store holds id.
func (r *Registry) KindOf(id uid.UID) (types.Kind, bool) {
	switch {
	case r.images.Contains(id):
		return types.KindImage, true
	case r.parcellations.Contains(id):
		return types.KindParcellation, true
	case r.slides.Contains(id):
		return types.KindSlide, true
	case r.isoMeshes.Contains(id):
		return types.KindIsoMesh, true
	case r.labelMeshes.Contains(id):
		return types.KindLabelMesh, true
	case r.colorMaps.Contains(id):
		return types.KindColorMap, true
	case r.labelTables.Contains(id):
		return types.KindLabelTable, true
	case r.imageLandmarks.Contains(id):
		return types.KindImageLandmarkGroup, true
	case r.slideLandmarks.Contains(id):
		return types.KindSlideLandmarkGroup, true
	case r.annotations.Contains(id):
		return types.KindAnnotation, true
	default:
		return "", false
	}
}

// Contains reports whether any store holds id.
func (r *Registry) Contains(id uid.UID) bool {
	_, ok := r.KindOf(id)
	return ok
}

// Unload removes id from whichever store holds it, with the same effects as
// the kind-specific unload.
func (r *Registry) Unload(id uid.UID) bool {
	kind, ok := r.KindOf(id)
	if !ok {
		return false
	}
	switch kind {
	case types.KindImage:
		return r.UnloadImage(id)
	case types.KindParcellation:
		return r.UnloadParcellation(id)
	case types.KindSlide:
		return r.UnloadSlide(id)
	case types.KindIsoMesh:
		return r.UnloadIsoMesh(id)
	case types.KindLabelMesh:
		return r.UnloadLabelMesh(id)
	case types.KindColorMap:
		return r.UnloadColorMap(id)
	case types.KindLabelTable:
		return r.UnloadLabelTable(id)
	case types.KindImageLandmarkGroup:
		return r.UnloadImageLandmarkGroup(id)
	case types.KindSlideLandmarkGroup:
		return r.UnloadSlideLandmarkGroup(id)
	case types.KindAnnotation:
		return r.UnloadAnnotation(id)
	}
	return false
}

// Stats is a point-in-time summary of the registry contents.
type Stats struct {
	Counts             map[types.Kind]int `json:"counts"`
	ActiveImage        uid.UID            `json:"active_image"`
	ActiveParcellation uid.UID            `json:"active_parcellation"`
	ActiveSlide        uid.UID            `json:"active_slide"`
}

// Stats returns the record count of every kind and the active selections.
func (r *Registry) Stats() Stats {
	s := Stats{
		Counts: map[types.Kind]int{
			types.KindImage:              r.images.Len(),
			types.KindParcellation:       r.parcellations.Len(),
			types.KindSlide:              r.slides.Len(),
			types.KindIsoMesh:            r.isoMeshes.Len(),
			types.KindLabelMesh:          r.labelMeshes.Len(),
			types.KindColorMap:           r.colorMaps.Len(),
			types.KindLabelTable:         r.labelTables.Len(),
			types.KindImageLandmarkGroup: r.imageLandmarks.Len(),
			types.KindSlideLandmarkGroup: r.slideLandmarks.Len(),
			types.KindAnnotation:         r.annotations.Len(),
		},
	}
	s.ActiveImage, _ = r.activeImage.Get()
	s.ActiveParcellation, _ = r.activeParcellation.Get()
	s.ActiveSlide, _ = r.activeSlide.Get()
	return s
}
