package types

// Kind names one category of registry record.
type Kind string

// Entity kinds managed by the registry.
const (
	KindImage              Kind = "image"
	KindParcellation       Kind = "parcellation"
	KindSlide              Kind = "slide"
	KindIsoMesh            Kind = "iso_mesh"
	KindLabelMesh          Kind = "label_mesh"
	KindColorMap           Kind = "color_map"
	KindLabelTable         Kind = "label_table"
	KindImageLandmarkGroup Kind = "image_landmark_group"
	KindSlideLandmarkGroup Kind = "slide_landmark_group"
	KindAnnotation         Kind = "annotation"
)

// AllKinds lists every kind in a stable order for enumeration.
var AllKinds = []Kind{
	KindImage,
	KindParcellation,
	KindSlide,
	KindIsoMesh,
	KindLabelMesh,
	KindColorMap,
	KindLabelTable,
	KindImageLandmarkGroup,
	KindSlideLandmarkGroup,
	KindAnnotation,
}

var knownKinds = func() map[Kind]bool {
	m := make(map[Kind]bool, len(AllKinds))
	for _, k := range AllKinds {
		m[k] = true
	}
	return m
}()

// Valid reports whether k is one of the registry kinds.
func (k Kind) Valid() bool {
	return knownKinds[k]
}
