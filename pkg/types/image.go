package types

// Image component types as reported by the decoder.
const (
	ComponentUInt8   = "uint8"
	ComponentInt16   = "int16"
	ComponentUInt16  = "uint16"
	ComponentFloat32 = "float32"
)

// ImageHeader describes the voxel grid of a volumetric image.
type ImageHeader struct {
	Dimensions    [3]int     `json:"dimensions"`
	Spacing       [3]float64 `json:"spacing"`
	Origin        [3]float64 `json:"origin"`
	NumComponents int        `json:"num_components"`
	ComponentType string     `json:"component_type"`
}

// NumVoxels returns the number of voxels in the grid.
func (h ImageHeader) NumVoxels() int {
	return h.Dimensions[0] * h.Dimensions[1] * h.Dimensions[2]
}

// ImageSettings holds display state edited through the UI.
type ImageSettings struct {
	DisplayName    string  `json:"display_name"`
	Visible        bool    `json:"visible"`
	Opacity        float64 `json:"opacity"`
	WindowLow      float64 `json:"window_low"`
	WindowHigh     float64 `json:"window_high"`
	ColorMapIndex  int     `json:"color_map_index"`
	ShowEdges      bool    `json:"show_edges"`
	IsoSurfaceShow bool    `json:"iso_surface_show"`
}

// Image is the CPU payload of a reference image.
type Image struct {
	Header   ImageHeader   `json:"header"`
	Settings ImageSettings `json:"settings"`
	Path     string        `json:"path"`
}

// ImageGPU holds the texture names uploaded for an image, one per component.
type ImageGPU struct {
	Textures []uint32 `json:"textures"`
}

// Parcellation is an image whose voxel values are labels. LabelValues maps
// label index to the voxel value that carries it.
type Parcellation struct {
	Image       Image   `json:"image"`
	LabelValues []int64 `json:"label_values"`
}

// NumLabels returns the number of labels in the parcellation.
func (p *Parcellation) NumLabels() int {
	return len(p.LabelValues)
}

// LabelIndex returns the index of a voxel value, or false if the value is
// not a label of this parcellation.
func (p *Parcellation) LabelIndex(value int64) (int, bool) {
	for i, v := range p.LabelValues {
		if v == value {
			return i, true
		}
	}
	return 0, false
}
