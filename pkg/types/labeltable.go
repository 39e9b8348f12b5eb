package types

import "fmt"

// LabelProperties holds the display state of one parcellation label.
type LabelProperties struct {
	Name      string  `json:"name"`
	Color     RGBA    `json:"color"`
	Visible   bool    `json:"visible"`
	ShowMesh  bool    `json:"show_mesh"`
	MeshAlpha float32 `json:"mesh_alpha"`
}

// LabelTable is the CPU payload of a label table: one entry per label index.
type LabelTable struct {
	Labels []LabelProperties `json:"labels"`
}

// NumLabels returns the number of entries in the table.
func (t *LabelTable) NumLabels() int {
	return len(t.Labels)
}

// LabelTableGPU holds the uploaded buffer of label colors.
type LabelTableGPU struct {
	Buffer uint32 `json:"buffer"`
}

// NewLabelTable returns a table of n labels. Label 0 is the transparent
// background; the others get hues spread around the color wheel.
func NewLabelTable(n int) *LabelTable {
	t := &LabelTable{Labels: make([]LabelProperties, n)}
	for i := range t.Labels {
		p := LabelProperties{
			Name:      fmt.Sprintf("Label %d", i),
			Visible:   true,
			MeshAlpha: 1,
		}
		if i == 0 {
			p.Color = RGBA{}
		} else {
			r, g, b := hsvToRGB(float64((i-1)*137%360))
			p.Color = Opaque(r, g, b)
		}
		t.Labels[i] = p
	}
	return t
}
