package types

// ColorMap is the CPU payload of an image color map: an ordered list of
// colors sampled uniformly over the normalized intensity range.
type ColorMap struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Colors      []RGBA `json:"colors"`
}

// NumColors returns the number of samples in the map.
func (c *ColorMap) NumColors() int {
	return len(c.Colors)
}

// ColorMapGPU holds the uploaded 1D texture of a color map.
type ColorMapGPU struct {
	Texture uint32 `json:"texture"`
}

// DefaultColorMap returns a 256 sample linear grayscale map.
func DefaultColorMap(name string) *ColorMap {
	const n = 256
	cm := &ColorMap{Name: name, Description: "linear grayscale", Colors: make([]RGBA, n)}
	for i := range cm.Colors {
		v := float32(i) / float32(n-1)
		cm.Colors[i] = Opaque(v, v, v)
	}
	return cm
}
