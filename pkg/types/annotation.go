package types

// Annotation is the CPU payload of a polygon drawn on a slide, in slide
// pixel coordinates.
type Annotation struct {
	Name     string       `json:"name"`
	Vertices [][2]float64 `json:"vertices"`
	Closed   bool         `json:"closed"`
	Visible  bool         `json:"visible"`
	Color    RGBA         `json:"color"`
	Layer    int          `json:"layer"`
}

// NumVertices returns the polygon vertex count.
func (a *Annotation) NumVertices() int {
	return len(a.Vertices)
}

// AnnotationGPU holds the uploaded vertex buffer of an annotation.
type AnnotationGPU struct {
	VertexBuffer uint32 `json:"vertex_buffer"`
}
