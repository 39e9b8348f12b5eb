package types

// Mesh is the CPU payload of a generated surface. IsoValue is set for
// iso-surfaces and zero for label meshes.
type Mesh struct {
	Name     string    `json:"name"`
	Vertices []float32 `json:"vertices"`
	Indices  []uint32  `json:"indices"`
	IsoValue float64   `json:"iso_value"`
	Visible  bool      `json:"visible"`
	Opacity  float64   `json:"opacity"`
}

// NumTriangles returns the triangle count implied by the index buffer.
func (m *Mesh) NumTriangles() int {
	return len(m.Indices) / 3
}

// LabelMesh is a mesh generated for one label of a parcellation.
type LabelMesh struct {
	Mesh       Mesh `json:"mesh"`
	LabelIndex int  `json:"label_index"`
}

// MeshGPU holds the buffer objects of an uploaded mesh.
type MeshGPU struct {
	VertexArray  uint32 `json:"vertex_array"`
	VertexBuffer uint32 `json:"vertex_buffer"`
	IndexBuffer  uint32 `json:"index_buffer"`
}
