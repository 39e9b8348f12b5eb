package types

// Landmark is one named point in a landmark group.
type Landmark struct {
	Name     string     `json:"name"`
	Position [3]float64 `json:"position"`
	Visible  bool       `json:"visible"`
}

// LandmarkGroup is the CPU payload of both reference-image and slide
// landmark groups. Landmark groups have no GPU payload.
type LandmarkGroup struct {
	Name      string     `json:"name"`
	Visible   bool       `json:"visible"`
	Opacity   float64    `json:"opacity"`
	Landmarks []Landmark `json:"landmarks"`
}

// NoGPU is the empty GPU payload type for kinds that never upload anything.
type NoGPU struct{}
