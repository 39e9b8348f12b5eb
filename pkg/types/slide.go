package types

// Slide is the CPU payload of one microscopy slide in the stack.
type Slide struct {
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Visible  bool       `json:"visible"`
	Opacity  float64    `json:"opacity"`
	Position [3]float64 `json:"position"`
}

// SlideGPU holds the uploaded slide texture.
type SlideGPU struct {
	Texture uint32 `json:"texture"`
}
