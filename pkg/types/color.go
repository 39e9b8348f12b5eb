package types

// RGBA is a color with components in [0, 1].
type RGBA struct {
	R float32 `json:"r" yaml:"r"`
	G float32 `json:"g" yaml:"g"`
	B float32 `json:"b" yaml:"b"`
	A float32 `json:"a" yaml:"a"`
}

// Opaque returns an RGBA with alpha 1.
func Opaque(r, g, b float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// hsvToRGB converts a hue in [0, 360) with full saturation and value.
func hsvToRGB(h float64) (float32, float32, float32) {
	c := 1.0
	hp := h / 60
	x := c * (1 - abs(mod2(hp)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return float32(r), float32(g), float32(b)
}

func mod2(v float64) float64 {
	for v >= 2 {
		v -= 2
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
