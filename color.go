package nodetree

// A Color represents a color, containing R, G, B, and A components, each expected to range from 0 to 1.
type Color struct {
	R, G, B, A float32
}

// NewColor returns a new Color, with the provided R, G, B, and A components expected to range from 0 to 1.
func NewColor(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// White is the default color of new Meshes.
var White = Color{1, 1, 1, 1}

// Scaled returns the Color with its R, G, and B components multiplied by the value given. Alpha is kept.
func (color Color) Scaled(value float32) Color {
	return Color{color.R * value, color.G * value, color.B * value, color.A}
}

// RGBA returns the color's components as 0-255 bytes, clamping out-of-range values.
func (color Color) RGBA() (r, g, b, a uint8) {
	conv := func(v float32) uint8 {
		if v <= 0 {
			return 0
		} else if v >= 1 {
			return 255
		}
		return uint8(v * 255)
	}
	return conv(color.R), conv(color.G), conv(color.B), conv(color.A)
}
