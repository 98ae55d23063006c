package mandel

import (
	"image/color"
	"math"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// lerpLinear interpolates between two colors in linear sRGB space, which
// blends without the darkening artifacts of naive sRGB interpolation.
func lerpLinear(c1, c2 RGBA, t float64) RGBA {
	return RGBA{
		R: linearToSRGB(srgbToLinear(c1.R) + t*(srgbToLinear(c2.R)-srgbToLinear(c1.R))),
		G: linearToSRGB(srgbToLinear(c1.G) + t*(srgbToLinear(c2.G)-srgbToLinear(c1.G))),
		B: linearToSRGB(srgbToLinear(c1.B) + t*(srgbToLinear(c2.B)-srgbToLinear(c1.B))),
		A: c1.A + t*(c2.A-c1.A),
	}
}

// srgbToLinear converts an sRGB component in [0,1] to linear light.
func srgbToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// linearToSRGB converts a linear-light component in [0,1] back to sRGB.
func linearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}
