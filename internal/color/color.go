// Package color converts between the sRGB encoding callers usually think in
// and the linear RGBA the line shader consumes.
package color

import "math"

// ColorF32 represents a color with float32 components in [0,1].
// Alpha is always linear (never gamma-encoded).
type ColorF32 struct {
	R, G, B, A float32
}

// ColorU8 represents an 8-bit sRGB color with straight alpha.
type ColorU8 struct {
	R, G, B, A uint8
}

// srgb8ToLinear maps every sRGB byte to its linear value.
var srgb8ToLinear [256]float32

func init() {
	for i := range srgb8ToLinear {
		srgb8ToLinear[i] = SRGBToLinear(float32(i) / 255)
	}
}

// SRGBToLinear converts an sRGB component to linear.
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
func SRGBToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return float32(math.Pow(float64((s+0.055)/1.055), 2.4))
}

// LinearToSRGB converts a linear component to sRGB.
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
func LinearToSRGB(l float32) float32 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*float32(math.Pow(float64(l), 1.0/2.4)) - 0.055
}

// SRGBToLinearColor converts the RGB components of c to linear space.
func SRGBToLinearColor(c ColorF32) ColorF32 {
	return ColorF32{
		R: SRGBToLinear(c.R),
		G: SRGBToLinear(c.G),
		B: SRGBToLinear(c.B),
		A: c.A,
	}
}

// LinearToSRGBColor converts the RGB components of c to sRGB space.
func LinearToSRGBColor(c ColorF32) ColorF32 {
	return ColorF32{
		R: LinearToSRGB(c.R),
		G: LinearToSRGB(c.G),
		B: LinearToSRGB(c.B),
		A: c.A,
	}
}

// U8ToLinear converts an 8-bit sRGB color to linear float components using
// a lookup table.
func U8ToLinear(c ColorU8) ColorF32 {
	return ColorF32{
		R: srgb8ToLinear[c.R],
		G: srgb8ToLinear[c.G],
		B: srgb8ToLinear[c.B],
		A: float32(c.A) / 255,
	}
}

// LinearToU8 converts a linear color to 8-bit sRGB with rounding.
func LinearToU8(c ColorF32) ColorU8 {
	s := LinearToSRGBColor(c)
	return ColorU8{
		R: clampAndRound(s.R),
		G: clampAndRound(s.G),
		B: clampAndRound(s.B),
		A: clampAndRound(s.A),
	}
}

// clampAndRound clamps a float32 to [0,1] and converts to uint8 with rounding.
func clampAndRound(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255.0 + 0.5)
}
