package color

import (
	"math"
	"testing"
)

// TestSRGBToLinearEdgeCases tests edge cases for sRGB to linear conversion.
func TestSRGBToLinearEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  float32
	}{
		{"black", 0.0, 0.0},
		{"white", 1.0, 1.0},
		{"threshold", 0.04045, 0.04045 / 12.92},
		{"just above threshold", 0.04046, float32(math.Pow((0.04046+0.055)/1.055, 2.4))},
		{"mid gray", 0.5, float32(math.Pow((0.5+0.055)/1.055, 2.4))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SRGBToLinear(tt.input)
			if !floatNear(got, tt.want, 1e-6) {
				t.Errorf("SRGBToLinear(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestLinearToSRGBEdgeCases tests edge cases for linear to sRGB conversion.
func TestLinearToSRGBEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  float32
	}{
		{"black", 0.0, 0.0},
		{"white", 1.0, 1.0},
		{"threshold", 0.0031308, 0.0031308 * 12.92},
		{"just above threshold", 0.0031309, 1.055*float32(math.Pow(0.0031309, 1.0/2.4)) - 0.055},
		{"mid gray linear", 0.21404, float32(1.055*math.Pow(0.21404, 1.0/2.4) - 0.055)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinearToSRGB(tt.input)
			if !floatNear(got, tt.want, 1e-6) {
				t.Errorf("LinearToSRGB(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestRoundTripSRGBLinear tests round-trip conversion accuracy.
// Maximum error should be less than 1/255 to preserve 8-bit precision.
func TestRoundTripSRGBLinear(t *testing.T) {
	const maxError = 1.0 / 255.0

	// Test all 8-bit values
	for i := 0; i <= 255; i++ {
		srgb := float32(i) / 255.0
		linear := SRGBToLinear(srgb)
		roundTrip := LinearToSRGB(linear)

		diff := float32(math.Abs(float64(roundTrip - srgb)))
		if diff > maxError {
			t.Errorf("Round-trip error for %d/255: got %v, want %v, diff %v (max %v)",
				i, roundTrip, srgb, diff, maxError)
		}
	}
}

func TestU8ToLinear(t *testing.T) {
	tests := []struct {
		name  string
		input ColorU8
		want  ColorF32
	}{
		{"black", ColorU8{0, 0, 0, 255}, ColorF32{0, 0, 0, 1}},
		{"white", ColorU8{255, 255, 255, 255}, ColorF32{1, 1, 1, 1}},
		{"mid gray keeps alpha linear", ColorU8{128, 128, 128, 128}, ColorF32{
			SRGBToLinear(128.0 / 255), SRGBToLinear(128.0 / 255), SRGBToLinear(128.0 / 255), 128.0 / 255,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := U8ToLinear(tt.input)
			if !colorF32Near(got, tt.want, 1e-6) {
				t.Errorf("U8ToLinear(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestU8ToLinearMatchesFormula(t *testing.T) {
	for i := 0; i <= 255; i++ {
		v := uint8(i)
		got := U8ToLinear(ColorU8{R: v, G: v, B: v, A: v})
		want := SRGBToLinear(float32(i) / 255)
		if got.R != want || got.G != want || got.B != want {
			t.Fatalf("U8ToLinear(%d) = %v, want %v", i, got.R, want)
		}
	}
}

func TestLinearToU8RoundTrip(t *testing.T) {
	for i := 0; i <= 255; i++ {
		in := ColorU8{R: uint8(i), G: uint8(255 - i), B: uint8(i / 2), A: uint8(i)}
		got := LinearToU8(U8ToLinear(in))
		if got != in {
			t.Fatalf("LinearToU8(U8ToLinear(%v)) = %v", in, got)
		}
	}
}

func TestLinearToU8Clamps(t *testing.T) {
	got := LinearToU8(ColorF32{R: -1, G: 2, B: 0.5, A: 1.5})
	if got.R != 0 || got.G != 255 || got.A != 255 {
		t.Errorf("LinearToU8 out of range = %v, want R=0 G=255 A=255", got)
	}
}

// floatNear checks if two float32 values are within epsilon of each other.
func floatNear(a, b, epsilon float32) bool {
	return math.Abs(float64(a-b)) < float64(epsilon)
}

// colorF32Near checks if two ColorF32 values are within epsilon of each other.
func colorF32Near(a, b ColorF32, epsilon float32) bool {
	return floatNear(a.R, b.R, epsilon) &&
		floatNear(a.G, b.G, epsilon) &&
		floatNear(a.B, b.B, epsilon) &&
		floatNear(a.A, b.A, epsilon)
}
