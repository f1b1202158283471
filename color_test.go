package debuglines

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func floatNear(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func colorNear(a, b Color, eps float32) bool {
	return floatNear(a.R, b.R, eps) && floatNear(a.G, b.G, eps) &&
		floatNear(a.B, b.B, eps) && floatNear(a.A, b.A, eps)
}

func TestNamed(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want color.RGBA
		ok   bool
	}{
		{"lower", "pink", color.RGBA{0xff, 0xc0, 0xcb, 0xff}, true},
		{"mixed case", "MidnightBlue", color.RGBA{0x19, 0x19, 0x70, 0xff}, true},
		{"spaces", "midnight blue", color.RGBA{0x19, 0x19, 0x70, 0xff}, true},
		{"dashes", "dark-orange", color.RGBA{0xff, 0x8c, 0x00, 0xff}, true},
		{"unknown", "not-a-color", color.RGBA{}, false},
		{"empty", "", color.RGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Named(tt.in)
			if ok != tt.ok {
				t.Fatalf("Named(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if !ok {
				return
			}
			if want := FromColor(tt.want); got != want {
				t.Errorf("Named(%q) = %+v, want %+v", tt.in, got, want)
			}
		})
	}
}

func TestFromColorIsLinear(t *testing.T) {
	// sRGB 0x80 is about 0.2158 in linear space.
	c := FromColor(color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff})
	if !floatNear(c.R, 0.2158, 1e-3) || c.R != c.G || c.G != c.B {
		t.Errorf("FromColor(gray 0x80) = %+v, want ~0.2158", c)
	}
	if c.A != 1 {
		t.Errorf("alpha = %v, want 1", c.A)
	}
}

func TestFromColorUnpremultiplies(t *testing.T) {
	// Half-transparent white, premultiplied.
	c := FromColor(color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80})
	if !floatNear(c.R, 1, 1e-2) {
		t.Errorf("R = %v, want ~1", c.R)
	}
	if !floatNear(c.A, 0x80/255.0, 1e-3) {
		t.Errorf("A = %v, want ~0.502", c.A)
	}
}

func TestFromSRGB(t *testing.T) {
	if got := FromSRGB(1, 0, 1, 0.25); !colorNear(got, RGBA(1, 0, 1, 0.25), 1e-5) {
		t.Errorf("FromSRGB(1,0,1,.25) = %+v", got)
	}
	if got := FromSRGB(0.5, 0.5, 0.5, 1); !floatNear(got.R, 0.2140, 1e-3) {
		t.Errorf("FromSRGB(0.5) = %v, want ~0.214", got.R)
	}
}

func TestSRGBRoundTrip(t *testing.T) {
	for _, in := range []color.NRGBA{
		{0, 0, 0, 255},
		{255, 255, 255, 255},
		{0x12, 0x34, 0x56, 0x78},
		{0xff, 0x80, 0x00, 0xff},
	} {
		if got := FromColor(in).SRGB(); got != in {
			t.Errorf("FromColor(%v).SRGB() = %v", in, got)
		}
	}
}

func TestNamedConstants(t *testing.T) {
	if White != (Color{1, 1, 1, 1}) || Red != (Color{1, 0, 0, 1}) {
		t.Error("primaries must be exact")
	}
	if Transparent.A != 0 {
		t.Error("Transparent must have zero alpha")
	}
	if Gold.SRGB() != (color.NRGBA{0xff, 0xd7, 0x00, 0xff}) {
		t.Errorf("Gold.SRGB() = %v", Gold.SRGB())
	}
}

func TestVec4RoundTrip(t *testing.T) {
	c := RGBA(0.1, 0.2, 0.3, 0.4)
	if c.Vec4() != (mgl32.Vec4{0.1, 0.2, 0.3, 0.4}) {
		t.Errorf("Vec4() = %v", c.Vec4())
	}
	if ColorFromVec4(c.Vec4()) != c {
		t.Error("ColorFromVec4(c.Vec4()) != c")
	}
}
