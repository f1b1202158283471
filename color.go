package debuglines

import (
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	icolor "github.com/gogpu/debuglines/internal/color"
	"golang.org/x/image/colornames"
)

// Color is a linear RGBA color with components in [0, 1], the space the
// line shader blends in. Use FromSRGB or FromColor for colors picked in
// sRGB, such as CSS names or 8-bit image colors.
type Color struct {
	R, G, B, A float32
}

// Common colors. The primaries are exact; the rest are the CSS colors of
// the same name converted to linear space.
var (
	White        = RGB(1, 1, 1)
	Black        = RGB(0, 0, 0)
	Red          = RGB(1, 0, 0)
	Green        = RGB(0, 1, 0)
	Blue         = RGB(0, 0, 1)
	Yellow       = RGB(1, 1, 0)
	Cyan         = RGB(0, 1, 1)
	Fuchsia      = RGB(1, 0, 1)
	Gray         = FromColor(colornames.Gray)
	Orange       = FromColor(colornames.Orange)
	Gold         = FromColor(colornames.Gold)
	Pink         = FromColor(colornames.Pink)
	MidnightBlue = FromColor(colornames.Midnightblue)
	Transparent  = RGBA(0, 0, 0, 0)
)

// RGB returns an opaque linear color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA returns a linear color with alpha.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromSRGB converts sRGB-encoded components in [0, 1] to a linear color.
// Alpha is passed through unchanged.
func FromSRGB(r, g, b, a float32) Color {
	c := icolor.SRGBToLinearColor(icolor.ColorF32{R: r, G: g, B: b, A: a})
	return Color(c)
}

// FromColor converts a standard library color, which is sRGB encoded, to a
// linear color. Premultiplied colors are un-premultiplied first.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	lc := icolor.U8ToLinear(icolor.ColorU8{R: n.R, G: n.G, B: n.B, A: n.A})
	return Color(lc)
}

// Named looks up a CSS/SVG color name such as "pink" or "MidnightBlue".
// Matching ignores case, spaces, dashes and underscores.
func Named(name string) (Color, bool) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(name))
	c, ok := colornames.Map[key]
	if !ok {
		return Color{}, false
	}
	return FromColor(c), true
}

// SRGB returns the color converted to 8-bit sRGB.
func (c Color) SRGB() color.NRGBA {
	u := icolor.LinearToU8(icolor.ColorF32(c))
	return color.NRGBA{R: u.R, G: u.G, B: u.B, A: u.A}
}

// Vec4 returns the components as a vertex attribute.
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// ColorFromVec4 is the inverse of Color.Vec4.
func ColorFromVec4(v mgl32.Vec4) Color {
	return Color{R: v[0], G: v[1], B: v[2], A: v[3]}
}
