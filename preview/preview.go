// Package preview rasterizes debuglines chunk meshes on the CPU.
//
// It draws exactly what a GPU renderer would draw for the last
// Lines.Update: every immediate line and every visible retained line,
// projected through a view-projection matrix and stroked with gg. It is
// meant for headless runs, golden tests and the debuglines command.
package preview

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/debuglines"
	"github.com/gogpu/gg"
)

// minW is the smallest clip-space w still treated as in front of the
// camera.
const minW = 1e-6

// Options controls the output image.
type Options struct {
	Width, Height int

	// Background fills the image before drawing.
	Background debuglines.Color

	// LineWidth is the stroke width in pixels.
	LineWidth float64

	// ViewProj maps world space to clip space.
	ViewProj mgl32.Mat4
}

// DefaultOptions returns a 512x512 image on a dark background, looking at
// the origin from (0, 0, 5).
func DefaultOptions() Options {
	cam := DefaultCamera()
	return Options{
		Width:      512,
		Height:     512,
		Background: debuglines.MidnightBlue,
		LineWidth:  1.5,
		ViewProj:   cam.ViewProj(1),
	}
}

// Camera is a perspective look-at camera.
type Camera struct {
	Eye, Target, Up mgl32.Vec3

	// FovY is the vertical field of view in radians.
	FovY      float32
	Near, Far float32
}

// DefaultCamera looks at the origin from (0, 0, 5) with a 60 degree field
// of view.
func DefaultCamera() Camera {
	return Camera{
		Eye:    mgl32.Vec3{0, 0, 5},
		Target: mgl32.Vec3{},
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   mgl32.DegToRad(60),
		Near:   0.1,
		Far:    100,
	}
}

// ViewProj returns projection * view for the given aspect ratio.
func (c Camera) ViewProj(aspect float32) mgl32.Mat4 {
	proj := mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
	view := mgl32.LookAtV(c.Eye, c.Target, c.Up)
	return proj.Mul4(view)
}

// Result reports what a Draw call did.
type Result struct {
	// Drawn is the number of lines stroked.
	Drawn int

	// Culled is the number of lines skipped because an end point lies
	// behind the camera.
	Culled int
}

// Render draws the meshes of lines into a new image.
func Render(lines *debuglines.Lines, opts Options) (image.Image, Result, error) {
	dc, res, err := render(lines, opts)
	if err != nil {
		return nil, res, err
	}
	return dc.Image(), res, nil
}

// SavePNG renders lines and writes the image to path.
func SavePNG(lines *debuglines.Lines, opts Options, path string) (Result, error) {
	dc, res, err := render(lines, opts)
	if err != nil {
		return res, err
	}
	if err := dc.SavePNG(path); err != nil {
		return res, fmt.Errorf("preview: save %s: %w", path, err)
	}
	return res, nil
}

// render creates a context of the requested size, fills the background and
// draws lines onto it.
func render(lines *debuglines.Lines, opts Options) (*gg.Context, Result, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, Result{}, fmt.Errorf("preview: invalid size %dx%d", opts.Width, opts.Height)
	}
	dc := gg.NewContext(opts.Width, opts.Height)
	dc.ClearWithColor(toRGBA(opts.Background.Vec4()))
	res, err := Draw(dc, lines, opts)
	if err != nil {
		return nil, res, err
	}
	return dc, res, nil
}

// Draw strokes the meshes of lines onto dc. The context size must match
// opts.Width and opts.Height for the projection to line up.
func Draw(dc *gg.Context, lines *debuglines.Lines, opts Options) (Result, error) {
	var (
		res Result
		err error
	)
	dc.SetLineWidth(opts.LineWidth)
	dc.SetLineCap(gg.LineCapRound)

	stroke := func(start, end mgl32.Vec3, startColor, endColor mgl32.Vec4) {
		if err != nil {
			return
		}
		x0, y0, ok0 := project(opts.ViewProj, start, opts.Width, opts.Height)
		x1, y1, ok1 := project(opts.ViewProj, end, opts.Width, opts.Height)
		if !ok0 || !ok1 {
			res.Culled++
			return
		}
		dc.SetStrokeBrush(brush(x0, y0, x1, y1, startColor, endColor))
		dc.DrawLine(x0, y0, x1, y1)
		if err = dc.Stroke(); err != nil {
			err = fmt.Errorf("preview: stroke: %w", err)
			return
		}
		res.Drawn++
	}

	for _, m := range lines.ImmediateMeshes() {
		m.EachLine(stroke)
	}
	for _, m := range lines.RetainedMeshes() {
		m.EachLine(stroke)
	}

	debuglines.Logger().Debug("debuglines/preview: drawn",
		slog.Int("lines", res.Drawn), slog.Int("culled", res.Culled))
	return res, err
}

// project maps a world point to pixel coordinates. ok is false for points
// behind the camera.
func project(viewProj mgl32.Mat4, p mgl32.Vec3, width, height int) (x, y float64, ok bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	if clip.W() < minW {
		return 0, 0, false
	}
	ndcX := float64(clip.X() / clip.W())
	ndcY := float64(clip.Y() / clip.W())
	x = (ndcX + 1) / 2 * float64(width)
	y = (1 - ndcY) / 2 * float64(height)
	return x, y, true
}

// brush returns a solid brush for single-colored lines and a linear
// gradient along the line otherwise.
func brush(x0, y0, x1, y1 float64, startColor, endColor mgl32.Vec4) gg.Brush {
	if startColor == endColor || (x0 == x1 && y0 == y1) {
		return gg.Solid(toRGBA(startColor))
	}
	return gg.NewLinearGradientBrush(x0, y0, x1, y1).
		AddColorStop(0, toRGBA(startColor)).
		AddColorStop(1, toRGBA(endColor))
}

// toRGBA converts a linear vertex color to the sRGB color gg paints with.
func toRGBA(v mgl32.Vec4) gg.RGBA {
	n := debuglines.ColorFromVec4(v).SRGB()
	return gg.RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}
