package buffer

import "github.com/go-gl/mathgl/mgl32"

// attributes is the vertex attribute pack shared by both stores: one
// position and one color per point, two points per line.
type attributes struct {
	positions []mgl32.Vec3
	colors    []mgl32.Vec4
}

func (a *attributes) appendLine(start, end mgl32.Vec3, startColor, endColor mgl32.Vec4) {
	a.positions = append(a.positions, start, end)
	a.colors = append(a.colors, startColor, endColor)
}

func (a *attributes) setLine(slot int, start, end mgl32.Vec3, startColor, endColor mgl32.Vec4) {
	i := slot * 2
	a.positions[i] = start
	a.positions[i+1] = end
	a.colors[i] = startColor
	a.colors[i+1] = endColor
}

func (a *attributes) truncate() {
	a.positions = a.positions[:0]
	a.colors = a.colors[:0]
}

func (a *attributes) lines() int {
	return len(a.positions) / 2
}

func (a *attributes) chunk(layout Layout, chunk int) ([]mgl32.Vec3, []mgl32.Vec4) {
	lo, hi := layout.Window(chunk, len(a.positions))
	return a.positions[lo:hi:hi], a.colors[lo:hi:hi]
}
