package debuglines

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/debuglines/shape"
)

type shapeKind uint8

const (
	kindLine shapeKind = iota
	kindRect
	kindCuboid
	kindCircle
	kindSphere
)

type shapeRef struct {
	kind  shapeKind
	index int32
}

// shapeArena holds the shapes submitted since the last Update, one typed
// slice per variant. order records submission order across variants so
// lines come out in the order the caller asked for them.
type shapeArena struct {
	lines   []shape.Line
	rects   []shape.Rect
	cuboids []shape.Cuboid
	circles []shape.Circle
	spheres []shape.Sphere
	order   []shapeRef

	// stale absorbs writes through handles of a previous frame.
	stale struct {
		line   shape.Line
		rect   shape.Rect
		cuboid shape.Cuboid
		circle shape.Circle
		sphere shape.Sphere
	}
}

func (a *shapeArena) len() int { return len(a.order) }

func (a *shapeArena) reset() {
	a.lines = a.lines[:0]
	a.rects = a.rects[:0]
	a.cuboids = a.cuboids[:0]
	a.circles = a.circles[:0]
	a.spheres = a.spheres[:0]
	a.order = a.order[:0]
}

func (a *shapeArena) get(ref shapeRef) shape.Shape {
	switch ref.kind {
	case kindLine:
		return &a.lines[ref.index]
	case kindRect:
		return &a.rects[ref.index]
	case kindCuboid:
		return &a.cuboids[ref.index]
	case kindCircle:
		return &a.circles[ref.index]
	case kindSphere:
		return &a.spheres[ref.index]
	}
	return nil
}

func (a *shapeArena) push(kind shapeKind, index int) {
	a.order = append(a.order, shapeRef{kind: kind, index: int32(index)})
}

// resolveShapes decomposes every pending shape into line submissions and
// empties the arena. It returns the number of shapes resolved.
//
// Circles and spheres with more chords than a store holds are coarsened to
// fit; the removed chords count as dropped lines.
func (l *Lines) resolveShapes() int {
	n := l.shapes.len()
	maxLines := l.layout.MaxLines()
	for _, ref := range l.shapes.order {
		s := l.shapes.get(ref)
		l.dropped += shape.Limit(s, maxLines)
		duration := shape.Duration(s)
		l.segments = shape.Decompose(l.segments[:0], s)
		for _, seg := range l.segments {
			l.add(seg.Start, seg.End, seg.StartColor, seg.EndColor, duration)
		}
	}
	l.shapes.reset()
	return n
}

// Add queues a shape for the next Update. The shape is copied; later
// changes to s have no effect. Nil shapes are ignored.
func (l *Lines) Add(s shape.Shape) {
	switch s := s.(type) {
	case *shape.Line:
		if s != nil {
			l.shapes.lines = append(l.shapes.lines, *s)
			l.shapes.push(kindLine, len(l.shapes.lines)-1)
		}
	case *shape.Rect:
		if s != nil {
			l.shapes.rects = append(l.shapes.rects, *s)
			l.shapes.push(kindRect, len(l.shapes.rects)-1)
		}
	case *shape.Cuboid:
		if s != nil {
			l.shapes.cuboids = append(l.shapes.cuboids, *s)
			l.shapes.push(kindCuboid, len(l.shapes.cuboids)-1)
		}
	case *shape.Circle:
		if s != nil {
			l.shapes.circles = append(l.shapes.circles, *s)
			l.shapes.push(kindCircle, len(l.shapes.circles)-1)
		}
	case *shape.Sphere:
		if s != nil {
			l.shapes.spheres = append(l.shapes.spheres, *s)
			l.shapes.push(kindSphere, len(l.shapes.spheres)-1)
		}
	}
}

// PendingShapes returns the number of shapes queued since the last Update.
func (l *Lines) PendingShapes() int {
	return l.shapes.len()
}

// handle refers to a pending shape by index. A handle is only live until
// the next Update; after that its writes go to a discarded value.
type handle struct {
	l     *Lines
	index int
	frame uint64
}

func (l *Lines) newHandle(index int) handle {
	return handle{l: l, index: index, frame: l.frame}
}

func (h handle) live() bool {
	return h.l != nil && h.frame == h.l.frame
}

// LineShape queues a line in the default color and returns a handle to
// configure it.
func (l *Lines) LineShape(start, end mgl32.Vec3) LineHandle {
	s := shape.NewLine(start, end)
	s.StartColor = l.cfg.DefaultColor.Vec4()
	s.EndColor = s.StartColor
	l.shapes.lines = append(l.shapes.lines, s)
	i := len(l.shapes.lines) - 1
	l.shapes.push(kindLine, i)
	return LineHandle{l.newHandle(i)}
}

// LineHandle configures a line queued with Lines.LineShape.
type LineHandle struct{ handle }

func (h LineHandle) target() *shape.Line {
	if !h.live() {
		if h.l == nil {
			return new(shape.Line)
		}
		return &h.l.shapes.stale.line
	}
	return &h.l.shapes.lines[h.index]
}

// Start moves the start point.
func (h LineHandle) Start(p mgl32.Vec3) LineHandle {
	h.target().Start = p
	return h
}

// End moves the end point.
func (h LineHandle) End(p mgl32.Vec3) LineHandle {
	h.target().End = p
	return h
}

// StartEnd moves both points.
func (h LineHandle) StartEnd(start, end mgl32.Vec3) LineHandle {
	s := h.target()
	s.Start, s.End = start, end
	return h
}

// DirLength places the end point at Start + dir*length. dir is not
// normalized.
func (h LineHandle) DirLength(dir mgl32.Vec3, length float32) LineHandle {
	s := h.target()
	s.End = s.Start.Add(dir.Mul(length))
	return h
}

// Color sets both end colors.
func (h LineHandle) Color(c Color) LineHandle {
	return h.Gradient(c, c)
}

// Gradient sets the start and end colors.
func (h LineHandle) Gradient(start, end Color) LineHandle {
	s := h.target()
	s.StartColor, s.EndColor = start.Vec4(), end.Vec4()
	return h
}

// Duration sets the lifetime in seconds. Zero draws the line for one frame.
func (h LineHandle) Duration(d float32) LineHandle {
	h.target().Duration = d
	return h
}

// Rect queues a rectangle of the given full size centred on position, in
// the local XY plane.
func (l *Lines) Rect(position mgl32.Vec3, size mgl32.Vec2) RectHandle {
	s := shape.NewRect(position, size)
	s.Color = l.cfg.DefaultColor.Vec4()
	l.shapes.rects = append(l.shapes.rects, s)
	i := len(l.shapes.rects) - 1
	l.shapes.push(kindRect, i)
	return RectHandle{l.newHandle(i)}
}

// RectHandle configures a rectangle queued with Lines.Rect.
type RectHandle struct{ handle }

func (h RectHandle) target() *shape.Rect {
	if !h.live() {
		if h.l == nil {
			return new(shape.Rect)
		}
		return &h.l.shapes.stale.rect
	}
	return &h.l.shapes.rects[h.index]
}

func (h RectHandle) Position(p mgl32.Vec3) RectHandle {
	h.target().Position = p
	return h
}

// Size sets the full width and height.
func (h RectHandle) Size(size mgl32.Vec2) RectHandle {
	h.target().Extent = size.Mul(0.5)
	return h
}

// MinMax places the rectangle between two corners. The z coordinate of
// the position is kept.
func (h RectHandle) MinMax(lo, hi mgl32.Vec2) RectHandle {
	h.target().SetMinMax(lo, hi)
	return h
}

func (h RectHandle) Rotation(q mgl32.Quat) RectHandle {
	h.target().Rotation = q
	return h
}

// Angle rotates the rectangle by radians around the Z axis.
func (h RectHandle) Angle(radians float32) RectHandle {
	return h.Rotation(mgl32.QuatRotate(radians, mgl32.Vec3{0, 0, 1}))
}

func (h RectHandle) Color(c Color) RectHandle {
	h.target().Color = c.Vec4()
	return h
}

func (h RectHandle) Duration(d float32) RectHandle {
	h.target().Duration = d
	return h
}

// Cuboid queues a box of the given full size centred on position.
func (l *Lines) Cuboid(position, size mgl32.Vec3) CuboidHandle {
	s := shape.NewCuboid(position, size)
	s.Color = l.cfg.DefaultColor.Vec4()
	l.shapes.cuboids = append(l.shapes.cuboids, s)
	i := len(l.shapes.cuboids) - 1
	l.shapes.push(kindCuboid, i)
	return CuboidHandle{l.newHandle(i)}
}

// CuboidHandle configures a box queued with Lines.Cuboid.
type CuboidHandle struct{ handle }

func (h CuboidHandle) target() *shape.Cuboid {
	if !h.live() {
		if h.l == nil {
			return new(shape.Cuboid)
		}
		return &h.l.shapes.stale.cuboid
	}
	return &h.l.shapes.cuboids[h.index]
}

func (h CuboidHandle) Position(p mgl32.Vec3) CuboidHandle {
	h.target().Position = p
	return h
}

// Size sets the full extent along each axis.
func (h CuboidHandle) Size(size mgl32.Vec3) CuboidHandle {
	h.target().Extent = size.Mul(0.5)
	return h
}

func (h CuboidHandle) Rotation(q mgl32.Quat) CuboidHandle {
	h.target().Rotation = q
	return h
}

func (h CuboidHandle) Color(c Color) CuboidHandle {
	h.target().Color = c.Vec4()
	return h
}

func (h CuboidHandle) Duration(d float32) CuboidHandle {
	h.target().Duration = d
	return h
}

// Circle queues a unit circle at the origin in the local XY plane.
func (l *Lines) Circle() CircleHandle {
	s := shape.NewCircle()
	s.Segments = l.cfg.CircleSegments
	s.Color = l.cfg.DefaultColor.Vec4()
	l.shapes.circles = append(l.shapes.circles, s)
	i := len(l.shapes.circles) - 1
	l.shapes.push(kindCircle, i)
	return CircleHandle{l.newHandle(i)}
}

// CircleHandle configures a circle queued with Lines.Circle.
type CircleHandle struct{ handle }

func (h CircleHandle) target() *shape.Circle {
	if !h.live() {
		if h.l == nil {
			return new(shape.Circle)
		}
		return &h.l.shapes.stale.circle
	}
	return &h.l.shapes.circles[h.index]
}

func (h CircleHandle) Position(p mgl32.Vec3) CircleHandle {
	h.target().Position = p
	return h
}

func (h CircleHandle) Radius(r float32) CircleHandle {
	h.target().Radius = r
	return h
}

// Segments sets the number of chords. Zero or less draws nothing.
func (h CircleHandle) Segments(n int) CircleHandle {
	h.target().Segments = n
	return h
}

func (h CircleHandle) Rotation(q mgl32.Quat) CircleHandle {
	h.target().Rotation = q
	return h
}

func (h CircleHandle) Color(c Color) CircleHandle {
	h.target().Color = c.Vec4()
	return h
}

func (h CircleHandle) Duration(d float32) CircleHandle {
	h.target().Duration = d
	return h
}

// Sphere queues a unit sphere at the origin, drawn as three orthogonal
// circles.
func (l *Lines) Sphere() SphereHandle {
	s := shape.NewSphere()
	s.Segments = l.cfg.CircleSegments
	s.Color = l.cfg.DefaultColor.Vec4()
	l.shapes.spheres = append(l.shapes.spheres, s)
	i := len(l.shapes.spheres) - 1
	l.shapes.push(kindSphere, i)
	return SphereHandle{l.newHandle(i)}
}

// SphereHandle configures a sphere queued with Lines.Sphere.
type SphereHandle struct{ handle }

func (h SphereHandle) target() *shape.Sphere {
	if !h.live() {
		if h.l == nil {
			return new(shape.Sphere)
		}
		return &h.l.shapes.stale.sphere
	}
	return &h.l.shapes.spheres[h.index]
}

func (h SphereHandle) Position(p mgl32.Vec3) SphereHandle {
	h.target().Position = p
	return h
}

func (h SphereHandle) Radius(r float32) SphereHandle {
	h.target().Radius = r
	return h
}

// Segments sets the number of chords per circle.
func (h SphereHandle) Segments(n int) SphereHandle {
	h.target().Segments = n
	return h
}

func (h SphereHandle) Rotation(q mgl32.Quat) SphereHandle {
	h.target().Rotation = q
	return h
}

func (h SphereHandle) Color(c Color) SphereHandle {
	h.target().Color = c.Vec4()
	return h
}

func (h SphereHandle) Duration(d float32) SphereHandle {
	h.target().Duration = d
	return h
}
