// Package shape turns debug shape descriptors into line segments.
//
// Shape is a closed set: *Line, *Rect, *Cuboid, *Circle and *Sphere. All
// operations over shapes are plain functions that switch on the concrete
// type, so adding a variant means touching Decompose and Duration only.
//
// Decomposition is pure and deterministic. Degenerate parameters never
// panic; they produce zero or collapsed segments instead.
package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultSegments is the number of chords used to approximate a circle when
// none is specified.
const DefaultSegments = 16

// White is the default color of every shape.
var White = mgl32.Vec4{1, 1, 1, 1}

// Shape is one of *Line, *Rect, *Cuboid, *Circle or *Sphere.
type Shape interface {
	isShape()
}

// Segment is one line produced by decomposition.
type Segment struct {
	Start, End           mgl32.Vec3
	StartColor, EndColor mgl32.Vec4
}

// Decompose appends the segments of s to dst and returns the extended
// slice. Unknown or nil shapes append nothing.
func Decompose(dst []Segment, s Shape) []Segment {
	switch s := s.(type) {
	case *Line:
		return append(dst, Segment{Start: s.Start, End: s.End, StartColor: s.StartColor, EndColor: s.EndColor})
	case *Rect:
		return s.appendSegments(dst)
	case *Cuboid:
		return s.appendSegments(dst)
	case *Circle:
		return s.appendSegments(dst)
	case *Sphere:
		return s.appendSegments(dst)
	}
	return dst
}

// Duration returns how long the segments of s stay visible, in seconds.
// Zero means a single frame.
func Duration(s Shape) float32 {
	switch s := s.(type) {
	case *Line:
		return s.Duration
	case *Rect:
		return s.Duration
	case *Cuboid:
		return s.Duration
	case *Circle:
		return s.Duration
	case *Sphere:
		return s.Duration
	}
	return 0
}

// Count returns how many segments Decompose would emit for s.
func Count(s Shape) int {
	switch s := s.(type) {
	case *Line:
		return 1
	case *Rect:
		return 4
	case *Cuboid:
		return 12
	case *Circle:
		return max(s.Segments, 0)
	case *Sphere:
		return 3 * max(s.Segments, 0)
	}
	return 0
}

// Limit lowers the chord count of a circle or sphere in place so that
// Count(s) does not exceed maxSegments, and returns how many segments were
// removed. A sphere keeps at least one chord per circle. Other shapes emit
// a fixed number of segments and are left unchanged.
func Limit(s Shape, maxSegments int) int {
	before := Count(s)
	if before <= maxSegments {
		return 0
	}
	switch s := s.(type) {
	case *Circle:
		s.Segments = max(maxSegments, 0)
	case *Sphere:
		s.Segments = max(maxSegments/3, 1)
	default:
		return 0
	}
	return before - Count(s)
}

// Line is a single segment with a per-end color.
type Line struct {
	Start, End           mgl32.Vec3
	StartColor, EndColor mgl32.Vec4
	Duration             float32
}

// NewLine returns a white line from start to end.
func NewLine(start, end mgl32.Vec3) Line {
	return Line{Start: start, End: end, StartColor: White, EndColor: White}
}

func (*Line) isShape() {}

// Rect is a rectangle in the local XY plane, centred on Position.
type Rect struct {
	Position mgl32.Vec3
	Extent   mgl32.Vec2 // half size
	Rotation mgl32.Quat
	Color    mgl32.Vec4
	Duration float32
}

// NewRect returns a white rectangle of the given full size.
func NewRect(position mgl32.Vec3, size mgl32.Vec2) Rect {
	return Rect{
		Position: position,
		Extent:   size.Mul(0.5),
		Rotation: mgl32.QuatIdent(),
		Color:    White,
	}
}

func (*Rect) isShape() {}

// SetMinMax places the rectangle between two corners, keeping Position.Z.
func (r *Rect) SetMinMax(lo, hi mgl32.Vec2) {
	c := lo.Add(hi).Mul(0.5)
	r.Position = mgl32.Vec3{c.X(), c.Y(), r.Position.Z()}
	r.Extent = hi.Sub(lo).Mul(0.5)
}

// Corners returns the four corners in world space, counter-clockwise from
// (-x, -y).
func (r *Rect) Corners() [4]mgl32.Vec3 {
	ex, ey := r.Extent.X(), r.Extent.Y()
	local := [4]mgl32.Vec3{
		{-ex, -ey, 0},
		{ex, -ey, 0},
		{ex, ey, 0},
		{-ex, ey, 0},
	}
	rot := normalized(r.Rotation)
	var out [4]mgl32.Vec3
	for i, v := range local {
		out[i] = r.Position.Add(rot.Rotate(v))
	}
	return out
}

func (r *Rect) appendSegments(dst []Segment) []Segment {
	v := r.Corners()
	for i := range v {
		dst = append(dst, solid(v[i], v[(i+1)%4], r.Color))
	}
	return dst
}

// Cuboid is an oriented box centred on Position.
type Cuboid struct {
	Position mgl32.Vec3
	Extent   mgl32.Vec3 // half size
	Rotation mgl32.Quat
	Color    mgl32.Vec4
	Duration float32
}

// NewCuboid returns a white box of the given full size.
func NewCuboid(position, size mgl32.Vec3) Cuboid {
	return Cuboid{
		Position: position,
		Extent:   size.Mul(0.5),
		Rotation: mgl32.QuatIdent(),
		Color:    White,
	}
}

func (*Cuboid) isShape() {}

// cuboidEdges lists the corner pairs of the twelve box edges: bottom face,
// top face, then the four uprights.
var cuboidEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Corners returns the eight corners in world space. The first four lie on
// the -z face.
func (c *Cuboid) Corners() [8]mgl32.Vec3 {
	ex, ey, ez := c.Extent.X(), c.Extent.Y(), c.Extent.Z()
	local := [8]mgl32.Vec3{
		{-ex, -ey, -ez},
		{ex, -ey, -ez},
		{ex, ey, -ez},
		{-ex, ey, -ez},
		{-ex, -ey, ez},
		{ex, -ey, ez},
		{ex, ey, ez},
		{-ex, ey, ez},
	}
	rot := normalized(c.Rotation)
	var out [8]mgl32.Vec3
	for i, v := range local {
		out[i] = c.Position.Add(rot.Rotate(v))
	}
	return out
}

func (c *Cuboid) appendSegments(dst []Segment) []Segment {
	v := c.Corners()
	for _, e := range cuboidEdges {
		dst = append(dst, solid(v[e[0]], v[e[1]], c.Color))
	}
	return dst
}

// Circle is approximated by Segments chords in the local XY plane.
type Circle struct {
	Position mgl32.Vec3
	Radius   float32
	Segments int
	Rotation mgl32.Quat
	Color    mgl32.Vec4
	Duration float32
}

// NewCircle returns a white unit circle at the origin.
func NewCircle() Circle {
	return Circle{
		Radius:   1,
		Segments: DefaultSegments,
		Rotation: mgl32.QuatIdent(),
		Color:    White,
	}
}

func (*Circle) isShape() {}

func (c *Circle) appendSegments(dst []Segment) []Segment {
	if c.Segments <= 0 {
		return dst
	}
	rot := normalized(c.Rotation)
	step := 2 * math.Pi / float64(c.Segments)
	point := func(i int) mgl32.Vec3 {
		sin, cos := math.Sincos(step * float64(i))
		local := mgl32.Vec3{float32(cos), float32(sin), 0}.Mul(c.Radius)
		return c.Position.Add(rot.Rotate(local))
	}
	prev := point(0)
	for i := 1; i <= c.Segments; i++ {
		next := point(i % c.Segments)
		dst = append(dst, solid(prev, next, c.Color))
		prev = next
	}
	return dst
}

// Sphere is drawn as three orthogonal circles sharing centre and radius.
type Sphere struct {
	Position mgl32.Vec3
	Radius   float32
	Segments int
	Rotation mgl32.Quat
	Color    mgl32.Vec4
	Duration float32
}

// NewSphere returns a white unit sphere at the origin.
func NewSphere() Sphere {
	return Sphere{
		Radius:   1,
		Segments: DefaultSegments,
		Rotation: mgl32.QuatIdent(),
		Color:    White,
	}
}

func (*Sphere) isShape() {}

func (s *Sphere) appendSegments(dst []Segment) []Segment {
	rot := normalized(s.Rotation)
	offsets := [3]mgl32.Quat{
		mgl32.QuatIdent(),
		mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{1, 0, 0}),
		mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 1, 0}),
	}
	for _, off := range offsets {
		c := Circle{
			Position: s.Position,
			Radius:   s.Radius,
			Segments: s.Segments,
			Rotation: rot.Mul(off),
			Color:    s.Color,
		}
		dst = c.appendSegments(dst)
	}
	return dst
}

func solid(start, end mgl32.Vec3, color mgl32.Vec4) Segment {
	return Segment{Start: start, End: end, StartColor: color, EndColor: color}
}

// normalized guards against the zero quaternion of an unset Rotation field.
func normalized(q mgl32.Quat) mgl32.Quat {
	if q.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return q.Normalize()
}
