package buffer

import "github.com/go-gl/mathgl/mgl32"

// Immediate stores lines that are drawn for exactly one frame.
//
// The store is append-only between two calls to Clear. Once it holds
// Layout.MaxLines lines, further submissions overwrite the last slot.
type Immediate struct {
	layout Layout
	attributes
}

// NewImmediate creates an empty immediate store with the given capacity.
func NewImmediate(layout Layout) *Immediate {
	return &Immediate{layout: layout}
}

// AddLine appends one line. It reports true when the store was full and
// the last slot was overwritten instead.
func (s *Immediate) AddLine(start, end mgl32.Vec3, startColor, endColor mgl32.Vec4) (evicted bool) {
	n := s.lines()
	maxLines := s.layout.MaxLines()
	switch {
	case n < maxLines:
		s.appendLine(start, end, startColor, endColor)
		return false
	case maxLines == 0:
		return true
	default:
		s.setLine(n-1, start, end, startColor, endColor)
		return true
	}
}

// Clear drops every line while keeping the allocated capacity.
func (s *Immediate) Clear() {
	s.truncate()
}

// Lines returns the number of lines currently stored.
func (s *Immediate) Lines() int {
	return s.lines()
}

// Layout returns the capacity layout of the store.
func (s *Immediate) Layout() Layout {
	return s.layout
}

// Positions returns the full position array. The slice aliases the store.
func (s *Immediate) Positions() []mgl32.Vec3 {
	return s.positions
}

// Colors returns the full color array. The slice aliases the store.
func (s *Immediate) Colors() []mgl32.Vec4 {
	return s.colors
}

// FillChunk returns the positions and colors that belong to chunk. Both
// slices are empty when chunk lies beyond the stored points.
func (s *Immediate) FillChunk(chunk int) ([]mgl32.Vec3, []mgl32.Vec4) {
	return s.chunk(s.layout, chunk)
}
