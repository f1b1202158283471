package buffer

import "github.com/go-gl/mathgl/mgl32"

// Retained stores lines with a positive duration.
//
// Every line owns a slot until its expiry time has passed and MarkExpired
// has released it. Released slots are reused before the arrays grow, so the
// backing arrays never shrink and never exceed Layout.MaxPoints. Expired
// lines stay physically present until their slot is overwritten; they are
// hidden by leaving them out of the index list built by AppendIndices.
type Retained struct {
	layout Layout
	attributes

	// expiry holds one timestamp per point; both points of a line share it.
	expiry []float32

	// free is a stack of released line slots. The lowest slot is on top.
	free []int
}

// NewRetained creates an empty retained store with the given capacity.
func NewRetained(layout Layout) *Retained {
	return &Retained{layout: layout}
}

// AddLine stores a line that expires at now+duration and returns its slot.
//
// A released slot is reused first. Otherwise the line is appended while the
// store is below capacity. A full store overwrites its last slot and reports
// evicted. Slot is -1 only for a store with zero capacity.
func (s *Retained) AddLine(start, end mgl32.Vec3, startColor, endColor mgl32.Vec4, now, duration float32) (slot int, evicted bool) {
	expireAt := now + duration

	switch n, maxLines := s.lines(), s.layout.MaxLines(); {
	case len(s.free) > 0:
		slot = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
	case n < maxLines:
		s.appendLine(start, end, startColor, endColor)
		s.expiry = append(s.expiry, expireAt, expireAt)
		return n, false
	case maxLines == 0:
		return -1, true
	default:
		slot = n - 1
		evicted = true
	}

	s.setLine(slot, start, end, startColor, endColor)
	s.expiry[slot*2] = expireAt
	s.expiry[slot*2+1] = expireAt
	return slot, evicted
}

// MarkExpired rebuilds the free-slot stack from every line whose expiry
// lies strictly before now.
//
// It must run after the index buffers for now have been produced: a line
// expiring exactly at now is still drawn by AppendIndices and is released
// by the first MarkExpired call with a later timestamp.
func (s *Retained) MarkExpired(now float32) {
	s.free = s.free[:0]
	// Walk backwards so that the lowest slot ends up on top of the stack.
	for i := len(s.expiry) - 2; i >= 0; i -= 2 {
		if s.expiry[i] < now {
			s.free = append(s.free, i/2)
		}
	}
}

// AppendIndices appends the chunk-relative point indices of every line in
// chunk that is still visible at now, i.e. whose expiry is not before now.
func (s *Retained) AppendIndices(dst []uint32, now float32, chunk int) []uint32 {
	lo, hi := s.layout.Window(chunk, len(s.expiry))
	for i := lo; i+1 < hi; i += 2 {
		if s.expiry[i] >= now {
			dst = append(dst, uint32(i-lo), uint32(i+1-lo)) //nolint:gosec // bounded by chunk capacity
		}
	}
	return dst
}

// FillIndices is AppendIndices into a new slice.
func (s *Retained) FillIndices(now float32, chunk int) []uint32 {
	return s.AppendIndices(nil, now, chunk)
}

// FillChunk returns the positions and colors that belong to chunk,
// including lines that have expired but were not yet overwritten.
func (s *Retained) FillChunk(chunk int) ([]mgl32.Vec3, []mgl32.Vec4) {
	return s.chunk(s.layout, chunk)
}

// Shift moves the expiry of every stored line by delta seconds.
func (s *Retained) Shift(delta float32) {
	if delta == 0 {
		return
	}
	for i := range s.expiry {
		s.expiry[i] += delta
	}
}

// Visible returns the number of lines whose expiry is not before now.
func (s *Retained) Visible(now float32) int {
	n := 0
	for i := 0; i < len(s.expiry); i += 2 {
		if s.expiry[i] >= now {
			n++
		}
	}
	return n
}

// Clear drops every line and released slot.
func (s *Retained) Clear() {
	s.truncate()
	s.expiry = s.expiry[:0]
	s.free = s.free[:0]
}

// Lines returns the number of occupied slots, expired ones included.
func (s *Retained) Lines() int {
	return s.lines()
}

// FreeSlots returns the number of released slots awaiting reuse.
func (s *Retained) FreeSlots() int {
	return len(s.free)
}

// Layout returns the capacity layout of the store.
func (s *Retained) Layout() Layout {
	return s.layout
}

// Positions returns the full position array. The slice aliases the store.
func (s *Retained) Positions() []mgl32.Vec3 {
	return s.positions
}

// Colors returns the full color array. The slice aliases the store.
func (s *Retained) Colors() []mgl32.Vec4 {
	return s.colors
}

// Expiry returns the per-point expiry array. The slice aliases the store.
func (s *Retained) Expiry() []float32 {
	return s.expiry
}
