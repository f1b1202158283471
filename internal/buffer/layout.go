// Package buffer implements the line stores behind debuglines.Lines.
//
// Two stores exist. Immediate holds lines that live for a single frame and
// is truncated after every copy-out. Retained holds lines with a positive
// duration; each line occupies a stable slot until it expires, after which
// the slot is handed out again to a later submission.
//
// Both stores keep their point data in flat, index-parallel arrays. Line
// slot i always maps to points 2i and 2i+1. The arrays are viewed as a fixed
// number of equally sized chunks, each of which matches one GPU vertex
// buffer.
//
// Stores are not safe for concurrent use.
package buffer

// Layout describes the fixed capacity of a store: ChunkCount windows of
// ChunkCapacity points each. ChunkCapacity must be even so that no line
// straddles two chunks.
type Layout struct {
	ChunkCapacity int
	ChunkCount    int
}

// MaxPoints returns the total point capacity across all chunks.
func (l Layout) MaxPoints() int {
	if l.ChunkCapacity <= 0 || l.ChunkCount <= 0 {
		return 0
	}
	return l.ChunkCapacity * l.ChunkCount
}

// MaxLines returns the maximum number of lines a store can hold.
func (l Layout) MaxLines() int {
	return l.MaxPoints() / 2
}

// Window returns the half-open point range [lo, hi) of chunk within a store
// currently holding n points. An empty range is returned for chunks outside
// the layout or beyond n.
func (l Layout) Window(chunk, n int) (lo, hi int) {
	if chunk < 0 || chunk >= l.ChunkCount || l.ChunkCapacity <= 0 {
		return 0, 0
	}
	lo = chunk * l.ChunkCapacity
	if lo >= n {
		return 0, 0
	}
	return lo, min(lo+l.ChunkCapacity, n)
}

// ChunksInUse returns how many chunks hold at least one of n points.
func (l Layout) ChunksInUse(n int) int {
	if n <= 0 || l.ChunkCapacity <= 0 {
		return 0
	}
	return min((n+l.ChunkCapacity-1)/l.ChunkCapacity, l.ChunkCount)
}
